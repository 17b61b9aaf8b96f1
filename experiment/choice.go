package experiment

import (
	"math"

	"github.com/samber/lo"
	"github.com/statlearn/lfd/pkg/errors"
)

// Choice is one lettered multiple-choice answer.
type Choice struct {
	Letter string
	Value  float64
}

// Choices letters values a, b, c, ... in order.
func Choices(values ...float64) []Choice {
	return lo.Map(values, func(v float64, i int) Choice {
		return Choice{Letter: string(rune('a' + i)), Value: v}
	})
}

// Closest returns the choice minimising |value − choice|. Ties go to the
// earlier letter.
func Closest(value float64, choices []Choice) (Choice, error) {
	if len(choices) == 0 {
		return Choice{}, errors.NewValueError("experiment.Closest", "no choices")
	}
	return lo.MinBy(choices, func(a, b Choice) bool {
		return math.Abs(a.Value-value) < math.Abs(b.Value-value)
	}), nil
}
