package experiment

import (
	"github.com/samber/lo"
	"github.com/statlearn/lfd/pkg/errors"
)

// BooleanHypothesis is a named function over bit vectors returning 0 or 1.
type BooleanHypothesis struct {
	Name string
	Fn   func(x []int) int
}

// Parity returns 1 when x has an odd number of ones (XOR).
func Parity(x []int) int {
	return lo.Sum(x) % 2
}

// StandardHypotheses are g=1, g=0, XOR and its complement.
func StandardHypotheses() []BooleanHypothesis {
	return []BooleanHypothesis{
		{Name: "g(x) = 1", Fn: func([]int) int { return 1 }},
		{Name: "g(x) = 0", Fn: func([]int) int { return 0 }},
		{Name: "XOR", Fn: Parity},
		{Name: "not XOR", Fn: func(x []int) int { return 1 - Parity(x) }},
	}
}

// ScoreHypothesis enumerates every target function on points (2^len(points)
// of them) and sums, over targets, the number of points where h agrees.
func ScoreHypothesis(h BooleanHypothesis, points [][]int) (int, error) {
	k := len(points)
	if k == 0 || k > 20 {
		return 0, errors.NewValueError("experiment.ScoreHypothesis", "need between 1 and 20 unobserved points")
	}
	score := 0
	for f := 0; f < 1<<k; f++ {
		for i, p := range points {
			// bit i of f is the target's value on point i
			if h.Fn(p) == (f>>(k-1-i))&1 {
				score++
			}
		}
	}
	return score, nil
}
