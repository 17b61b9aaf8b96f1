// Package preprocessing provides the feature transforms applied to the 2D
// inputs before fitting. Transforms never add the bias column; the models do.
package preprocessing

import (
	"github.com/statlearn/lfd/core/model"
	"github.com/statlearn/lfd/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	_ model.Transformer = Identity{}
	_ model.Transformer = Quadratic{}
)

// Identity passes (x1, x2) through unchanged.
type Identity struct{}

// Transform returns a copy of X after checking that it has two columns.
func (Identity) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := check("Identity.Transform", X); err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(X), nil
}

// OutputFeatures returns 2.
func (Identity) OutputFeatures() int { return 2 }

// Quadratic maps (x1, x2) to (x1, x2, x1·x2, x1², x2²).
type Quadratic struct{}

// Transform applies the quadratic feature map row by row.
func (Quadratic) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := check("Quadratic.Transform", X); err != nil {
		return nil, err
	}
	r, _ := X.Dims()
	out := mat.NewDense(r, 5, nil)
	for i := 0; i < r; i++ {
		x1, x2 := X.At(i, 0), X.At(i, 1)
		out.SetRow(i, []float64{x1, x2, x1 * x2, x1 * x1, x2 * x2})
	}
	return out, nil
}

// OutputFeatures returns 5.
func (Quadratic) OutputFeatures() int { return 5 }

func check(op string, X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if c != 2 {
		return errors.NewDimensionError(op, 2, c, 1)
	}
	return nil
}
