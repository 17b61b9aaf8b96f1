package exercises

import (
	"github.com/statlearn/lfd/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// mat5 returns the quadratic features of a single point.
func mat5(x1, x2 float64) mat.Matrix {
	Xt, err := preprocessing.Quadratic{}.Transform(mat.NewDense(1, 2, []float64{x1, x2}))
	if err != nil {
		panic(err)
	}
	return Xt
}
