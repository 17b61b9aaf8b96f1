// Package linalg is a small dense linear-algebra kernel over row slices.
//
// It provides exactly what the closed-form least-squares solver needs:
// transpose, matrix product, matrix-vector product and Gauss-Jordan
// inversion. Matrices are [][]float64 with rows as samples. Every function
// returns a freshly allocated result and leaves its inputs untouched.
//
// Conversions to and from gonum's mat package are provided so the models can
// accept mat.Matrix at their API boundary.
package linalg

import (
	"github.com/statlearn/lfd/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major matrix. All rows must have the same length.
type Matrix [][]float64

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate returns a DimensionError if the rows of m differ in length.
func (m Matrix) Validate(op string) error {
	cols := m.Cols()
	for _, row := range m {
		if len(row) != cols {
			return errors.NewDimensionError(op, cols, len(row), 1)
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Dense converts m to a gonum *mat.Dense. m must be non-empty and rectangular.
func (m Matrix) Dense() *mat.Dense {
	r, c := m.Rows(), m.Cols()
	data := make([]float64, 0, r*c)
	for _, row := range m {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data)
}

// New allocates a zero rows×cols matrix.
func New(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// FromMatrix copies any gonum matrix into a Matrix.
func FromMatrix(a mat.Matrix) Matrix {
	r, c := a.Dims()
	m := New(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m[i][j] = a.At(i, j)
		}
	}
	return m
}

// PrependColumn returns a copy of m with value inserted as column 0 of every
// row. Models use it with value 1 to add the bias feature.
func PrependColumn(m Matrix, value float64) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		r := make([]float64, len(row)+1)
		r[0] = value
		copy(r[1:], row)
		out[i] = r
	}
	return out
}
