package linalg

import (
	"github.com/statlearn/lfd/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	opTranspose = "linalg.Transpose"
	opMultiply  = "linalg.Multiply"
	opMulVec    = "linalg.MulVec"
	opInverse   = "linalg.Inverse"
)

// Transpose returns the matrix whose rows are the columns of m.
func Transpose(m Matrix) (Matrix, error) {
	if err := m.Validate(opTranspose); err != nil {
		return nil, err
	}
	rows, cols := m.Rows(), m.Cols()
	out := New(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out, nil
}

// Multiply returns a·b. It requires cols(a) == rows(b); the result is
// rows(a)×cols(b).
func Multiply(a, b Matrix) (Matrix, error) {
	if err := a.Validate(opMultiply); err != nil {
		return nil, err
	}
	if err := b.Validate(opMultiply); err != nil {
		return nil, err
	}
	if a.Cols() != b.Rows() {
		return nil, errors.NewDimensionError(opMultiply, a.Cols(), b.Rows(), 0)
	}

	n, inner, p := a.Rows(), a.Cols(), b.Cols()
	out := New(n, p)
	for i := 0; i < n; i++ {
		ai := a[i]
		oi := out[i]
		for k := 0; k < inner; k++ {
			aik := ai[k]
			bk := b[k]
			for j := 0; j < p; j++ {
				oi[j] += aik * bk[j]
			}
		}
	}
	return out, nil
}

// MulVec returns m·v. It requires cols(m) == len(v).
func MulVec(m Matrix, v []float64) ([]float64, error) {
	if err := m.Validate(opMulVec); err != nil {
		return nil, err
	}
	if m.Rows() > 0 && m.Cols() != len(v) {
		return nil, errors.NewDimensionError(opMulVec, m.Cols(), len(v), 1)
	}
	out := make([]float64, m.Rows())
	for i, row := range m {
		out[i] = floats.Dot(row, v)
	}
	return out, nil
}
