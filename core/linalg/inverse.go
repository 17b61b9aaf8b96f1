package linalg

import (
	"math"

	"github.com/statlearn/lfd/pkg/errors"
)

// Pivoting selects the pivot policy used by Inverse.
type Pivoting int

const (
	// NoPivoting uses whatever lies on the diagonal as the pivot. Only an
	// exactly zero pivot is rejected; tiny pivots are accepted and may give
	// imprecise results. This reproduces the reference outputs.
	NoPivoting Pivoting = iota
	// PartialPivoting swaps in the row with the largest absolute value in
	// the current column before normalizing.
	PartialPivoting
)

func (p Pivoting) String() string {
	switch p {
	case NoPivoting:
		return "none"
	case PartialPivoting:
		return "partial"
	default:
		return "unknown"
	}
}

type inverseConfig struct {
	pivoting Pivoting
}

// InverseOption configures Inverse.
type InverseOption func(*inverseConfig)

// WithPivoting selects the pivot policy.
func WithPivoting(p Pivoting) InverseOption {
	return func(c *inverseConfig) {
		c.pivoting = p
	}
}

// WithPartialPivoting is shorthand for WithPivoting(PartialPivoting).
func WithPartialPivoting() InverseOption {
	return WithPivoting(PartialPivoting)
}

// Inverse computes the inverse of a square matrix by Gauss-Jordan elimination.
//
// A working copy of m is paired with an identity accumulator. For each row i
// the pivot a[i][i] divides row i (in both matrices), then column i is
// eliminated from every other row k by subtracting a[k][i] times row i. When
// all rows are processed the accumulator holds the inverse.
//
// Errors:
//   - DimensionError if m is not square or is ragged.
//   - SingularMatrixError (matching ErrSingularMatrix) if a pivot is exactly 0.
func Inverse(m Matrix, opts ...InverseOption) (Matrix, error) {
	cfg := inverseConfig{pivoting: NoPivoting}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := m.Validate(opInverse); err != nil {
		return nil, err
	}
	n := m.Rows()
	if m.Cols() != n {
		return nil, errors.NewDimensionError(opInverse, n, m.Cols(), 1)
	}

	a := m.Clone()
	b := Identity(n)

	for i := 0; i < n; i++ {
		if cfg.pivoting == PartialPivoting {
			if p := pivotRow(a, i); p != i {
				a[i], a[p] = a[p], a[i]
				b[i], b[p] = b[p], b[i]
			}
		}

		pivot := a[i][i]
		if pivot == 0 {
			return nil, errors.NewSingularMatrixError(opInverse, i)
		}

		// columns left of i are already zero in row i
		for j := i; j < n; j++ {
			a[i][j] /= pivot
		}
		for j := 0; j < n; j++ {
			b[i][j] /= pivot
		}

		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			alpha := a[k][i]
			for j := i; j < n; j++ {
				a[k][j] -= alpha * a[i][j]
			}
			for j := 0; j < n; j++ {
				b[k][j] -= alpha * b[i][j]
			}
		}
	}
	return b, nil
}

// pivotRow returns the index of the row at or below col with the largest
// absolute value in column col.
func pivotRow(a Matrix, col int) int {
	best := col
	bestAbs := math.Abs(a[col][col])
	for r := col + 1; r < len(a); r++ {
		if v := math.Abs(a[r][col]); v > bestAbs {
			best, bestAbs = r, v
		}
	}
	return best
}
