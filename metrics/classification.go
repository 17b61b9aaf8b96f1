// Package metrics は分類結果の評価指標を提供する
package metrics

import (
	"github.com/statlearn/lfd/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrorRate は yTrue と yPred が一致しない要素の割合を計算する。
// 学習データに対して使えば E_in、新しいデータに対して使えば E_out、
// 2つの仮説の予測に対して使えば P[f ≠ g] の推定値になる。
func ErrorRate(yTrue, yPred []float64) (float64, error) {
	// 入力検証
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("ErrorRate", "empty vector")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("ErrorRate", n, len(yPred), 0)
	}

	mismatches := 0
	for i := 0; i < n; i++ {
		if yTrue[i] != yPred[i] {
			mismatches++
		}
	}
	return float64(mismatches) / float64(n), nil
}

// ErrorRateMatrix は列ベクトル形式の入力に対してErrorRateを計算する
func ErrorRateMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("ErrorRateMatrix", "empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("ErrorRateMatrix", rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("ErrorRateMatrix", "must be a column vector (n×1 matrix)")
	}

	return ErrorRate(mat.Col(nil, 0, yTrue), mat.Col(nil, 0, yPred))
}

// Agreement は a と b が一致する要素の割合 (1 − ErrorRate) を計算する
func Agreement(a, b []float64) (float64, error) {
	e, err := ErrorRate(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - e, nil
}
