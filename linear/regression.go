package linear

import (
	"github.com/statlearn/lfd/core/linalg"
	"github.com/statlearn/lfd/core/model"
	"github.com/statlearn/lfd/core/parallel"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearRegression は正規方程式による線形回帰を符号で分類器として使うモデル。
// ラベルは Signed 符号化（+1 / -1）で扱う。
type LinearRegression struct {
	state    *model.StateManager
	pivoting linalg.Pivoting
	logger   log.Logger

	weights []float64 // 先頭がバイアス
}

var _ model.Classifier = (*LinearRegression)(nil)

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...RegressionOption) *LinearRegression {
	lr := &LinearRegression{
		state:    model.NewStateManager("LinearRegression"),
		pivoting: linalg.NoPivoting,
	}
	for _, opt := range opts {
		opt(lr)
	}
	if lr.logger == nil {
		lr.logger = log.GetLogger().With(log.ModelNameKey, "LinearRegression")
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用
//
// X^T X が特異な場合は ErrSingularMatrix にマッチするエラーを返す。
// 擬似逆行列へのフォールバックは行わない。
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	const op = "LinearRegression.Fit"

	// 入力の検証
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	ry, cy := y.Dims()
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}

	lr.state.Reset()

	// 切片項のために X に 1 の列を追加
	xb := linalg.PrependColumn(linalg.FromMatrix(X), 1)
	yv := mat.Col(nil, 0, y)

	xt, err := linalg.Transpose(xb)
	if err != nil {
		return err
	}
	xtx, err := linalg.Multiply(xt, xb)
	if err != nil {
		return err
	}
	inv, err := linalg.Inverse(xtx, linalg.WithPivoting(lr.pivoting))
	if err != nil {
		if errors.Is(err, errors.ErrSingularMatrix) {
			lr.logger.Debug("normal equations are singular",
				log.OperationKey, log.OperationInvert,
				log.ErrorCodeKey, log.ErrorSingularMatrix,
				log.SamplesKey, r,
			)
			return errors.NewModelError(op, "singular matrix", err)
		}
		return err
	}
	xty, err := linalg.MulVec(xt, yv)
	if err != nil {
		return err
	}
	w, err := linalg.MulVec(inv, xty)
	if err != nil {
		return err
	}

	// ほぼ零のピボットを受け入れた場合は重みが発散しうる
	if err := errors.CheckNumericalStability(op, w, 0); err != nil {
		errors.Warn(err)
	}

	lr.weights = w
	lr.state.SetFitted(c, r)

	lr.logger.Debug("linear regression fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)
	return nil
}

// Decision は各行に対する w·[1, x] の値を列ベクトルで返す
func (lr *LinearRegression) Decision(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := lr.state.RequireFeatures("Decision", c); err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, errors.NewModelError("LinearRegression.Decision", "empty data", errors.ErrEmptyData)
	}

	out := make([]float64, r)

	// 並列処理の閾値（この値以下の行数では逐次処理を使用）
	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, 0, func(start, end int) {
		aug := make([]float64, c+1)
		aug[0] = 1
		for i := start; i < end; i++ {
			mat.Row(aug[1:], i, X)
			out[i] = floats.Dot(aug, lr.weights)
		}
	})
	return mat.NewDense(r, 1, out), nil
}

// Predict は w·[1, x] の符号で分類する（0 以上で +1、負で -1）
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}
	d, err := lr.Decision(X)
	if err != nil {
		return nil, err
	}
	out := d.(*mat.Dense)
	r, _ := out.Dims()
	for i := 0; i < r; i++ {
		out.Set(i, 0, sign(out.At(i, 0)))
	}
	return out, nil
}

// Weights は学習済みの重み（先頭がバイアス）のコピーを返す
func (lr *LinearRegression) Weights() []float64 {
	if lr.weights == nil {
		return nil
	}
	return append([]float64(nil), lr.weights...)
}

// Encoding は線形回帰分類器のラベル符号化 (Signed) を返す
func (lr *LinearRegression) Encoding() model.LabelEncoding {
	return model.Signed
}

// IsFitted はモデルが学習済みかどうかを返す
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}
