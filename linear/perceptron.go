package linear

import (
	"fmt"
	"math/rand/v2"

	"github.com/statlearn/lfd/core/linalg"
	"github.com/statlearn/lfd/core/model"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Perceptron はPLA（Perceptron Learning Algorithm）による二値分類器。
// ラベルは ZeroOne 符号化（正例 1、負例 0）で扱う。
type Perceptron struct {
	state *model.StateManager

	// ハイパーパラメータ
	learningRate     float64
	maxIter          int
	checkConvergence bool
	rng              *rand.Rand
	logger           log.Logger

	// 学習結果
	weights    []float64 // 先頭がバイアス
	iterations int       // 実際に実行したパス数
	converged  bool
}

var _ model.Classifier = (*Perceptron)(nil)

// NewPerceptron は新しいPerceptronを作成する
func NewPerceptron(opts ...PerceptronOption) *Perceptron {
	p := &Perceptron{
		state:            model.NewStateManager("Perceptron"),
		learningRate:     DefaultLearningRate,
		maxIter:          DefaultMaxIter,
		checkConvergence: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.GetLogger().With(log.ModelNameKey, "Perceptron")
	}
	return p
}

// Fit はPLAで重みを学習する。
//
// 重みは [0,1) の一様乱数で初期化され、X の先頭に定数 1 の列が追加される。
// 各パスでサンプルを順に走査し、その時点の重みでの予測 ŷ を使って
// w_j += η (y_i − ŷ_i) x_ij を即座に適用する。
// 収束判定が有効な場合、更新が一度も起きなかったパスの後で停止する。
func (p *Perceptron) Fit(X, y mat.Matrix) error {
	const op = "Perceptron.Fit"

	if p.learningRate <= 0 {
		return errors.NewValidationError("learningRate", "must be positive", p.learningRate)
	}
	if p.maxIter <= 0 {
		return errors.NewValidationError("maxIter", "must be positive", p.maxIter)
	}

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	ry, cy := y.Dims()
	if ry != rows {
		return errors.NewDimensionError(op, rows, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}

	labels := mat.Col(nil, 0, y)
	for i, v := range labels {
		if !model.ZeroOne.Valid(v) {
			return errors.NewValueError(op, fmt.Sprintf("label %v at row %d is not in {0, 1}", v, i))
		}
	}

	p.state.Reset()
	samples := linalg.PrependColumn(linalg.FromMatrix(X), 1)

	w := make([]float64, cols+1)
	for j := range w {
		w[j] = p.float64()
	}

	passes := 0
	converged := false
	for iter := 0; iter < p.maxIter; iter++ {
		passes++
		updates := 0
		for i, x := range samples {
			delta := labels[i] - step(floats.Dot(x, w))
			if delta != 0 {
				floats.AddScaled(w, p.learningRate*delta, x)
				updates++
			}
		}
		// 更新のないパスの後は重みが変わらないので、以降のパスも全て更新なし
		converged = updates == 0
		if converged && p.checkConvergence {
			break
		}
	}

	p.weights = w
	p.iterations = passes
	p.converged = converged
	p.state.SetFitted(cols, rows)

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("Perceptron", passes, "training data may not be linearly separable"))
	}

	p.logger.Debug("perceptron fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.IterationKey, passes,
		log.ConvergedKey, converged,
	)
	return nil
}

// PredictOne は1サンプル（バイアスなしの特徴量）を分類し、1 または 0 を返す
func (p *Perceptron) PredictOne(x []float64) (float64, error) {
	if err := p.state.RequireFeatures("PredictOne", len(x)); err != nil {
		return 0, err
	}
	aug := make([]float64, len(x)+1)
	aug[0] = 1
	copy(aug[1:], x)
	return step(floats.Dot(aug, p.weights)), nil
}

// Predict は各行を分類し、ZeroOne 符号化の列ベクトルを返す
func (p *Perceptron) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	if err := p.state.RequireFeatures("Predict", cols); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errors.NewModelError("Perceptron.Predict", "empty data", errors.ErrEmptyData)
	}
	out := mat.NewDense(rows, 1, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, X)
		v, err := p.PredictOne(row)
		if err != nil {
			return nil, err
		}
		out.Set(i, 0, v)
	}
	return out, nil
}

// Weights は学習済みの重み（先頭がバイアス）のコピーを返す
func (p *Perceptron) Weights() []float64 {
	if p.weights == nil {
		return nil
	}
	return append([]float64(nil), p.weights...)
}

// Iterations は直近のFitで実行したパス数を返す
func (p *Perceptron) Iterations() int {
	return p.iterations
}

// Converged は直近のFitが更新のないパスに到達したかを返す
func (p *Perceptron) Converged() bool {
	return p.converged
}

// Encoding はPerceptronのラベル符号化 (ZeroOne) を返す
func (p *Perceptron) Encoding() model.LabelEncoding {
	return model.ZeroOne
}

// IsFitted はモデルが学習済みかどうかを返す
func (p *Perceptron) IsFitted() bool {
	return p.state.IsFitted()
}

func (p *Perceptron) float64() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}

// step は活性化関数: 正なら 1、それ以外は 0
func step(v float64) float64 {
	if v > 0 {
		return 1
	}
	return 0
}
