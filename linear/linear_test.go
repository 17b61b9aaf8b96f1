package linear

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/statlearn/lfd/core/model"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// separable は直線 w·[1,x] = 0 で分離されたデータを生成する。
// ラベルは enc の表現で返す。
func separable(r *rand.Rand, n int, enc model.LabelEncoding) (*mat.Dense, *mat.Dense, []float64) {
	w := []float64{r.Float64()*0.5 - 0.25, r.Float64()*2 - 1, r.Float64()*2 - 1}
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x1, x2 := r.Float64()*2-1, r.Float64()*2-1
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		y.Set(i, 0, model.Encode(w[0]+w[1]*x1+w[2]*x2, enc))
	}
	return X, y, w
}

func errorCount(t *testing.T, c model.Classifier, X, y mat.Matrix) int {
	t.Helper()
	pred, err := c.Predict(X)
	require.NoError(t, err)
	r, _ := y.Dims()
	n := 0
	for i := 0; i < r; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			n++
		}
	}
	return n
}

// captureWarnings はテスト中に発生した警告を収集する
func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var mu sync.Mutex
	var got []error
	errors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, w)
	})
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), got...)
	}
}

func TestPerceptron_SeparableReachesZeroInSampleError(t *testing.T) {
	captureWarnings(t)
	r := rand.New(rand.NewPCG(2024, 1))

	const draws = 100
	perfect := 0
	for d := 0; d < draws; d++ {
		X, y, _ := separable(r, 10, model.ZeroOne)
		p := NewPerceptron(WithRand(r), WithPerceptronLogger(log.Nop()))
		require.NoError(t, p.Fit(X, y))

		assert.GreaterOrEqual(t, p.Iterations(), 1)
		assert.LessOrEqual(t, p.Iterations(), DefaultMaxIter)
		if errorCount(t, p, X, y) == 0 {
			perfect++
			assert.True(t, p.Converged())
		}
	}
	assert.GreaterOrEqual(t, perfect, 90, "PLA should separate almost every draw")
}

func TestPerceptron_ConvergedPassIsClean(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		-1, -1,
		-0.5, -0.8,
		1, 1,
		0.7, 0.9,
	})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	p := NewPerceptron(WithRandomState(7), WithLearningRate(0.1), WithPerceptronLogger(log.Nop()))
	require.NoError(t, p.Fit(X, y))
	require.True(t, p.Converged())
	assert.Equal(t, 0, errorCount(t, p, X, y))
	assert.Len(t, p.Weights(), 3)
	assert.Equal(t, model.ZeroOne, p.Encoding())

	got, err := p.PredictOne([]float64{0.9, 0.9})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestPerceptron_WithoutConvergenceCheckRunsFullBudget(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{-1, 1})
	y := mat.NewDense(2, 1, []float64{0, 1})

	p := NewPerceptron(WithRandomState(1), WithMaxIter(25), WithConvergenceCheck(false), WithPerceptronLogger(log.Nop()))
	require.NoError(t, p.Fit(X, y))
	assert.Equal(t, 25, p.Iterations())
	assert.True(t, p.Converged())
}

func TestPerceptron_NonSeparableWarns(t *testing.T) {
	warnings := captureWarnings(t)

	// XOR は線形分離不可能
	X := mat.NewDense(4, 2, []float64{0, 0, 1, 1, 1, 0, 0, 1})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	p := NewPerceptron(WithRandomState(3), WithMaxIter(20), WithPerceptronLogger(log.Nop()))
	require.NoError(t, p.Fit(X, y))
	assert.False(t, p.Converged())
	assert.Equal(t, 20, p.Iterations())

	got := warnings()
	require.Len(t, got, 1)
	var cw *errors.ConvergenceWarning
	require.True(t, errors.As(got[0], &cw))
	assert.Equal(t, "Perceptron", cw.Algorithm)
	assert.Equal(t, 20, cw.Iterations)
}

func TestPerceptron_Deterministic(t *testing.T) {
	X, y, _ := separable(rand.New(rand.NewPCG(5, 5)), 20, model.ZeroOne)

	a := NewPerceptron(WithRandomState(99), WithPerceptronLogger(log.Nop()))
	b := NewPerceptron(WithRandomState(99), WithPerceptronLogger(log.Nop()))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.Weights(), b.Weights())
	assert.Equal(t, a.Iterations(), b.Iterations())
}

func TestPerceptron_Errors(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	t.Run("signed labels", func(t *testing.T) {
		p := NewPerceptron(WithPerceptronLogger(log.Nop()))
		err := p.Fit(X, mat.NewDense(2, 1, []float64{1, -1}))
		var ve *errors.ValueError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("row mismatch", func(t *testing.T) {
		p := NewPerceptron(WithPerceptronLogger(log.Nop()))
		err := p.Fit(X, mat.NewDense(3, 1, []float64{1, 0, 1}))
		var de *errors.DimensionError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 0, de.Axis)
	})

	t.Run("invalid hyperparameters", func(t *testing.T) {
		for _, p := range []*Perceptron{
			NewPerceptron(WithLearningRate(0), WithPerceptronLogger(log.Nop())),
			NewPerceptron(WithMaxIter(-1), WithPerceptronLogger(log.Nop())),
		} {
			err := p.Fit(X, mat.NewDense(2, 1, []float64{1, 0}))
			var ve *errors.ValidationError
			assert.True(t, errors.As(err, &ve))
		}
	})

	t.Run("predict before fit", func(t *testing.T) {
		p := NewPerceptron(WithPerceptronLogger(log.Nop()))
		_, err := p.Predict(X)
		var nf *errors.NotFittedError
		assert.True(t, errors.As(err, &nf))
		_, err = p.PredictOne([]float64{1, 2})
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("wrong feature count", func(t *testing.T) {
		p := NewPerceptron(WithPerceptronLogger(log.Nop()))
		require.NoError(t, p.Fit(X, mat.NewDense(2, 1, []float64{1, 0})))
		_, err := p.PredictOne([]float64{1, 2, 3})
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})
}

func TestPerceptron_LogsFit(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	X := mat.NewDense(2, 1, []float64{-1, 1})
	y := mat.NewDense(2, 1, []float64{0, 1})

	p := NewPerceptron(WithRandomState(1), WithPerceptronLogger(logger))
	require.NoError(t, p.Fit(X, y))
	assert.True(t, logger.ContainsMessage("perceptron fitted"))
	assert.True(t, logger.ContainsField(log.ConvergedKey, true))
}

func TestLinearRegression_RecoversLinearRule(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 13))
	trueW := []float64{0.3, -1.2, 2.5}

	const n = 50
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x1, x2 := r.Float64()*2-1, r.Float64()*2-1
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		y.Set(i, 0, trueW[0]+trueW[1]*x1+trueW[2]*x2)
	}

	for _, lr := range []*LinearRegression{
		NewLinearRegression(WithRegressionLogger(log.Nop())),
		NewLinearRegression(WithPartialPivoting(), WithRegressionLogger(log.Nop())),
	} {
		require.NoError(t, lr.Fit(X, y))
		w := lr.Weights()
		require.Len(t, w, 3)
		for j := range trueW {
			assert.InDelta(t, trueW[j], w[j], 1e-9)
		}

		pred, err := lr.Predict(X)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			assert.Equal(t, sign(y.At(i, 0)), pred.At(i, 0))
		}

		d, err := lr.Decision(X)
		require.NoError(t, err)
		assert.InDelta(t, y.At(0, 0), d.At(0, 0), 1e-9)
	}
}

func TestLinearRegression_ClassifiesSeparableData(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	const draws = 50
	total := 0.0
	aligned := 0
	for d := 0; d < draws; d++ {
		X, y, trueW := separable(r, 100, model.Signed)
		lr := NewLinearRegression(WithRegressionLogger(log.Nop()))
		require.NoError(t, lr.Fit(X, y))
		total += float64(errorCount(t, lr, X, y)) / 100

		// 法線ベクトルの向きがおおむね一致すること
		w := lr.Weights()
		cos := (w[1]*trueW[1] + w[2]*trueW[2]) /
			(math.Hypot(w[1], w[2]) * math.Hypot(trueW[1], trueW[2]))
		if cos > 0.9 {
			aligned++
		}
	}
	assert.Less(t, total/draws, 0.1)
	assert.GreaterOrEqual(t, aligned, 40)
	assert.Equal(t, model.Signed, NewLinearRegression().Encoding())
}

func TestLinearRegression_Singular(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	lr := NewLinearRegression(WithRegressionLogger(logger))

	// 全て同じ行では X^T X が特異になる
	X := mat.NewDense(3, 2, []float64{1, 1, 1, 1, 1, 1})
	y := mat.NewDense(3, 1, []float64{1, -1, 1})

	err := lr.Fit(X, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))

	var me *errors.ModelError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "LinearRegression.Fit", me.Op)
	assert.False(t, lr.IsFitted())
	assert.True(t, logger.ContainsField(log.ErrorCodeKey, log.ErrorSingularMatrix))
}

func TestLinearRegression_Errors(t *testing.T) {
	lr := NewLinearRegression(WithRegressionLogger(log.Nop()))
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 5, 8, 13})

	_, err := lr.Predict(X)
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))
	assert.Nil(t, lr.Weights())

	err = lr.Fit(X, mat.NewDense(2, 1, []float64{1, -1}))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	require.NoError(t, lr.Fit(X, mat.NewDense(3, 1, []float64{1, -1, 1})))
	_, err = lr.Predict(mat.NewDense(1, 3, []float64{1, 2, 3}))
	assert.True(t, errors.As(err, &de))
}
