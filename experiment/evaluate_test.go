package experiment

import (
	"math/rand/v2"
	"testing"

	"github.com/statlearn/lfd/linear"
	"github.com/statlearn/lfd/pkg/log"
	"github.com/statlearn/lfd/preprocessing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitSigned_TranslatesForPerceptron(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewPCG(10, 20)))
	ds := g.Dataset(20)

	pla := linear.NewPerceptron(linear.WithRand(g.Rand), linear.WithPerceptronLogger(log.Nop()))
	require.NoError(t, FitSigned(pla, ds.X, ds.Y))

	pred, err := PredictSigned(pla, ds.X)
	require.NoError(t, err)
	for _, v := range pred {
		assert.Contains(t, []float64{-1, 1}, v)
	}
	if pla.Converged() {
		ein, err := InSampleError(pla, ds.X, ds.Y)
		require.NoError(t, err)
		assert.Zero(t, ein)
	}
}

func TestOutOfSampleError_LinearRegression(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewPCG(4, 4)))
	total := 0.0
	const draws = 20
	for i := 0; i < draws; i++ {
		ds := g.Dataset(100)
		lr := linear.NewLinearRegression(linear.WithRegressionLogger(log.Nop()))
		require.NoError(t, FitSigned(lr, ds.X, ds.Y))

		eout, err := OutOfSampleError(lr, ds.Target, g, 1000, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, eout, 0.0)
		assert.LessOrEqual(t, eout, 1.0)
		total += eout
	}
	assert.Less(t, total/draws, 0.15)
}

func TestOutOfSampleError_WithTransform(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewPCG(8, 8)))
	ds := g.Dataset(200)
	Xt, err := Transform(preprocessing.Quadratic{}, ds.X)
	require.NoError(t, err)

	lr := linear.NewLinearRegression(linear.WithRegressionLogger(log.Nop()))
	require.NoError(t, FitSigned(lr, Xt, ds.Y))
	assert.Len(t, lr.Weights(), 6)

	eout, err := OutOfSampleError(lr, ds.Target, g, 500, preprocessing.Quadratic{})
	require.NoError(t, err)
	assert.Less(t, eout, 0.5)
}
