package metrics

import (
	"testing"

	"github.com/statlearn/lfd/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestErrorRate(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{"all correct", []float64{1, -1, 1}, []float64{1, -1, 1}, 0},
		{"all wrong", []float64{1, -1}, []float64{-1, 1}, 1},
		{"one of four", []float64{1, 1, -1, -1}, []float64{1, -1, -1, -1}, 0.25},
		{"zero-one labels", []float64{0, 1, 1, 0, 1}, []float64{0, 1, 0, 0, 0}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ErrorRate(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)

			agree, err := Agreement(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, 1-tt.want, agree, 1e-12)
		})
	}
}

func TestErrorRate_Errors(t *testing.T) {
	_, err := ErrorRate(nil, nil)
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))

	_, err = ErrorRate([]float64{1, 1}, []float64{1})
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	_, err = Agreement([]float64{1}, []float64{1, 1})
	assert.True(t, errors.As(err, &de))
}

func TestErrorRateMatrix(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{1, -1, 1, -1})
	yPred := mat.NewDense(4, 1, []float64{1, 1, 1, -1})

	got, err := ErrorRateMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-12)

	_, err = ErrorRateMatrix(yTrue, mat.NewDense(3, 1, nil))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	_, err = ErrorRateMatrix(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil))
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}
