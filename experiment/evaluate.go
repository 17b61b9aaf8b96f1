package experiment

import (
	"github.com/statlearn/lfd/core/model"
	"github.com/statlearn/lfd/metrics"
	"gonum.org/v1/gonum/mat"
)

// FitSigned trains c on Signed labels, encoding them for the model first.
func FitSigned(c model.Classifier, X mat.Matrix, y []float64) error {
	return c.Fit(X, model.EncodeAll(y, c.Encoding()))
}

// PredictSigned predicts with c and decodes the result to Signed labels.
func PredictSigned(c model.Classifier, X mat.Matrix) ([]float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return nil, err
	}
	return model.DecodeAll(pred, c.Encoding())
}

// Transform applies tr to X, or returns X unchanged when tr is nil.
func Transform(tr model.Transformer, X mat.Matrix) (mat.Matrix, error) {
	if tr == nil {
		return X, nil
	}
	return tr.Transform(X)
}

// InSampleError is E_in: the fraction of training points the fitted model
// misclassifies against the (possibly noisy) training labels y.
func InSampleError(c model.Classifier, X mat.Matrix, y []float64) (float64, error) {
	pred, err := PredictSigned(c, X)
	if err != nil {
		return 0, err
	}
	return metrics.ErrorRate(y, pred)
}

// OutOfSampleError estimates E_out = P[f ≠ g] on n fresh points from gen,
// comparing the fitted model against the noise-free target. The points are
// passed through tr before prediction.
func OutOfSampleError(c model.Classifier, target Target, gen *Generator, n int, tr model.Transformer) (float64, error) {
	X := gen.Points(n)
	truth := target.LabelAll(X)
	Xt, err := Transform(tr, X)
	if err != nil {
		return 0, err
	}
	pred, err := PredictSigned(c, Xt)
	if err != nil {
		return 0, err
	}
	return metrics.ErrorRate(truth, pred)
}
