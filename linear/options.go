package linear

import (
	"math/rand/v2"

	"github.com/statlearn/lfd/core/linalg"
	"github.com/statlearn/lfd/pkg/log"
)

const (
	// DefaultLearningRate is the PLA step size.
	DefaultLearningRate = 0.01
	// DefaultMaxIter is the PLA pass budget.
	DefaultMaxIter = 1000
)

// PerceptronOption configures a Perceptron.
type PerceptronOption func(*Perceptron)

// WithLearningRate sets the update step size. It must be positive.
func WithLearningRate(eta float64) PerceptronOption {
	return func(p *Perceptron) {
		p.learningRate = eta
	}
}

// WithMaxIter sets the maximum number of passes over the training set.
func WithMaxIter(n int) PerceptronOption {
	return func(p *Perceptron) {
		p.maxIter = n
	}
}

// WithRandomState seeds the generator used for weight initialisation.
func WithRandomState(seed uint64) PerceptronOption {
	return func(p *Perceptron) {
		p.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand uses r for weight initialisation. The experiment harness passes
// the trial's own generator so that each trial is reproducible.
func WithRand(r *rand.Rand) PerceptronOption {
	return func(p *Perceptron) {
		p.rng = r
	}
}

// WithConvergenceCheck enables or disables early stopping after a pass with
// no weight updates. Enabled by default; when disabled Fit always runs the
// full pass budget.
func WithConvergenceCheck(enabled bool) PerceptronOption {
	return func(p *Perceptron) {
		p.checkConvergence = enabled
	}
}

// WithPerceptronLogger sets the logger used during Fit.
func WithPerceptronLogger(l log.Logger) PerceptronOption {
	return func(p *Perceptron) {
		p.logger = l
	}
}

// RegressionOption configures a LinearRegression.
type RegressionOption func(*LinearRegression)

// WithPartialPivoting makes the normal-equation inversion swap rows to the
// largest available pivot. Without it only exact zero pivots fail.
func WithPartialPivoting() RegressionOption {
	return func(lr *LinearRegression) {
		lr.pivoting = linalg.PartialPivoting
	}
}

// WithRegressionLogger sets the logger used during Fit.
func WithRegressionLogger(l log.Logger) RegressionOption {
	return func(lr *LinearRegression) {
		lr.logger = l
	}
}
