package exercises

import (
	"context"
	"fmt"

	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/linear"
	"github.com/statlearn/lfd/metrics"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
	"github.com/statlearn/lfd/preprocessing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// RegressionPoints is the training-set size of the regression exercises.
	RegressionPoints = 1000
	// NoiseFraction is the share of training labels flipped.
	NoiseFraction = 0.1
	// AgreementPoints is the number of fresh points used to compare hypotheses.
	AgreementPoints = 1000

	metricInSample = "E_in"
)

var inSampleChoices = experiment.Choices(0, 0.1, 0.3, 0.5, 0.8)

// QuadraticCandidates are the weight vectors over (1, x1, x2, x1x2, x1², x2²)
// offered as answers in the quadratic-feature exercise, keyed by letter.
var QuadraticCandidates = []struct {
	Letter  string
	Weights []float64
}{
	{"a", []float64{-1, -0.05, 0.08, 0.13, 1.5, 1.5}},
	{"b", []float64{-1, -0.05, 0.08, 0.13, 1.5, 15}},
	{"c", []float64{-1, -0.05, 0.08, 0.13, 15, 1.5}},
	{"d", []float64{-1, -1.5, 0.08, 0.13, 0.05, 0.05}},
	{"e", []float64{-1, -0.05, 0.08, 1.5, 0.15, 0.15}},
}

const regressionSetup = `Generate N = %d training points uniformly in [-1, 1] × [-1, 1] labelled by a
random line target, then flip the sign of a randomly chosen %.0f%% of the labels.
Fit Linear Regression through the normal equations. Repeat 1000 times.`

func newRegression() *linear.LinearRegression {
	return linear.NewLinearRegression(linear.WithRegressionLogger(log.Nop()))
}

func regressionInSample() experiment.Entry {
	key := experiment.Key(List, 8, "b")
	title := "Linear Regression E_in with label noise, features (1, x1, x2)"
	return experiment.Entry{
		Key:    key,
		Title:  title,
		Trials: true,
		Statement: fmt.Sprintf(regressionSetup, RegressionPoints, NoiseFraction*100) + `

8. Without transformation, i.e. with feature vector (1, x1, x2), what is the
closest value to the classification in-sample error E_in?
[a] 0  [b] 0.1  [c] 0.3  [d] 0.5  [e] 0.8`,
		Run: func(ctx context.Context, opts experiment.RunOptions) (*experiment.Report, error) {
			h := harness(opts, key, experiment.WithSkip(errors.ErrSingularMatrix))
			s, err := h.Run(ctx, func(_ context.Context, t experiment.Trial) (experiment.Result, error) {
				ds, err := t.Generator().NoisyDataset(RegressionPoints, NoiseFraction)
				if err != nil {
					return experiment.Result{}, err
				}
				lr := newRegression()
				if err := experiment.FitSigned(lr, ds.X, ds.Y); err != nil {
					return experiment.Result{}, err
				}
				ein, err := experiment.InSampleError(lr, ds.X, ds.Y)
				if err != nil {
					return experiment.Result{}, err
				}
				return experiment.Result{Metrics: map[string]float64{metricInSample: ein}}, nil
			})
			if err != nil {
				return nil, err
			}

			report := &experiment.Report{Key: key, Title: title, Runs: s.Runs, Skipped: s.Skipped}
			if err := report.AddSummaryMetric(s, metricInSample, inSampleChoices...); err != nil {
				return nil, err
			}
			closest := report.Metrics[0].Closest
			report.Answer = closest.Letter
			report.Note = fmt.Sprintf("mean E_in %.4f is closest to %g", s.Means[metricInSample], closest.Value)
			return report, nil
		},
	}
}

// quadraticSigns evaluates sign(w·[1, φ(x)]) on already transformed rows.
func quadraticSigns(w []float64, Xt mat.Matrix) []float64 {
	r, c := Xt.Dims()
	out := make([]float64, r)
	aug := make([]float64, c+1)
	aug[0] = 1
	for i := 0; i < r; i++ {
		mat.Row(aug[1:], i, Xt)
		if floats.Dot(w, aug) >= 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

// closestCandidate returns the letter of the candidate agreeing most with
// the fitted predictions on Xt. Ties go to the earlier letter.
func closestCandidate(pred []float64, Xt mat.Matrix) (string, float64, error) {
	best, bestAgreement := "", -1.0
	for _, c := range QuadraticCandidates {
		a, err := metrics.Agreement(quadraticSigns(c.Weights, Xt), pred)
		if err != nil {
			return "", 0, err
		}
		if a > bestAgreement {
			best, bestAgreement = c.Letter, a
		}
	}
	return best, bestAgreement, nil
}

func quadraticHypothesis() experiment.Entry {
	key := experiment.Key(List, 9, "")
	title := "Linear Regression on (1, x1, x2, x1x2, x1², x2²): closest hypothesis"
	return experiment.Entry{
		Key:    key,
		Title:  title,
		Trials: true,
		Statement: fmt.Sprintf(regressionSetup, RegressionPoints, NoiseFraction*100) + `

Transform the training data into the nonlinear feature vector
(1, x1, x2, x1x2, x1², x2²).
9. Find the weight vector w of the Linear Regression solution. Which hypothesis
is closest to yours? Closest means the one that agrees most with your
hypothesis on a randomly selected point.
[a] sign(-1 - 0.05x1 + 0.08x2 + 0.13x1x2 + 1.5x1² + 1.5x2²)
[b] sign(-1 - 0.05x1 + 0.08x2 + 0.13x1x2 + 1.5x1² + 15x2²)
[c] sign(-1 - 0.05x1 + 0.08x2 + 0.13x1x2 + 15x1² + 1.5x2²)
[d] sign(-1 - 1.5x1 + 0.08x2 + 0.13x1x2 + 0.05x1² + 0.05x2²)
[e] sign(-1 - 0.05x1 + 0.08x2 + 1.5x1x2 + 0.15x1² + 0.15x2²)`,
		Run: func(ctx context.Context, opts experiment.RunOptions) (*experiment.Report, error) {
			tr := preprocessing.Quadratic{}
			h := harness(opts, key, experiment.WithSkip(errors.ErrSingularMatrix))
			s, err := h.Run(ctx, func(_ context.Context, t experiment.Trial) (experiment.Result, error) {
				gen := t.Generator()
				ds, err := gen.NoisyDataset(RegressionPoints, NoiseFraction)
				if err != nil {
					return experiment.Result{}, err
				}
				Xt, err := experiment.Transform(tr, ds.X)
				if err != nil {
					return experiment.Result{}, err
				}
				lr := newRegression()
				if err := experiment.FitSigned(lr, Xt, ds.Y); err != nil {
					return experiment.Result{}, err
				}

				fresh, err := experiment.Transform(tr, gen.Points(AgreementPoints))
				if err != nil {
					return experiment.Result{}, err
				}
				pred, err := experiment.PredictSigned(lr, fresh)
				if err != nil {
					return experiment.Result{}, err
				}
				letter, agreement, err := closestCandidate(pred, fresh)
				if err != nil {
					return experiment.Result{}, err
				}
				return experiment.Result{
					Metrics: map[string]float64{"agreement with closest": agreement},
					Vote:    letter,
				}, nil
			})
			if err != nil {
				return nil, err
			}

			report := &experiment.Report{Key: key, Title: title, Runs: s.Runs, Skipped: s.Skipped, Votes: s.Votes}
			if err := report.AddSummaryMetric(s, "agreement with closest"); err != nil {
				return nil, err
			}
			winner, count, ok := s.Winner()
			if !ok {
				return nil, errors.NewValueError("exercise "+key, "every trial was skipped")
			}
			report.Answer = winner
			report.Note = fmt.Sprintf("%s was closest in %d of %d trials", winner, count, s.Runs-s.Skipped)
			logger(opts, key).Debug("votes tallied", "votes", s.Votes)
			return report, nil
		},
	}
}
