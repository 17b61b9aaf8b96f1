package exercises

import (
	"context"
	"fmt"

	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/linear"
	"github.com/statlearn/lfd/pkg/log"
)

const (
	// PLAPoints is the training-set size of the PLA exercises.
	PLAPoints = 10
	// DisagreementPoints is the number of fresh points used to estimate P[f ≠ g].
	DisagreementPoints = 1000

	metricIterations   = "iterations"
	metricDisagreement = "P[f≠g]"
)

var (
	iterationChoices    = experiment.Choices(1, 15, 300, 5000, 10000)
	disagreementChoices = experiment.Choices(0.001, 0.01, 0.1, 0.5)
)

const plaSetup = `Take d = 2 and X = [-1, 1] × [-1, 1] with uniform probability. Choose a random
line through two random points of X as the target f (+1 on one side, -1 on the
other). Pick N random points of X as inputs and evaluate f on them. Run the
Perceptron Learning Algorithm until it converges, starting from weights drawn
uniformly from [0, 1). Repeat the experiment for 1000 runs and average.`

// plaTrial fits one PLA on PLAPoints points and, when measureDisagreement is
// set, estimates P[f ≠ g] on fresh points.
func plaTrial(measureDisagreement bool) experiment.TrialFunc {
	return func(_ context.Context, t experiment.Trial) (experiment.Result, error) {
		gen := t.Generator()
		ds := gen.Dataset(PLAPoints)

		pla := linear.NewPerceptron(linear.WithRand(t.Rand), linear.WithPerceptronLogger(log.Nop()))
		if err := experiment.FitSigned(pla, ds.X, ds.Y); err != nil {
			return experiment.Result{}, err
		}

		metrics := map[string]float64{metricIterations: float64(pla.Iterations())}
		if measureDisagreement {
			p, err := experiment.OutOfSampleError(pla, ds.Target, gen, DisagreementPoints, nil)
			if err != nil {
				return experiment.Result{}, err
			}
			metrics[metricDisagreement] = p
		}
		return experiment.Result{Metrics: metrics}, nil
	}
}

func plaIterations() experiment.Entry {
	key := experiment.Key(List, 7, "")
	title := fmt.Sprintf("PLA iterations to converge, N = %d", PLAPoints)
	return experiment.Entry{
		Key:    key,
		Title:  title,
		Trials: true,
		Statement: plaSetup + fmt.Sprintf(`

7. Take N = %d. How many iterations does it take on average for the PLA to
converge? Pick the value closest to your result.
[a] 1  [b] 15  [c] 300  [d] 5000  [e] 10000`, PLAPoints),
		Run: func(ctx context.Context, opts experiment.RunOptions) (*experiment.Report, error) {
			s, err := harness(opts, key).Run(ctx, plaTrial(false))
			if err != nil {
				return nil, err
			}
			report := &experiment.Report{Key: key, Title: title, Runs: s.Runs, Skipped: s.Skipped}
			if err := report.AddSummaryMetric(s, metricIterations, iterationChoices...); err != nil {
				return nil, err
			}
			closest := report.Metrics[0].Closest
			report.Answer = closest.Letter
			report.Note = fmt.Sprintf("mean %.3f iterations is closest to %g", s.Means[metricIterations], closest.Value)
			return report, nil
		},
	}
}

func plaDisagreement() experiment.Entry {
	key := experiment.Key(List, 8, "")
	title := fmt.Sprintf("PLA disagreement P[f≠g], N = %d", PLAPoints)
	return experiment.Entry{
		Key:    key,
		Title:  title,
		Trials: true,
		Statement: plaSetup + fmt.Sprintf(`

8. Which of the following is closest to P[f(x) ≠ g(x)] for N = %d? Estimate
it on %d fresh points per run.
[a] 0.001  [b] 0.01  [c] 0.1  [d] 0.5`, PLAPoints, DisagreementPoints),
		Run: func(ctx context.Context, opts experiment.RunOptions) (*experiment.Report, error) {
			s, err := harness(opts, key).Run(ctx, plaTrial(true))
			if err != nil {
				return nil, err
			}
			report := &experiment.Report{Key: key, Title: title, Runs: s.Runs, Skipped: s.Skipped}
			if err := report.AddSummaryMetric(s, metricIterations, iterationChoices...); err != nil {
				return nil, err
			}
			if err := report.AddSummaryMetric(s, metricDisagreement, disagreementChoices...); err != nil {
				return nil, err
			}
			closest := report.Metrics[1].Closest
			report.Answer = closest.Letter
			report.Note = fmt.Sprintf("mean P[f≠g] %.4f is closest to %g", s.Means[metricDisagreement], closest.Value)
			return report, nil
		},
	}
}
