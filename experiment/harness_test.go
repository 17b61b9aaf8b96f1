package experiment

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/statlearn/lfd/linear"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() HarnessOption { return WithLogger(log.Nop()) }

// randomTrial reports values drawn from the trial's own stream.
func randomTrial(_ context.Context, t Trial) (Result, error) {
	v := t.Rand.Float64()
	vote := "a"
	if v > 0.5 {
		vote = "b"
	}
	return Result{Metrics: map[string]float64{"v": v, "v2": v * v}, Vote: vote}, nil
}

func TestHarness_IdenticalAcrossWorkerCounts(t *testing.T) {
	var want *Summary
	for _, workers := range []int{1, 2, 3, 8, 0} {
		s, err := NewHarness(WithRuns(257), WithSeed(99), WithWorkers(workers), quiet()).
			Run(context.Background(), randomTrial)
		require.NoError(t, err)
		if want == nil {
			want = s
			continue
		}
		assert.Equal(t, want, s, "workers=%d", workers)
	}
	assert.Equal(t, 257, want.Runs)
	assert.Equal(t, 257, want.Votes["a"]+want.Votes["b"])
	assert.InDelta(t, 0.5, want.Means["v"], 0.1)
	assert.Equal(t, []string{"v", "v2"}, want.MetricNames())
}

func TestHarness_SeedChangesResults(t *testing.T) {
	a, err := NewHarness(WithRuns(10), WithSeed(1), quiet()).Run(context.Background(), randomTrial)
	require.NoError(t, err)
	b, err := NewHarness(WithRuns(10), WithSeed(2), quiet()).Run(context.Background(), randomTrial)
	require.NoError(t, err)
	assert.NotEqual(t, a.Means["v"], b.Means["v"])
}

func TestHarness_SkipsMatchingErrors(t *testing.T) {
	s, err := NewHarness(WithRuns(10), WithSkip(errors.ErrSingularMatrix), WithWorkers(3), quiet()).
		Run(context.Background(), func(_ context.Context, t Trial) (Result, error) {
			if t.Index%3 == 0 {
				return Result{}, errors.NewModelError("fit", "singular matrix",
					errors.NewSingularMatrixError("linalg.Inverse", 1))
			}
			return Result{Metrics: map[string]float64{"idx": float64(t.Index)}}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Skipped) // 0, 3, 6, 9
	// 1+2+4+5+7+8 = 27 over 6 trials
	assert.InDelta(t, 4.5, s.Means["idx"], 1e-12)
	assert.InDelta(t, math.Sqrt(7.5), s.StdDevs["idx"], 1e-12)
}

func TestHarness_ReturnsLowestFailingTrial(t *testing.T) {
	boom := errors.New("boom")
	for _, workers := range []int{1, 4} {
		_, err := NewHarness(WithRuns(100), WithWorkers(workers), quiet()).
			Run(context.Background(), func(_ context.Context, t Trial) (Result, error) {
				if t.Index == 37 || t.Index == 80 {
					return Result{}, errors.Wrapf(boom, "while running %d", t.Index)
				}
				return Result{}, nil
			})
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
		assert.Contains(t, err.Error(), "trial 37")
	}
}

func TestHarness_RecoversPanics(t *testing.T) {
	_, err := NewHarness(WithRuns(5), quiet()).
		Run(context.Background(), func(_ context.Context, t Trial) (Result, error) {
			if t.Index == 2 {
				panic("bad trial")
			}
			return Result{}, nil
		})
	var pe *errors.PanicError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad trial", pe.PanicValue)
}

func TestHarness_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHarness(WithRuns(5), quiet()).Run(ctx, randomTrial)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHarness_ProgressAndValidation(t *testing.T) {
	var calls atomic.Int64
	_, err := NewHarness(WithRuns(50), WithWorkers(4), WithProgress(func() { calls.Add(1) }), quiet()).
		Run(context.Background(), randomTrial)
	require.NoError(t, err)
	assert.Equal(t, int64(50), calls.Load())

	_, err = NewHarness(WithRuns(0), quiet()).Run(context.Background(), randomTrial)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestSummary_Winner(t *testing.T) {
	s := &Summary{Votes: map[string]int{"b": 3, "a": 3, "c": 1}}
	name, count, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, 3, count)

	_, _, ok = (&Summary{}).Winner()
	assert.False(t, ok)
}

func TestHarness_PLAMeanIterations(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })

	s, err := NewHarness(WithRuns(1000), WithSeed(2024), quiet()).
		Run(context.Background(), func(_ context.Context, t Trial) (Result, error) {
			ds := t.Generator().Dataset(10)
			pla := linear.NewPerceptron(linear.WithRand(t.Rand), linear.WithPerceptronLogger(log.Nop()))
			if err := FitSigned(pla, ds.X, ds.Y); err != nil {
				return Result{}, err
			}
			return Result{Metrics: map[string]float64{"iterations": float64(pla.Iterations())}}, nil
		})
	require.NoError(t, err)
	mean := s.Means["iterations"]
	assert.Greater(t, mean, 0.0)
	assert.Less(t, mean, 1000.0)
}
