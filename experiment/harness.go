package experiment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/statlearn/lfd/core/parallel"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
	"gonum.org/v1/gonum/stat"
)

// DefaultRuns is the number of trials per experiment.
const DefaultRuns = 1000

// Trial is the per-trial context handed to a TrialFunc.
type Trial struct {
	Index int
	// Rand is seeded from the harness seed and Index only, so a trial's
	// random stream does not depend on scheduling.
	Rand *rand.Rand
}

// Generator returns a Generator over DefaultInterval drawing from t.Rand.
func (t Trial) Generator() *Generator {
	return NewGenerator(t.Rand)
}

// Result is what one trial reports back.
type Result struct {
	// Metrics are averaged across trials by name.
	Metrics map[string]float64
	// Vote, when non-empty, is tallied in Summary.Votes.
	Vote string
}

// TrialFunc runs one independent trial.
type TrialFunc func(ctx context.Context, t Trial) (Result, error)

// Summary aggregates the trials of one Run.
type Summary struct {
	Runs    int
	Skipped int
	// Means holds the mean of each metric over the trials that reported it,
	// summed in trial order.
	Means map[string]float64
	// StdDevs holds the sample standard deviation of each metric; it is 0
	// when fewer than two trials reported the metric.
	StdDevs map[string]float64
	Votes   map[string]int
}

// MetricNames returns the names in Means, sorted.
func (s *Summary) MetricNames() []string {
	names := lo.Keys(s.Means)
	sort.Strings(names)
	return names
}

// Winner returns the vote with the highest count; ties go to the name that
// sorts first. ok is false when there were no votes.
func (s *Summary) Winner() (name string, count int, ok bool) {
	if len(s.Votes) == 0 {
		return "", 0, false
	}
	names := lo.Keys(s.Votes)
	sort.Strings(names)
	best := lo.MaxBy(names, func(a, b string) bool { return s.Votes[a] > s.Votes[b] })
	return best, s.Votes[best], true
}

// HarnessOption configures a Harness.
type HarnessOption func(*Harness)

// WithRuns sets the number of trials.
func WithRuns(n int) HarnessOption {
	return func(h *Harness) { h.runs = n }
}

// WithSeed sets the base seed. Trial i draws from PCG(seed, i).
func WithSeed(seed uint64) HarnessOption {
	return func(h *Harness) { h.seed = seed }
}

// WithWorkers sets the number of worker goroutines; <= 0 means one per CPU.
func WithWorkers(n int) HarnessOption {
	return func(h *Harness) { h.workers = n }
}

// WithSkip makes trials failing with an error matching any of errs count as
// skipped instead of aborting the run.
func WithSkip(errs ...error) HarnessOption {
	return func(h *Harness) { h.skip = append(h.skip, errs...) }
}

// WithProgress registers a callback invoked once per finished trial. It may
// be called from several goroutines at once.
func WithProgress(fn func()) HarnessOption {
	return func(h *Harness) { h.progress = fn }
}

// WithLogger sets the harness logger.
func WithLogger(l log.Logger) HarnessOption {
	return func(h *Harness) { h.logger = l }
}

// Harness repeats a TrialFunc and aggregates the results.
type Harness struct {
	runs     int
	seed     uint64
	workers  int
	skip     []error
	progress func()
	logger   log.Logger
}

// NewHarness creates a Harness with DefaultRuns trials.
func NewHarness(opts ...HarnessOption) *Harness {
	h := &Harness{runs: DefaultRuns}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.GetLogger().With(log.ComponentKey, "harness")
	}
	return h
}

// Runs returns the configured number of trials.
func (h *Harness) Runs() int { return h.runs }

// Run executes all trials and aggregates them.
//
// Trials are spread over the workers in contiguous blocks and their results
// are stored by index, so the Summary is identical for any worker count.
// A panic in a trial is recovered into a PanicError. An error matching a
// WithSkip sentinel marks the trial skipped; any other error aborts the run
// and the error of the lowest failing trial index is returned. Trials after
// a known failure are not started.
func (h *Harness) Run(ctx context.Context, fn TrialFunc) (*Summary, error) {
	if h.runs <= 0 {
		return nil, errors.NewValidationError("runs", "must be positive", h.runs)
	}

	workers := parallel.Workers(h.workers, h.runs)
	h.logger.Debug("starting trials",
		log.RunsKey, h.runs,
		log.WorkersKey, workers,
		log.RandomSeedKey, h.seed,
	)
	began := time.Now()

	results := make([]Result, h.runs)
	errs := make([]error, h.runs)
	skipped := make([]bool, h.runs)

	var firstFailure atomic.Int64
	firstFailure.Store(int64(h.runs))

	parallel.Parallelize(h.runs, workers, func(start, end int) {
		for i := start; i < end; i++ {
			if int64(i) > firstFailure.Load() {
				return
			}
			if err := ctx.Err(); err != nil {
				errs[i] = err
				recordFailure(&firstFailure, i)
				return
			}

			trial := Trial{Index: i, Rand: rand.New(rand.NewPCG(h.seed, uint64(i)))}
			var res Result
			err := errors.SafeExecute(fmt.Sprintf("trial %d", i), func() error {
				var err error
				res, err = fn(ctx, trial)
				return err
			})

			switch {
			case err == nil:
				results[i] = res
			case h.skippable(err):
				skipped[i] = true
				h.logger.Debug("trial skipped", log.TrialKey, i, log.ErrAttrKey, err)
			default:
				errs[i] = err
				recordFailure(&firstFailure, i)
			}

			if h.progress != nil {
				h.progress()
			}
		}
	})

	if idx := int(firstFailure.Load()); idx < h.runs {
		err := errs[idx]
		h.logger.Error("trial failed", log.TrialKey, idx, log.ErrAttrKey, err)
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, errors.Wrap(err, "experiment cancelled")
		}
		return nil, errors.Wrapf(err, "trial %d", idx)
	}

	summary := aggregate(results, skipped)
	h.logger.Info("trials finished",
		log.RunsKey, summary.Runs,
		log.SkippedKey, summary.Skipped,
		log.DurationMsKey, time.Since(began).Milliseconds(),
	)
	return summary, nil
}

func (h *Harness) skippable(err error) bool {
	return lo.ContainsBy(h.skip, func(target error) bool {
		return errors.Is(err, target)
	})
}

// recordFailure lowers the shared failure index to i if i is smaller.
func recordFailure(first *atomic.Int64, i int) {
	for {
		cur := first.Load()
		if int64(i) >= cur || first.CompareAndSwap(cur, int64(i)) {
			return
		}
	}
}

func aggregate(results []Result, skipped []bool) *Summary {
	s := &Summary{
		Runs:    len(results),
		Means:   make(map[string]float64),
		StdDevs: make(map[string]float64),
		Votes:   make(map[string]int),
	}
	values := make(map[string][]float64)
	for i, r := range results {
		if skipped[i] {
			s.Skipped++
			continue
		}
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
		if r.Vote != "" {
			s.Votes[r.Vote]++
		}
	}
	for name, xs := range values {
		s.Means[name] = stat.Mean(xs, nil)
		if len(xs) > 1 {
			s.StdDevs[name] = stat.StdDev(xs, nil)
		}
	}
	return s
}
