package experiment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
)

// RunOptions are the knobs shared by every registered experiment.
type RunOptions struct {
	Runs     int
	Seed     uint64
	Workers  int
	Progress func()
	Logger   log.Logger
}

// HarnessOptions converts o into options for NewHarness.
func (o RunOptions) HarnessOptions() []HarnessOption {
	opts := []HarnessOption{WithSeed(o.Seed), WithWorkers(o.Workers)}
	if o.Runs > 0 {
		opts = append(opts, WithRuns(o.Runs))
	}
	if o.Progress != nil {
		opts = append(opts, WithProgress(o.Progress))
	}
	if o.Logger != nil {
		opts = append(opts, WithLogger(o.Logger))
	}
	return opts
}

// RunFunc executes an experiment and reports its outcome.
type RunFunc func(ctx context.Context, opts RunOptions) (*Report, error)

// Entry is one registered experiment.
type Entry struct {
	Key       string
	Title     string
	Statement string
	// Trials is false for closed-form experiments that ignore Runs.
	Trials bool
	Run    RunFunc
}

// Key builds a registry key such as "2.7" or "2.8b".
func Key(list, exercise int, variant string) string {
	return fmt.Sprintf("%d.%d%s", list, exercise, variant)
}

// Registry maps keys to experiments.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds e. Keys must be unique and Run must be set.
func (r *Registry) Register(e Entry) error {
	if e.Key == "" {
		return errors.NewValidationError("key", "must not be empty", e.Key)
	}
	if e.Run == nil {
		return errors.NewValidationError("run", "must not be nil", e.Key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Key]; ok {
		return errors.NewValidationError("key", "already registered", e.Key)
	}
	r.entries[e.Key] = e
	return nil
}

// MustRegister is Register that panics on error, for static tables.
func (r *Registry) MustRegister(entries ...Entry) {
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the entry with exactly the given key, or a NotFoundError.
func (r *Registry) Lookup(key string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	if !ok {
		return Entry{}, errors.NewNotFoundError("experiment", key)
	}
	return e, nil
}

// Entries returns all entries sorted by key.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := lo.Keys(r.entries)
	sort.Strings(keys)
	return lo.Map(keys, func(k string, _ int) Entry { return r.entries[k] })
}
