// Package exercises registers the canonical homework experiments.
package exercises

import (
	"sync"

	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/pkg/log"
)

// List is the homework list the exercises belong to.
const List = 2

var (
	registryOnce sync.Once
	registry     *experiment.Registry
)

// Registry returns the static registry of all exercises.
func Registry() *experiment.Registry {
	registryOnce.Do(func() {
		registry = experiment.NewRegistry()
		registry.MustRegister(
			booleanTargets(),
			plaIterations(),
			plaDisagreement(),
			regressionInSample(),
			quadraticHypothesis(),
		)
	})
	return registry
}

func logger(opts experiment.RunOptions, key string) log.Logger {
	l := opts.Logger
	if l == nil {
		l = log.GetLogger()
	}
	return l.With(log.ExperimentKey, key)
}

// harness builds a Harness for opts, tagging its logs with key.
func harness(opts experiment.RunOptions, key string, extra ...experiment.HarnessOption) *experiment.Harness {
	hopts := append(opts.HarnessOptions(), experiment.WithLogger(logger(opts, key)))
	return experiment.NewHarness(append(hopts, extra...)...)
}
