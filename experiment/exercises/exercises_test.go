package exercises

import (
	"context"
	"testing"

	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, key string, runs int) *experiment.Report {
	t.Helper()
	e, err := Registry().Lookup(key)
	require.NoError(t, err)
	report, err := e.Run(context.Background(), experiment.RunOptions{
		Runs:   runs,
		Seed:   2024,
		Logger: log.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, key, report.Key)
	return report
}

func TestRegistryKeys(t *testing.T) {
	var keys []string
	for _, e := range Registry().Entries() {
		keys = append(keys, e.Key)
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Statement)
	}
	assert.Equal(t, []string{"2.6", "2.7", "2.8", "2.8b", "2.9"}, keys)

	_, err := Registry().Lookup("3.1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestBooleanTargets(t *testing.T) {
	report := run(t, "2.6", 0)
	assert.Equal(t, "e", report.Answer)
	require.Len(t, report.Metrics, 4)
	for _, m := range report.Metrics {
		assert.Equal(t, 12.0, m.Value)
	}
}

func TestPLAIterations(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	report := run(t, "2.7", 200)

	require.Len(t, report.Metrics, 1)
	m := report.Metrics[0]
	assert.Greater(t, m.Value, 1.0)
	assert.Less(t, m.Value, 1000.0)
	require.NotNil(t, m.Closest)
	assert.Equal(t, m.Closest.Letter, report.Answer)
	assert.Equal(t, 200, report.Runs)
}

func TestPLADisagreement(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	report := run(t, "2.8", 100)

	require.Len(t, report.Metrics, 2)
	p := report.Metrics[1]
	assert.Greater(t, p.Value, 0.0)
	assert.Less(t, p.Value, 0.3)
	assert.Equal(t, "c", report.Answer)
}

func TestRegressionInSample(t *testing.T) {
	report := run(t, "2.8b", 20)

	ein := report.Metrics[0]
	// 10% のラベルが反転しているので E_in は 0.1 付近
	assert.InDelta(t, 0.12, ein.Value, 0.05)
	assert.Equal(t, "b", report.Answer)
	assert.Zero(t, report.Skipped)
}

func TestQuadraticHypothesis(t *testing.T) {
	report := run(t, "2.9", 10)

	total := 0
	for letter, n := range report.Votes {
		assert.Contains(t, []string{"a", "b", "c", "d", "e"}, letter)
		total += n
	}
	assert.Equal(t, report.Runs-report.Skipped, total)
	assert.Contains(t, report.Votes, report.Answer)
}

func TestQuadraticSigns(t *testing.T) {
	// x1 = x2 = 0 では 全候補が sign(-1) = -1
	Xt := mat5(0, 0)
	for _, c := range QuadraticCandidates {
		assert.Equal(t, []float64{-1}, quadraticSigns(c.Weights, Xt))
	}
	// (1, 1): 候補 a は -1 -0.05 +0.08 +0.13 +1.5 +1.5 > 0
	assert.Equal(t, []float64{1}, quadraticSigns(QuadraticCandidates[0].Weights, mat5(1, 1)))
}
