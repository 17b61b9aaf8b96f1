package experiment

import (
	"testing"

	"github.com/statlearn/lfd/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoices(t *testing.T) {
	cs := Choices(1, 15, 300, 5000, 10000)
	require.Len(t, cs, 5)
	assert.Equal(t, Choice{Letter: "a", Value: 1}, cs[0])
	assert.Equal(t, Choice{Letter: "e", Value: 10000}, cs[4])
}

func TestClosest(t *testing.T) {
	cs := Choices(1, 15, 300, 5000, 10000)
	tests := []struct {
		value float64
		want  string
	}{
		{9.7, "b"},
		{0, "a"},
		{400, "c"},
		{1e6, "e"},
		{8, "a"}, // |8-1| = |8-15|: earlier letter wins
	}
	for _, tt := range tests {
		got, err := Closest(tt.value, cs)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Letter, "value %v", tt.value)
	}

	_, err := Closest(1, nil)
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}

func TestReport_AddMetric(t *testing.T) {
	r := &Report{}
	require.NoError(t, r.AddMetric("E_in", 0.12, Choices(0, 0.1, 0.3, 0.5, 0.8)...))
	require.NoError(t, r.AddMetric("runs", 1000))

	require.Len(t, r.Metrics, 2)
	require.NotNil(t, r.Metrics[0].Closest)
	assert.Equal(t, "b", r.Metrics[0].Closest.Letter)
	assert.Nil(t, r.Metrics[1].Closest)
}

func TestReport_AddSummaryMetric(t *testing.T) {
	s := &Summary{
		Means:   map[string]float64{"iterations": 9.7},
		StdDevs: map[string]float64{"iterations": 4.2},
	}
	r := &Report{}
	require.NoError(t, r.AddSummaryMetric(s, "iterations", Choices(1, 15, 300)...))

	require.Len(t, r.Metrics, 1)
	assert.Equal(t, 9.7, r.Metrics[0].Value)
	assert.Equal(t, 4.2, r.Metrics[0].StdDev)
	assert.Equal(t, "b", r.Metrics[0].Closest.Letter)
}

func TestScoreHypothesis(t *testing.T) {
	points := [][]int{{1, 0, 1}, {1, 1, 0}, {1, 1, 1}}
	for _, h := range StandardHypotheses() {
		score, err := ScoreHypothesis(h, points)
		require.NoError(t, err)
		// 8 targets, each point agrees with half of them
		assert.Equal(t, 12, score, h.Name)
	}

	assert.Equal(t, 0, Parity([]int{1, 1, 0}))
	assert.Equal(t, 1, Parity([]int{1, 1, 1}))

	_, err := ScoreHypothesis(StandardHypotheses()[0], nil)
	assert.Error(t, err)
}
