// Package experiment is the Monte-Carlo harness behind the homework
// experiments. It generates synthetic 2D data labelled by random linear
// targets, optionally flips a fraction of the labels, runs independent
// fit/evaluate trials on worker goroutines and aggregates their results in
// trial order.
//
// Labels produced here are always in the Signed encoding (+1/-1). Models
// with another native encoding are translated at Fit and Predict time by
// FitSigned and PredictSigned.
package experiment

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/statlearn/lfd/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Interval is a closed sampling range for each coordinate.
type Interval struct {
	Low, High float64
}

// DefaultInterval is [-1, 1].
var DefaultInterval = Interval{Low: -1, High: 1}

// Sample draws a uniform value from the interval.
func (iv Interval) Sample(r *rand.Rand) float64 {
	return iv.Low + (iv.High-iv.Low)*r.Float64()
}

// Point is a 2D input.
type Point struct {
	X1, X2 float64
}

// Target is the ground-truth separator: the line through P1 and P2.
type Target struct {
	P1, P2 Point
}

// Label returns +1 if (x1, x2) lies strictly on the positive side of the
// line, -1 otherwise (points on the line are negative).
func (t Target) Label(x1, x2 float64) float64 {
	if (x2-t.P1.X2)*(t.P2.X1-t.P1.X1) > (t.P2.X2-t.P1.X2)*(x1-t.P1.X1) {
		return 1
	}
	return -1
}

// LabelAll labels every row of an n×2 matrix.
func (t Target) LabelAll(X mat.Matrix) []float64 {
	r, _ := X.Dims()
	y := make([]float64, r)
	for i := 0; i < r; i++ {
		y[i] = t.Label(X.At(i, 0), X.At(i, 1))
	}
	return y
}

// Weights returns w such that sign(w·[1, x1, x2]) agrees with Label off the
// line. Used for plotting the target and in tests.
func (t Target) Weights() []float64 {
	dx := t.P2.X1 - t.P1.X1
	dy := t.P2.X2 - t.P1.X2
	return []float64{dy*t.P1.X1 - dx*t.P1.X2, -dy, dx}
}

func (t Target) String() string {
	return fmt.Sprintf("line through (%.3f, %.3f) and (%.3f, %.3f)", t.P1.X1, t.P1.X2, t.P2.X1, t.P2.X2)
}

// Dataset is one labelled training set.
type Dataset struct {
	X      *mat.Dense // n×2 inputs
	Y      []float64  // Signed labels, possibly with noise
	Target Target
	// Flipped lists the indices whose labels were flipped by noise.
	Flipped []int
}

// Generator draws points and targets from one random stream. A Generator
// is not safe for concurrent use; the harness gives each trial its own.
type Generator struct {
	Interval Interval
	Rand     *rand.Rand
}

// NewGenerator returns a Generator over DefaultInterval.
func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{Interval: DefaultInterval, Rand: r}
}

// Target draws a fresh target from two uniform points.
func (g *Generator) Target() Target {
	return Target{P1: g.point(), P2: g.point()}
}

// Points draws n uniform points as an n×2 matrix.
func (g *Generator) Points(n int) *mat.Dense {
	X := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, g.Interval.Sample(g.Rand))
		X.Set(i, 1, g.Interval.Sample(g.Rand))
	}
	return X
}

// Dataset draws n points, then a fresh target, and labels the points.
func (g *Generator) Dataset(n int) *Dataset {
	X := g.Points(n)
	t := g.Target()
	return &Dataset{X: X, Y: t.LabelAll(X), Target: t}
}

// NoisyDataset is Dataset followed by InjectNoise on the labels.
func (g *Generator) NoisyDataset(n int, fraction float64) (*Dataset, error) {
	ds := g.Dataset(n)
	flipped, err := InjectNoise(ds.Y, fraction, g.Rand)
	if err != nil {
		return nil, err
	}
	ds.Flipped = flipped
	return ds, nil
}

func (g *Generator) point() Point {
	return Point{X1: g.Interval.Sample(g.Rand), X2: g.Interval.Sample(g.Rand)}
}

// NoiseCount returns floor(fraction·n). A tiny tolerance absorbs products
// such as 0.29·100 that land just below an integer in floating point.
func NoiseCount(n int, fraction float64) int {
	return int(math.Floor(fraction*float64(n) + 1e-9))
}

// InjectNoise flips the sign of NoiseCount(len(y), fraction) labels chosen
// uniformly without replacement, in place, and returns the flipped indices.
// The choice depends only on r, so a fixed seed flips the same labels.
func InjectNoise(y []float64, fraction float64, r *rand.Rand) ([]int, error) {
	if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
		return nil, errors.NewValueError("experiment.InjectNoise",
			fmt.Sprintf("noise fraction must be in [0, 1], got %v", fraction))
	}
	k := NoiseCount(len(y), fraction)
	if k == 0 {
		return nil, nil
	}
	idx := r.Perm(len(y))[:k]
	for _, i := range idx {
		y[i] = -y[i]
	}
	return idx, nil
}
