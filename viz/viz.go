// Package viz draws single experiment trials with gonum/plot.
package viz

import (
	"image/color"

	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/preprocessing"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size is the edge length of the saved image.
const Size = 6 * vg.Inch

var (
	positiveColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	negativeColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	targetColor     = color.RGBA{A: 255}
	hypothesisColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// PlotTrial renders ds and the decision boundary of weights to path. The file format follows the extension of path.
func PlotTrial(ds *experiment.Dataset, weights []float64, path string) error {
	p, err := NewTrialPlot(ds, weights)
	if err != nil {
		return err
	}
	if err := p.Save(Size, Size, path); err != nil {
		return errors.Wrapf(err, "save plot to %s", path)
	}
	return nil
}

// NewTrialPlot builds the plot drawn by PlotTrial: positives and negatives as
// scatters, the target line solid and the hypothesis boundary dashed.
// Three weights describe a line over (1, x1, x2); six weights describe a conic
// over (1, x1, x2, x1x2, x1², x2²), drawn as the grid points where its sign
// flips.
func NewTrialPlot(ds *experiment.Dataset, weights []float64) (*plot.Plot, error) {
	if ds == nil || ds.X == nil || len(ds.Y) == 0 {
		return nil, errors.NewModelError("viz.PlotTrial", "empty data", errors.ErrEmptyData)
	}
	if r, c := ds.X.Dims(); r != len(ds.Y) || c != 2 {
		if c != 2 {
			return nil, errors.NewDimensionError("viz.PlotTrial", 2, c, 1)
		}
		return nil, errors.NewDimensionError("viz.PlotTrial", r, len(ds.Y), 0)
	}
	if len(weights) != 3 && len(weights) != 6 {
		return nil, errors.NewDimensionError("viz.PlotTrial", 3, len(weights), 1)
	}

	iv := experiment.DefaultInterval
	p := plot.New()
	p.Title.Text = "Target " + ds.Target.String()
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"
	p.Add(plotter.NewGrid())

	pos, neg := split(ds)
	for _, group := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"+1", pos, positiveColor, draw.CircleGlyph{}},
		{"-1", neg, negativeColor, draw.CrossGlyph{}},
	} {
		if len(group.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(group.xys)
		if err != nil {
			return nil, errors.Wrap(err, "scatter")
		}
		s.GlyphStyle.Color = group.color
		s.GlyphStyle.Shape = group.shape
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		p.Legend.Add(group.name, s)
	}

	target, err := boundary(ds.Target.Weights(), iv)
	if err != nil {
		return nil, err
	}
	target.Color = targetColor
	p.Add(target)
	p.Legend.Add("f", target)

	if len(weights) == 6 {
		g, err := newQuadraticGrid(weights, iv)
		if err != nil {
			return nil, err
		}
		if xys := g.crossings(); len(xys) > 0 {
			s, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, errors.Wrap(err, "scatter")
			}
			s.GlyphStyle.Color = hypothesisColor
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			s.GlyphStyle.Radius = vg.Points(0.6)
			p.Add(s)
			p.Legend.Add("g", s)
		}
		fit(p, iv)
		return p, nil
	}
	if hyp, err := boundary(weights, iv); err == nil {
		hyp.Color = hypothesisColor
		hyp.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(hyp)
		p.Legend.Add("g", hyp)
	}
	fit(p, iv)
	return p, nil
}

// fit pins both axes to iv; boundary lines may extend far beyond it.
func fit(p *plot.Plot, iv experiment.Interval) {
	p.X.Min, p.X.Max = iv.Low, iv.High
	p.Y.Min, p.Y.Max = iv.Low, iv.High
}

func split(ds *experiment.Dataset) (pos, neg plotter.XYs) {
	for i, y := range ds.Y {
		xy := plotter.XY{X: ds.X.At(i, 0), Y: ds.X.At(i, 1)}
		if y > 0 {
			pos = append(pos, xy)
		} else {
			neg = append(neg, xy)
		}
	}
	return pos, neg
}

// boundary returns the segment of w0 + w1*x1 + w2*x2 = 0 spanning iv. A
// vertical boundary is drawn as a segment at constant x1.
func boundary(w []float64, iv experiment.Interval) (*plotter.Line, error) {
	var xys plotter.XYs
	switch {
	case w[2] != 0:
		at := func(x1 float64) float64 { return -(w[0] + w[1]*x1) / w[2] }
		xys = plotter.XYs{{X: iv.Low, Y: at(iv.Low)}, {X: iv.High, Y: at(iv.High)}}
	case w[1] != 0:
		x1 := -w[0] / w[1]
		xys = plotter.XYs{{X: x1, Y: iv.Low}, {X: x1, Y: iv.High}}
	default:
		return nil, errors.NewValueError("viz.boundary", "weights describe no line")
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(err, "line")
	}
	return l, nil
}

// GridSize is the number of samples per axis of the quadratic boundary.
const GridSize = 201

// decisionGrid samples a decision value on a regular grid over an interval.
type decisionGrid struct {
	iv experiment.Interval
	n  int
	z  []float64
}

func (g *decisionGrid) at(i int) float64 {
	return g.iv.Low + (g.iv.High-g.iv.Low)*float64(i)/float64(g.n-1)
}

func (g *decisionGrid) value(c, r int) float64 { return g.z[r*g.n+c] }

// crossings returns the grid points whose decision sign differs from the
// point to their right or above them.
func (g *decisionGrid) crossings() plotter.XYs {
	var xys plotter.XYs
	for r := 0; r < g.n; r++ {
		for c := 0; c < g.n; c++ {
			s := g.value(c, r) >= 0
			if (c+1 < g.n && (g.value(c+1, r) >= 0) != s) || (r+1 < g.n && (g.value(c, r+1) >= 0) != s) {
				xys = append(xys, plotter.XY{X: g.at(c), Y: g.at(r)})
			}
		}
	}
	return xys
}

// newQuadraticGrid evaluates w over the quadratic features of every grid point.
func newQuadraticGrid(w []float64, iv experiment.Interval) (*decisionGrid, error) {
	g := &decisionGrid{iv: iv, n: GridSize}
	pts := mat.NewDense(g.n*g.n, 2, nil)
	for r := 0; r < g.n; r++ {
		for c := 0; c < g.n; c++ {
			pts.Set(r*g.n+c, 0, g.at(c))
			pts.Set(r*g.n+c, 1, g.at(r))
		}
	}
	features, err := preprocessing.Quadratic{}.Transform(pts)
	if err != nil {
		return nil, err
	}
	var z mat.VecDense
	z.MulVec(features, mat.NewVecDense(5, w[1:]))
	g.z = make([]float64, g.n*g.n)
	for i := range g.z {
		g.z[i] = w[0] + z.AtVec(i)
	}
	return g, nil
}
