package plots

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
)

// correlationGrid exposes a correlation matrix as a plotter.GridXYZ with
// row 0 drawn at the top.
type correlationGrid struct {
	m mat.Symmetric
}

func (g correlationGrid) Dims() (c, r int) {
	n := g.m.SymmetricDim()
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	n := g.m.SymmetricDim()
	return g.m.At(n-1-r, c)
}

func (g correlationGrid) X(c int) float64 { return float64(c) }

func (g correlationGrid) Y(r int) float64 { return float64(r) }

// reversedTicks labels the y axis with matrix row numbers, row 0 on top.
func reversedTicks(n int) plot.ConstantTicks {
	step := max(1, n/10)
	ticks := make(plot.ConstantTicks, 0, n/step+1)
	for i := 0; i < n; i += step {
		ticks = append(ticks, plot.Tick{Value: float64(n - 1 - i), Label: strconv.Itoa(i)})
	}
	return ticks
}

// CorrelationHeatmap draws a correlation matrix as a square heat map.
func CorrelationHeatmap(corr mat.Symmetric, path string, opts Options) error {
	n := corr.SymmetricDim()
	if n == 0 {
		return fmt.Errorf("plots: empty correlation matrix")
	}

	grid := correlationGrid{m: corr}
	hm := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	hm.Min, hm.Max = -1, 1

	p := plot.New()
	p.Title.Text = "Correlation matrix"
	p.X.Label.Text = "lag"
	p.Y.Label.Text = "lag (reversed)"
	p.Y.Tick.Marker = reversedTicks(n)
	p.Add(hm)

	if opts.Width <= 0 && opts.Height <= 0 {
		opts.Width, opts.Height = 700, 700
	}
	return save(p, path, opts)
}
