package plots

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PhaseTrack draws a 2-D or 3-D phase trajectory with its start and end
// points highlighted. A 3-D track is drawn as its three pairwise planes.
func PhaseTrack(track mat.Matrix, path string, opts Options) error {
	rows, cols := track.Dims()
	if rows == 0 {
		return fmt.Errorf("plots: empty phase track")
	}

	switch cols {
	case 2:
		p, err := phasePlane(track, 0, 1)
		if err != nil {
			return err
		}
		return save(p, path, opts)
	case 3:
		pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
		planes := make([]*plot.Plot, len(pairs))
		for i, pr := range pairs {
			p, err := phasePlane(track, pr[0], pr[1])
			if err != nil {
				return err
			}
			planes[i] = p
		}
		if opts.Width <= 0 {
			opts.Width = 3 * DefaultOptions().Height
		}
		return saveTiles(planes, path, opts)
	default:
		return fmt.Errorf("%w: got %d", ErrTrackDimension, cols)
	}
}

func phasePlane(track mat.Matrix, xi, yi int) (*plot.Plot, error) {
	rows, _ := track.Dims()
	xys := make(plotter.XYs, rows)
	for i := range xys {
		xys[i].X = track.At(i, xi)
		xys[i].Y = track.At(i, yi)
	}

	p := plot.New()
	p.Title.Text = "Phase track"
	p.X.Label.Text = fmt.Sprintf("PC%d", xi+1)
	p.Y.Label.Text = fmt.Sprintf("PC%d", yi+1)

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	start, err := marker(xys[0], startColor)
	if err != nil {
		return nil, err
	}
	end, err := marker(xys[rows-1], endColor)
	if err != nil {
		return nil, err
	}

	p.Add(line, start, end)
	p.Legend.Add("Phase track", line)
	p.Legend.Add("Start point", start)
	p.Legend.Add("End point", end)
	return p, nil
}

func marker(pt plotter.XY, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(plotter.XYs{pt})
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	return s, nil
}
