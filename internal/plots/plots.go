// Package plots renders sensor recordings and phase tracks to image files.
//
// The output format follows the file extension: .png, .svg, .pdf, .jpg, .eps
// and .tif are supported.
package plots

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrTrackDimension indicates a phase track that is neither 2-D nor 3-D.
var ErrTrackDimension = errors.New("plots: check dimensionality of phase track (want 2 or 3 columns)")

var (
	startColor = color.RGBA{R: 255, G: 10, B: 0, A: 178}
	endColor   = color.RGBA{R: 10, G: 250, B: 250, A: 178}
)

// Options controls the size of rendered images.
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions matches the 500 point tall figures of the notebooks.
func DefaultOptions() Options {
	return Options{Width: 8 * vg.Inch, Height: 500}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

func save(p *plot.Plot, path string, opts Options) error {
	opts = opts.withDefaults()
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}

// saveTiles draws plots side by side into a single image.
func saveTiles(plots []*plot.Plot, path string, opts Options) error {
	opts = opts.withDefaults()
	if err := ensureDir(path); err != nil {
		return err
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	c, err := draw.NewFormattedCanvas(opts.Width, opts.Height, format)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows: 1, Cols: len(plots),
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, draw.New(c))
	for j, p := range plots {
		p.Draw(canvases[0][j])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
