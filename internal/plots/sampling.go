package plots

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

// HistogramBins is the number of bins used per sensor.
const HistogramBins = 50

// SamplingHistogram overlays one histogram of sampling intervals per
// sensor. Bar heights are percentages of that sensor's samples.
func SamplingHistogram(t *dataset.SamplingTable, path string, opts Options) error {
	groups := t.BySensor()
	if len(groups) == 0 {
		return fmt.Errorf("plots: sampling table is empty")
	}

	p := plot.New()
	p.X.Label.Text = "Time samples"
	p.Y.Label.Text = "Count"
	p.Legend.Top = true

	for _, s := range sensors.All() {
		values, ok := groups[s.Name]
		if !ok || len(values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(values), HistogramBins)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		toPercent(h)
		h.FillColor = translucent(s.Color)
		h.LineStyle.Width = 0

		p.Add(h)
		p.Legend.Add("sensor: "+s.Name, h)
	}

	return save(p, path, opts)
}

func toPercent(h *plotter.Histogram) {
	total := 0.0
	for _, b := range h.Bins {
		total += b.Weight
	}
	if total == 0 {
		return
	}
	for i := range h.Bins {
		h.Bins[i].Weight = 100 * h.Bins[i].Weight / total
	}
}

func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 140}
}
