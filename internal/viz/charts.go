package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

var axisColors = []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue}

// SeriesChart overlays the X, Y and Z channels of rec.
func SeriesChart(rec *dataset.Recording, width, height int) string {
	if rec.Len() == 0 {
		return ""
	}
	data := make([][]float64, 0, len(dataset.Axes))
	for _, a := range dataset.Axes {
		data = append(data, rec.Channel(a))
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(axisColors...),
		asciigraph.Caption(fmt.Sprintf("%s: %s (X red, Y green, Z blue)", rec.Game, sensors.DisplayName(rec.Sensor))),
	)
}

// HistogramChart draws the bin counts of values as a line profile.
func HistogramChart(values []float64, bins, width, height int, caption string) string {
	counts, lo, hi := Histogram(values, bins)
	if len(counts) == 0 {
		return ""
	}
	return asciigraph.Plot(counts,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s [%.4g, %.4g]", caption, lo, hi)),
	)
}

// Histogram counts values into equal-width bins over their range, returned
// as percentages of len(values).
func Histogram(values []float64, bins int) (pct []float64, lo, hi float64) {
	if len(values) == 0 || bins < 1 {
		return nil, 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	pct = make([]float64, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range values {
		idx := 0
		if width > 0 {
			idx = min(int((v-lo)/width), bins-1)
		}
		pct[idx]++
	}
	for i := range pct {
		pct[i] = 100 * pct[i] / float64(len(values))
	}
	return pct, lo, hi
}

// ProjectionChart plots each principal component against sample index.
func ProjectionChart(components [][]float64, width, height int) string {
	if len(components) == 0 || len(components[0]) == 0 {
		return ""
	}
	return asciigraph.PlotMany(components,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(axisColors[:min(len(components), len(axisColors))]...),
		asciigraph.Caption("principal components vs sample"),
	)
}
