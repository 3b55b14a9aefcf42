package plots

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

// GameSeries draws the X, Y and Z channels of a recording against time.
func GameSeries(rec *dataset.Recording, path string, opts Options) error {
	if rec.Len() == 0 {
		return fmt.Errorf("plots: recording %s%s has no samples", rec.Game, rec.Sensor)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", rec.Game, sensors.DisplayName(rec.Sensor))
	p.X.Label.Text = "time"
	p.Add(plotter.NewGrid())

	for i, axis := range dataset.Axes {
		values := rec.Channel(axis)
		xys := make(plotter.XYs, len(values))
		for j := range xys {
			xys[j].X = rec.Time[j]
			xys[j].Y = values[j]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("%s: %w", axis, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(axis.String(), line)
	}

	return save(p, path, opts)
}
