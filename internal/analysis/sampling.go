package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

// Summary describes a distribution of sampling intervals.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	P95    float64
}

// SensorSummary is the Summary of one sensor across all loaded games.
type SensorSummary struct {
	Sensor string
	Summary
}

// Summarize computes descriptive statistics of intervals.
func Summarize(intervals []float64) (Summary, error) {
	data := stats.LoadRawData(intervals)
	if data.Len() == 0 {
		return Summary{}, stats.EmptyInputErr
	}

	var (
		s   = Summary{Count: data.Len()}
		err error
	)
	if s.Mean, err = data.Mean(); err != nil {
		return Summary{}, fmt.Errorf("mean: %w", err)
	}
	if s.Median, err = data.Median(); err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return Summary{}, fmt.Errorf("stddev: %w", err)
	}
	if s.Min, err = data.Min(); err != nil {
		return Summary{}, fmt.Errorf("min: %w", err)
	}
	if s.Max, err = data.Max(); err != nil {
		return Summary{}, fmt.Errorf("max: %w", err)
	}
	if s.P95, err = data.Percentile(95); err != nil {
		return Summary{}, fmt.Errorf("p95: %w", err)
	}
	return s, nil
}

// SummarizeTable summarizes every sensor present in t, in sensor table order.
// Sensors without intervals are skipped.
func SummarizeTable(t *dataset.SamplingTable) ([]SensorSummary, error) {
	groups := t.BySensor()
	out := make([]SensorSummary, 0, len(groups))
	for _, s := range sensors.All() {
		intervals, ok := groups[s.Name]
		if !ok || len(intervals) == 0 {
			continue
		}
		sum, err := Summarize(intervals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		out = append(out, SensorSummary{Sensor: s.Name, Summary: sum})
	}
	return out, nil
}
