package analysis

import (
	"math"
	"testing"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if s.Count != 5 {
		t.Errorf("expected count 5, got %d", s.Count)
	}
	if s.Mean != 3 {
		t.Errorf("expected mean 3, got %f", s.Mean)
	}
	if s.Median != 3 {
		t.Errorf("expected median 3, got %f", s.Median)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("expected range [1, 5], got [%f, %f]", s.Min, s.Max)
	}
	if math.Abs(s.StdDev-math.Sqrt2) > 1e-12 {
		t.Errorf("expected population stddev sqrt(2), got %f", s.StdDev)
	}
	if s.P95 < s.Median || s.P95 > s.Max {
		t.Errorf("p95 %f outside [median, max]", s.P95)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if _, err := Summarize(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestSummarizeTable(t *testing.T) {
	var table dataset.SamplingTable
	table.Append("g", "Magnetometer", []float64{0.1, 0.1})
	table.Append("g", "Accelerometer", []float64{0.02, 0.04})

	out, err := SummarizeTable(&table)
	if err != nil {
		t.Fatalf("summarize table failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(out))
	}
	if out[0].Sensor != "Accelerometer" || out[1].Sensor != "Magnetometer" {
		t.Errorf("unexpected order: %s, %s", out[0].Sensor, out[1].Sensor)
	}
	if math.Abs(out[0].Mean-0.03) > 1e-12 {
		t.Errorf("expected mean 0.03, got %f", out[0].Mean)
	}
}

func TestDominantFrequency(t *testing.T) {
	const (
		rate = 100.0
		freq = 5.0
	)
	data := make([]float64, 400)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)/rate)
	}

	got := DominantFrequency(data, rate)
	if math.Abs(got-freq) > 0.5 {
		t.Errorf("expected dominant frequency ~%.1f, got %.3f", freq, got)
	}
}

func TestDominantFrequency_Flat(t *testing.T) {
	if got := DominantFrequency([]float64{2, 2, 2, 2}, 10); got != 0 {
		t.Errorf("expected 0 for a constant signal, got %f", got)
	}
	if got := DominantFrequency([]float64{1}, 10); got != 0 {
		t.Errorf("expected 0 for a single sample, got %f", got)
	}
}

func TestSampleRate(t *testing.T) {
	if got := SampleRate([]float64{0, 0.5, 1.0}); got != 2 {
		t.Errorf("expected 2, got %f", got)
	}
	if got := SampleRate([]float64{1}); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}
