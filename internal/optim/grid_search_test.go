package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
)

func TestNewWindowSearch(t *testing.T) {
	g := NewWindowSearch(0, 10, 4)
	want := []int{1, 5, 9}
	got := g.Windows()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

// fixedCurve answers each window with a single component explaining the
// given share of variance.
func fixedCurve(curve map[int]float64) func(context.Context, int) (*embedding.Result, error) {
	return func(_ context.Context, w int) (*embedding.Result, error) {
		c, ok := curve[w]
		if !ok {
			return nil, embedding.ErrInvalidComponentCount
		}
		return &embedding.Result{Ratios: []float64{c}}, nil
	}
}

func TestWindowSearch_LargestWindowAboveThreshold(t *testing.T) {
	curve := map[int]float64{2: 1.0, 4: 0.95, 6: 0.91, 8: 0.85, 10: 0.80}

	tests := []struct {
		threshold float64
		want      int
	}{
		{0.9, 6},
		{0.95, 4},
		{0.8, 10},
		{1.0, 2},
	}

	for _, tt := range tests {
		_, best, err := NewWindowSearch(2, 10, 2).Search(context.Background(), fixedCurve(curve), tt.threshold)
		if err != nil {
			t.Fatalf("threshold %.2f: search failed: %v", tt.threshold, err)
		}
		if best != tt.want {
			t.Errorf("threshold %.2f: expected window %d, got %d", tt.threshold, tt.want, best)
		}
	}
}

func TestWindowSearch_NonMonotoneCurve(t *testing.T) {
	curve := map[int]float64{1: 1.0, 2: 0.7, 3: 0.92, 4: 0.6}
	_, best, err := NewWindowSearch(1, 4, 1).Search(context.Background(), fixedCurve(curve), 0.9)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best != 3 {
		t.Errorf("expected window 3, got %d", best)
	}
}

func TestWindowSearch_MultiSine(t *testing.T) {
	series := make([]float64, 300)
	for i := range series {
		f := float64(i)
		series[i] = math.Sin(0.3*f) + 0.5*math.Sin(1.1*f)
	}

	g := NewWindowSearch(1, 30, 1)
	sweep, best, err := g.Search(context.Background(), func(_ context.Context, w int) (*embedding.Result, error) {
		return embedding.PhaseTrack(series, w, 2, false)
	}, 0.5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(sweep) != 30 {
		t.Fatalf("expected 30 points, got %d", len(sweep))
	}
	if !errors.Is(sweep[0].Err, embedding.ErrInvalidComponentCount) {
		t.Errorf("window 1 cannot hold 2 components, got %v", sweep[0].Err)
	}
	if best <= 2 {
		t.Errorf("expected a window longer than the number of components, got %d", best)
	}
	if sweep[best-1].Cumulative < 0.5 {
		t.Errorf("best window %d explains %.3f, below threshold", best, sweep[best-1].Cumulative)
	}
	for _, p := range sweep[best:] {
		if p.Err == nil && p.Cumulative >= 0.5 {
			t.Errorf("window %d reaches the threshold but is longer than best %d", p.Window, best)
		}
	}
}

func TestWindowSearch_BelowThreshold(t *testing.T) {
	curve := map[int]float64{2: 0.6, 3: 0.5}
	sweep, best, err := NewWindowSearch(2, 3, 1).Search(context.Background(), fixedCurve(curve), 0.9)
	if !errors.Is(err, ErrBelowThreshold) {
		t.Errorf("expected ErrBelowThreshold, got %v", err)
	}
	if best != 0 || len(sweep) != 2 {
		t.Errorf("expected full sweep without a best window, got %d points, best %d", len(sweep), best)
	}
}

func TestWindowSearch_NoResult(t *testing.T) {
	g := NewWindowSearch(1, 3, 1)
	_, _, err := g.Search(context.Background(), func(context.Context, int) (*embedding.Result, error) {
		return nil, errors.New("boom")
	}, 0.9)
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestWindowSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewWindowSearch(1, 3, 1).Search(ctx, func(context.Context, int) (*embedding.Result, error) {
		t.Fatal("run should not be called")
		return nil, nil
	}, 0.9)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
