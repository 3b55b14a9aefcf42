package optim

import (
	"context"
	"errors"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
)

var (
	// ErrNoResult is returned when no window in the grid produced a phase track.
	ErrNoResult = errors.New("optim: no window produced a phase track")
	// ErrBelowThreshold is returned when every window explains less variance
	// than required.
	ErrBelowThreshold = errors.New("optim: no window reaches the explained variance threshold")
)

// Point is the outcome of one window in a sweep.
type Point struct {
	Window     int
	Ratios     []float64
	Cumulative float64
	Err        error
}

// WindowSearch sweeps the embedding dimension over a fixed grid.
type WindowSearch struct {
	windows []int
}

// NewWindowSearch covers from..to inclusive in steps of step.
func NewWindowSearch(from, to, step int) *WindowSearch {
	if step < 1 {
		step = 1
	}
	var windows []int
	for w := max(from, 1); w <= to; w += step {
		windows = append(windows, w)
	}
	return &WindowSearch{windows: windows}
}

func (g *WindowSearch) Windows() []int {
	return g.windows
}

// Search runs every window and returns the sweep together with the largest
// window whose kept components still explain at least threshold of the
// variance. Longer windows see more of the signal, so the largest
// admissible one is preferred. Failed windows are recorded in their Point
// and skipped.
func (g *WindowSearch) Search(
	ctx context.Context,
	run func(ctx context.Context, window int) (*embedding.Result, error),
	threshold float64,
) ([]Point, int, error) {
	sweep := make([]Point, 0, len(g.windows))
	bestWindow := 0
	succeeded := false

	for _, w := range g.windows {
		if err := ctx.Err(); err != nil {
			return sweep, bestWindow, err
		}

		res, err := run(ctx, w)
		if err != nil {
			sweep = append(sweep, Point{Window: w, Err: err})
			continue
		}
		succeeded = true

		p := Point{Window: w, Ratios: res.Ratios, Cumulative: res.Cumulative()}
		sweep = append(sweep, p)
		if p.Cumulative >= threshold && w > bestWindow {
			bestWindow = w
		}
	}

	switch {
	case !succeeded:
		return sweep, 0, ErrNoResult
	case bestWindow == 0:
		return sweep, 0, ErrBelowThreshold
	}
	return sweep, bestWindow, nil
}
