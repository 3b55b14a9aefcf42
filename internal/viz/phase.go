package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrTrackDimension indicates a phase track that is neither 2-D nor 3-D.
var ErrTrackDimension = errors.New("viz: check dimensionality of phase track (want 2 or 3 columns)")

const (
	StartMarker = '◆'
	EndMarker   = '■'
)

// DrawPhaseTrack draws track onto c as a connected line. 2-D tracks are
// scaled to fill the canvas; 3-D tracks are normalized and projected
// through cam, which may be nil for the default view.
func DrawPhaseTrack(c *Canvas, track mat.Matrix, cam *Camera) error {
	rows, cols := track.Dims()
	if rows == 0 {
		return fmt.Errorf("viz: empty phase track")
	}

	var pts [][2]int
	switch cols {
	case 2:
		pts = planePoints(track, c.DotsWide(), c.DotsHigh())
	case 3:
		if cam == nil {
			cam = NewCamera()
		}
		pts = spacePoints(track, cam, c.DotsWide(), c.DotsHigh())
	default:
		return fmt.Errorf("%w: got %d", ErrTrackDimension, cols)
	}

	for i := 1; i < len(pts); i++ {
		c.DrawLine(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
	if len(pts) == 1 {
		c.Set(pts[0][0], pts[0][1])
	}
	c.Mark(pts[0][0], pts[0][1], StartMarker)
	c.Mark(pts[len(pts)-1][0], pts[len(pts)-1][1], EndMarker)
	return nil
}

type bounds struct{ lo, hi float64 }

func (b bounds) span() float64 {
	if s := b.hi - b.lo; s > 0 {
		return s
	}
	return 1
}

func columnBounds(m mat.Matrix, j int) bounds {
	rows, _ := m.Dims()
	b := bounds{math.Inf(1), math.Inf(-1)}
	for i := 0; i < rows; i++ {
		v := m.At(i, j)
		b.lo = math.Min(b.lo, v)
		b.hi = math.Max(b.hi, v)
	}
	return b
}

func planePoints(m mat.Matrix, w, h int) [][2]int {
	rows, _ := m.Dims()
	bx, by := columnBounds(m, 0), columnBounds(m, 1)
	pts := make([][2]int, rows)
	for i := range pts {
		x := (m.At(i, 0) - bx.lo) / bx.span() * float64(w-1)
		y := (m.At(i, 1) - by.lo) / by.span() * float64(h-1)
		pts[i] = [2]int{int(math.Round(x)), h - 1 - int(math.Round(y))}
	}
	return pts
}

func spacePoints(m mat.Matrix, cam *Camera, w, h int) [][2]int {
	rows, _ := m.Dims()
	b := [3]bounds{columnBounds(m, 0), columnBounds(m, 1), columnBounds(m, 2)}
	scale := math.Max(b[0].span(), math.Max(b[1].span(), b[2].span())) / 2
	norm := func(i, j int) float64 {
		mid := (b[j].lo + b[j].hi) / 2
		return (m.At(i, j) - mid) / scale
	}

	pts := make([][2]int, 0, rows)
	for i := 0; i < rows; i++ {
		x, y, ok := cam.Project(Vec3{norm(i, 0), norm(i, 1), norm(i, 2)}, w, h)
		if ok {
			pts = append(pts, [2]int{x, y})
		}
	}
	if len(pts) == 0 {
		pts = append(pts, [2]int{w / 2, h / 2})
	}
	return pts
}

// ColorMarkers styles the start and end markers of a rendered canvas.
func ColorMarkers(s string) string {
	return strings.NewReplacer(
		string(StartMarker), StartStyle.Render(string(StartMarker)),
		string(EndMarker), EndStyle.Render(string(EndMarker)),
	).Replace(s)
}
