package dataset

import (
	"fmt"
	"strings"
)

// Axis selects one of the three value columns of a recording.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the axes in column order.
var Axes = [...]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Column returns the CSV header name holding this axis.
func (a Axis) Column() string {
	return a.String() + "_value"
}

// ParseAxis accepts "x", "X" or "X_value" style names.
func ParseAxis(s string) (Axis, error) {
	switch strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "_VALUE") {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// Recording is one sensor file of one game.
type Recording struct {
	Game   string
	Sensor string
	Time   []float64
	X      []float64
	Y      []float64
	Z      []float64
}

// Len returns the number of samples.
func (r *Recording) Len() int {
	return len(r.Time)
}

// Channel returns the samples of one axis, or nil for an unknown axis. The
// slice is shared with the recording.
func (r *Recording) Channel(a Axis) []float64 {
	switch a {
	case AxisX:
		return r.X
	case AxisY:
		return r.Y
	case AxisZ:
		return r.Z
	}
	return nil
}

// Valid reports whether a is one of X, Y or Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Intervals returns the differences between consecutive timestamps.
func (r *Recording) Intervals() []float64 {
	if len(r.Time) < 2 {
		return []float64{}
	}
	out := make([]float64, len(r.Time)-1)
	for i := range out {
		out[i] = r.Time[i+1] - r.Time[i]
	}
	return out
}
