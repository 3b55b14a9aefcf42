package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	StartStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0a00"))
	EndStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0afafa"))
)

// diverging ramp from -1 (blue) through 0 (grey) to +1 (red)
var heatRamp = []lipgloss.Color{
	"#08306b", "#2171b5", "#6baed6", "#c6dbef",
	"#3a3a3a",
	"#fcbba1", "#fb6a4a", "#cb181d", "#67000d",
}

// HeatColor maps a correlation in [-1, 1] onto the heat ramp.
func HeatColor(v float64) lipgloss.Color {
	if math.IsNaN(v) {
		return heatRamp[len(heatRamp)/2]
	}
	v = max(-1, min(1, v))
	idx := int((v+1)/2*float64(len(heatRamp)-1) + 0.5)
	return heatRamp[idx]
}
