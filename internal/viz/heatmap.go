package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/mat"
)

// Heatmap renders a correlation matrix as coloured cells, row 0 on top.
// Matrices wider than maxCells are subsampled evenly.
func Heatmap(corr mat.Symmetric, maxCells int) string {
	n := corr.SymmetricDim()
	if n == 0 {
		return ""
	}
	if maxCells <= 0 {
		maxCells = n
	}
	step := 1
	if n > maxCells {
		step = (n + maxCells - 1) / maxCells
	}

	var sb strings.Builder
	for i := 0; i < n; i += step {
		fmt.Fprintf(&sb, "%4d ", i)
		for j := 0; j < n; j += step {
			cell := lipgloss.NewStyle().Background(HeatColor(corr.At(i, j))).Render("  ")
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}

	legend := make([]string, 0, len(heatRamp))
	for _, c := range heatRamp {
		legend = append(legend, lipgloss.NewStyle().Background(c).Render(" "))
	}
	sb.WriteString(Subtle.Render("     -1 ") + strings.Join(legend, "") + Subtle.Render(" +1"))
	sb.WriteByte('\n')
	return sb.String()
}
