package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

const rotateStep = 0.15

// Explorer is an interactive phase-track viewer for one recording.
type Explorer struct {
	rec        *dataset.Recording
	axis       int
	window     int
	components int
	cam        *Camera

	result *embedding.Result
	err    error

	width, height int
}

// NewExplorer computes the initial phase track of rec's X channel.
func NewExplorer(rec *dataset.Recording, window, components int) Explorer {
	e := Explorer{
		rec:        rec,
		window:     max(window, 1),
		components: components,
		cam:        NewCamera(),
		width:      80,
		height:     24,
	}
	if e.components != 3 {
		e.components = 2
	}
	e.recompute()
	return e
}

// Window returns the current embedding dimension.
func (e Explorer) Window() int { return e.window }

// Axis returns the channel being explored.
func (e Explorer) Axis() dataset.Axis { return dataset.Axes[e.axis] }

// Components returns the number of principal components shown.
func (e Explorer) Components() int { return e.components }

// Err returns the error of the last recomputation, if any.
func (e Explorer) Err() error { return e.err }

func (e *Explorer) recompute() {
	e.result, e.err = embedding.PhaseTrack(e.rec.Channel(e.Axis()), e.window, e.components, false)
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return e, tea.Quit
		case "up", "k", "+":
			if e.window < e.rec.Len()-1 {
				e.window++
				e.recompute()
			}
		case "down", "j", "-":
			if e.window > 1 {
				e.window--
				e.recompute()
			}
		case "tab":
			e.axis = (e.axis + 1) % len(dataset.Axes)
			e.recompute()
		case "2", "3":
			e.components = int(msg.String()[0] - '0')
			e.recompute()
		case "left", "h":
			e.cam.RotateY(-rotateStep)
		case "right", "l":
			e.cam.RotateY(rotateStep)
		case "w":
			e.cam.RotateX(-rotateStep)
		case "s":
			e.cam.RotateX(rotateStep)
		case "z":
			e.cam.ZoomIn()
		case "x":
			e.cam.ZoomOut()
		}
	}
	return e, nil
}

func (e Explorer) View() string {
	var b strings.Builder

	b.WriteString(Title.Render(fmt.Sprintf("%s · %s · %s", e.rec.Game, sensors.DisplayName(e.rec.Sensor), e.Axis())))
	b.WriteString("\n")
	b.WriteString(MetricLabel.Render("window ") + MetricValue.Render(fmt.Sprint(e.window)))
	b.WriteString(MetricLabel.Render("  components ") + MetricValue.Render(fmt.Sprint(e.components)))
	b.WriteString(MetricLabel.Render("  samples ") + MetricValue.Render(fmt.Sprint(e.rec.Len())))
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(ErrorText.Render(e.err.Error()))
		b.WriteString("\n")
	} else {
		c := NewCanvas(max(e.width-4, 10), max(e.height-8, 5))
		if err := DrawPhaseTrack(c, e.result.Projection, e.cam); err != nil {
			b.WriteString(ErrorText.Render(err.Error()))
		} else {
			b.WriteString(Panel.Render(ColorMarkers(strings.TrimRight(c.String(), "\n"))))
		}
		b.WriteString("\n")

		ratios := make([]string, len(e.result.Ratios))
		for i, r := range e.result.Ratios {
			ratios[i] = fmt.Sprintf("PC%d %.3f", i+1, r)
		}
		b.WriteString(MetricLabel.Render("explained ") + MetricValue.Render(strings.Join(ratios, "  ")))
		b.WriteString(MetricLabel.Render("  cumulative ") + MetricValue.Render(fmt.Sprintf("%.3f", e.result.Cumulative())))
		b.WriteString("\n")
	}

	b.WriteString(KeyHint.Render("↑/↓ window · tab axis · 2/3 components · ←/→ w/s rotate · z/x zoom · q quit"))
	return b.String()
}
