// Package sensors describes the sensor channels recorded by the mobile games.
package sensors

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/colornames"
)

// Sensor is one recorded channel family. Codes are the four-letter file
// suffixes used by the recorder app.
type Sensor struct {
	Code     string
	Name     string
	Color    color.Color
	Terminal lipgloss.Color
}

var table = [...]Sensor{
	{Code: "accm", Name: "Accelerometer", Color: colornames.Blue, Terminal: lipgloss.Color("#5f87ff")},
	{Code: "gyrm", Name: "Gyroscope", Color: colornames.Green, Terminal: lipgloss.Color("#00d75f")},
	{Code: "magm", Name: "Magnetometer", Color: colornames.Red, Terminal: lipgloss.Color("#ff5f5f")},
	{Code: "grvm", Name: "Gravity Sensor", Color: colornames.Cyan, Terminal: lipgloss.Color("#00ffff")},
	{Code: "lacm", Name: "Linear acceleration", Color: colornames.Magenta, Terminal: lipgloss.Color("#ff00ff")},
	{Code: "rotm", Name: "Rotation sensor", Color: colornames.Yellow, Terminal: lipgloss.Color("#ffff00")},
}

// CodeLen is the length of every sensor code.
const CodeLen = 4

var index = func() map[string]int {
	m := make(map[string]int, len(table))
	for i, s := range table {
		m[s.Code] = i
	}
	return m
}()

// All returns every known sensor in canonical order.
func All() []Sensor {
	out := make([]Sensor, len(table))
	copy(out, table[:])
	return out
}

// Codes returns the sensor codes in canonical order.
func Codes() []string {
	codes := make([]string, len(table))
	for i, s := range table {
		codes[i] = s.Code
	}
	return codes
}

// Lookup finds a sensor by code.
func Lookup(code string) (Sensor, bool) {
	i, ok := index[code]
	if !ok {
		return Sensor{}, false
	}
	return table[i], true
}

// DisplayName returns the human readable name of code, or code itself
// when it is unknown.
func DisplayName(code string) string {
	if s, ok := Lookup(code); ok {
		return s.Name
	}
	return code
}

// ByName finds a sensor by its display name.
func ByName(name string) (Sensor, bool) {
	for _, s := range table {
		if s.Name == name {
			return s, true
		}
	}
	return Sensor{}, false
}
