// Package viz renders sensor data and phase tracks in the terminal.
//
//   - [Canvas]: braille canvas with 2x4 dots per character cell
//   - [DrawPhaseTrack]: 2-D or camera-projected 3-D phase track
//   - [Heatmap]: colour-shaded correlation matrix
//   - [SeriesChart], [HistogramChart]: asciigraph line charts
//   - [Explorer]: Bubble Tea program for tuning the embedding window
//
// # Key Bindings
//
//	↑/↓  - Grow/shrink the embedding window
//	Tab  - Cycle X, Y, Z channels
//	2/3  - Number of principal components
//	←/→  - Rotate 3-D view (w/s tilt, z/x zoom)
//	Q    - Quit
package viz
