package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Embed builds the delay-coordinate trajectory of series. Row i holds
// series[i:i+window], so the result has len(series)-window rows.
func Embed(series []float64, window int) (*mat.Dense, error) {
	d := len(series)
	if window < 1 || window >= d {
		return nil, fmt.Errorf("%w: L=%d, D=%d", ErrInvalidDimension, window, d)
	}

	rows := d - window
	data := make([]float64, 0, rows*window)
	for i := 0; i < rows; i++ {
		data = append(data, series[i:i+window]...)
	}
	return mat.NewDense(rows, window, data), nil
}
