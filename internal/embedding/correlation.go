package embedding

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix returns the Pearson correlation between the columns
// of trajectory. Columns without variance correlate with nothing and get
// a unit diagonal.
func CorrelationMatrix(trajectory mat.Matrix) *mat.SymDense {
	_, cols := trajectory.Dims()
	corr := mat.NewSymDense(cols, nil)
	stat.CorrelationMatrix(corr, trajectory, nil)

	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			switch {
			case i == j:
				corr.SetSym(i, j, 1)
			case math.IsNaN(corr.At(i, j)):
				corr.SetSym(i, j, 0)
			}
		}
	}
	return corr
}
