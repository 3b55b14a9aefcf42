package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection is a trajectory expressed in its principal basis.
type Projection struct {
	// Points is rows x components.
	Points *mat.Dense
	// Basis holds one principal axis per row, components x L.
	Basis *mat.Dense
	// Ratios is the explained variance ratio of each kept component.
	Ratios []float64
}

// Cumulative returns the fraction of variance captured by all kept components.
func (p *Projection) Cumulative() float64 {
	return floats.Sum(p.Ratios)
}

// Project fits principal components on trajectory (rows are observations,
// columns are features) and keeps the leading components.
func Project(trajectory mat.Matrix, components int) (*Projection, error) {
	rows, cols := trajectory.Dims()
	if components < 1 || components > cols || components > rows {
		return nil, fmt.Errorf("%w: n_components=%d, features=%d, observations=%d",
			ErrInvalidComponentCount, components, cols, rows)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(trajectory, nil); !ok {
		return nil, ErrDecomposition
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	axes := vecs.Slice(0, cols, 0, components)

	means := make([]float64, cols)
	col := make([]float64, rows)
	for j := range means {
		mat.Col(col, j, trajectory)
		means[j] = stat.Mean(col, nil)
	}
	centered := mat.DenseCopyOf(trajectory)
	centered.Apply(func(_, j int, v float64) float64 { return v - means[j] }, centered)

	points := mat.NewDense(rows, components, nil)
	points.Mul(centered, axes)

	return &Projection{
		Points: points,
		Basis:  mat.DenseCopyOf(axes.T()),
		Ratios: varianceRatios(pc.VarsTo(nil), components),
	}, nil
}

func varianceRatios(vars []float64, components int) []float64 {
	ratios := make([]float64, components)
	total := floats.Sum(vars)
	// A single observation has undefined sample variance (NaN).
	if !(total > 0) {
		return ratios
	}
	for i := range ratios {
		ratios[i] = vars[i] / total
	}
	return ratios
}
