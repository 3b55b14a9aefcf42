package embedding

import "gonum.org/v1/gonum/mat"

// Result bundles every artifact of a phase-track analysis.
type Result struct {
	Trajectory  *mat.Dense
	Projection  *mat.Dense
	Basis       *mat.Dense
	Ratios      []float64
	Correlation *mat.SymDense // nil unless requested
}

// Cumulative returns the total explained variance of the kept components.
func (r *Result) Cumulative() float64 {
	p := Projection{Ratios: r.Ratios}
	return p.Cumulative()
}

// PhaseTrack embeds series with the given window and projects the
// trajectory onto its leading principal components.
func PhaseTrack(series []float64, window, components int, withCorrelation bool) (*Result, error) {
	traj, err := Embed(series, window)
	if err != nil {
		return nil, err
	}

	res := &Result{Trajectory: traj}
	if withCorrelation {
		res.Correlation = CorrelationMatrix(traj)
	}

	proj, err := Project(traj, components)
	if err != nil {
		return nil, err
	}
	res.Projection = proj.Points
	res.Basis = proj.Basis
	res.Ratios = proj.Ratios
	return res, nil
}
