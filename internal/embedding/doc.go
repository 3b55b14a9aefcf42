// Package embedding reconstructs phase-space trajectories from scalar
// sensor channels.
//
// A series of D samples is mapped into an L-dimensional delay-coordinate
// space and then reduced onto its leading principal directions:
//
//   - [Embed]: overlapping windows of width L, one per row
//   - [Project]: principal component projection of a trajectory
//   - [CorrelationMatrix]: Pearson correlation between window columns
//   - [PhaseTrack]: the three steps above in one call
//
// # Example
//
//	res, err := embedding.PhaseTrack(rec.Channel(dataset.AxisX), 20, 3, false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Ratios)
//
// All functions are pure; results never alias the input series.
package embedding
