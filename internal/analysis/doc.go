// Package analysis provides descriptive statistics for sensor recordings.
//
//   - [Summarize]: distribution of sampling intervals
//   - [SummarizeTable]: per-sensor summaries of a sampling table
//   - [PowerSpectrum]: magnitude spectrum of one channel
//   - [DominantFrequency]: strongest oscillation of one channel
//
// # Sampling Jitter
//
// Mobile sensors rarely deliver samples at their nominal rate. Comparing
// the median interval with the 95th percentile shows how bursty a sensor is:
//
//	s, _ := analysis.Summarize(rec.Intervals())
//	jitter := s.P95 / s.Median
package analysis
