package control

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LatencySummary describes command->response round trips over one session.
// All values are milliseconds.
type LatencySummary struct {
	N      int
	Mean   float64
	StdDev float64
	P95    float64
}

// Summarize computes latency statistics from round-trip samples in
// milliseconds. A zero-value summary is returned for an empty sample set.
func Summarize(samplesMS []float64) LatencySummary {
	if len(samplesMS) == 0 {
		return LatencySummary{}
	}

	// Quantile requires sorted input; sort a copy so caller data is untouched.
	sorted := append([]float64(nil), samplesMS...)
	sort.Float64s(sorted)

	s := LatencySummary{
		N:    len(sorted),
		Mean: stat.Mean(sorted, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if s.N > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// String implements fmt.Stringer.
func (s LatencySummary) String() string {
	if s.N == 0 {
		return "no responses recorded"
	}
	return fmt.Sprintf("%d responses, mean %.1fms, stddev %.1fms, p95 %.1fms",
		s.N, s.Mean, s.StdDev, s.P95)
}
