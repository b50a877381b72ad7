package control

import (
	"math"
	"strings"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.N != 0 {
		t.Errorf("N = %d, want 0", s.N)
	}
	if !strings.Contains(s.String(), "no responses") {
		t.Errorf("String() = %q, want a no-responses message", s.String())
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	s := Summarize([]float64{42})
	if s.N != 1 || s.Mean != 42 || s.StdDev != 0 {
		t.Errorf("got %+v, want N=1 mean=42 stddev=0", s)
	}
}

func TestSummarizeKnownSamples(t *testing.T) {
	// Unsorted on purpose; Summarize sorts a copy.
	samples := []float64{30, 10, 20}
	s := Summarize(samples)

	if s.N != 3 {
		t.Fatalf("N = %d, want 3", s.N)
	}
	if math.Abs(s.Mean-20) > 1e-9 {
		t.Errorf("Mean = %f, want 20", s.Mean)
	}
	if math.Abs(s.StdDev-10) > 1e-9 {
		t.Errorf("StdDev = %f, want 10", s.StdDev)
	}
	if s.P95 != 30 {
		t.Errorf("P95 = %f, want 30", s.P95)
	}
	if samples[0] != 30 {
		t.Error("Summarize mutated its input")
	}
}
