package align_test

import (
	"math"
	"strings"
	"testing"

	"github.com/squigglekit/adaband/align"
)

// benchmarkAlign is a helper that aligns nEvents synthetic events
// against a sequence of nKmers 1-mers at the given bandwidth. It resets
// the timer before the loop and fails on unexpected errors.
func benchmarkAlign(b *testing.B, nEvents, nKmers, bandwidth int) {
	seq := strings.Repeat("ACGT", (nKmers+3)/4)[:nKmers]
	ratio := float64(nKmers) / float64(nEvents)
	scorer := stubScorer{n: nEvents, emit: func(eventIdx int, rank uint32) float64 {
		// Peak when the event sits near its expected k-mer, so the band
		// drifts realistically instead of degenerating.
		expected := int(float64(eventIdx) * ratio)
		return -math.Abs(float64(int(rank)-expected%4)) - 0.1
	}}
	opts := align.DefaultOptions()
	opts.Bandwidth = bandwidth

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := align.Align(seq, scorer, baseRanker{}, &opts); err != nil {
			b.Fatalf("Align failed: %v", err)
		}
	}
}

// BenchmarkAlign_SmallBand benchmarks a 2000×1800 problem at bandwidth 50.
func BenchmarkAlign_SmallBand(b *testing.B) {
	benchmarkAlign(b, 2000, 1800, 50)
}

// BenchmarkAlign_DefaultBand benchmarks a 2000×1800 problem at bandwidth 100.
func BenchmarkAlign_DefaultBand(b *testing.B) {
	benchmarkAlign(b, 2000, 1800, 100)
}

// BenchmarkAlign_WideBand benchmarks a 2000×1800 problem at bandwidth 250.
func BenchmarkAlign_WideBand(b *testing.B) {
	benchmarkAlign(b, 2000, 1800, 250)
}
