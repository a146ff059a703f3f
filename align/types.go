package align

import (
	"github.com/sirupsen/logrus"

	"github.com/squigglekit/adaband/band"
)

// Pair is one aligned position: event EventIdx was matched to k-mer
// KmerIdx. Align output is ascending and monotone in both indices.
type Pair struct {
	KmerIdx  int
	EventIdx int
}

// EmissionScorer scores how well one event matches one ranked k-mer.
// It is an opaque oracle: the engine assumes its output is a natural-log
// probability but never inspects its calibration.
type EmissionScorer interface {
	// NumEvents returns the number of events in the observation sequence.
	NumEvents() int

	// LogEmission returns log P(event eventIdx | k-mer with the given rank).
	LogEmission(eventIdx int, kmerRank uint32) float64
}

// KmerRanker maps k-mer substrings of a sequence to integer ranks used
// for emission lookup.
type KmerRanker interface {
	// K returns the fixed k-mer length.
	K() int

	// Rank returns the integer encoding of a k-mer of length K.
	Rank(kmer string) uint32
}

// Trellis is the storage capability set the fill engine and backtrace
// depend on. band.Matrix is the production implementation; tests and
// instrumented builds may substitute their own.
type Trellis interface {
	// Init allocates per-alignment storage and seeds the two boundary
	// band origins.
	Init(nEvents, nKmers, bandwidth int)

	// NumBands returns the number of bands allocated by Init.
	NumBands() int

	// OffsetForEvent and OffsetForKmer convert trellis coordinates to
	// band-local offsets; EventAt and KmerAt invert them.
	OffsetForEvent(bandIdx, eventIdx int) int
	OffsetForKmer(bandIdx, kmerIdx int) int
	EventAt(bandIdx, offset int) int
	KmerAt(bandIdx, offset int) int

	// OffsetValid reports whether offset lies inside [0, bandwidth).
	OffsetValid(offset int) bool

	// Get and Backpointer return sentinels for offsets outside the band.
	Get(bandIdx, offset int) float64
	Backpointer(bandIdx, offset int) band.Move

	// Set writes unconditionally; SetBestOfThree applies the fixed
	// diagonal-wins-ties policy.
	Set(bandIdx, offset int, score float64, from band.Move)
	SetBestOfThree(bandIdx, offset int, scoreDiag, scoreUp, scoreLeft float64)

	// Place chooses the origin of band bandIdx (≥ 2); OffsetRange bounds
	// the fill loop to structurally reachable cells.
	Place(bandIdx int)
	OffsetRange(bandIdx int) (minOffset, maxOffset int)
}

// Options configures one alignment invocation. Probabilities are fixed
// per invocation; the stay probability is derived from the event/k-mer
// count ratio, not configured.
type Options struct {
	// Bandwidth is the number of band-local offsets computed per band.
	// Larger values tolerate more drift between the event and k-mer
	// axes at proportional cost.
	Bandwidth int

	// PSkip is the probability of skipping a k-mer without observing a
	// matching event. Must lie in (0,1).
	PSkip float64

	// PTrim is the per-event probability of discarding a leading or
	// trailing event without matching any k-mer. Must lie in (0,1).
	PTrim float64

	// Trace, when non-nil, receives structured per-cell diagnostics at
	// TraceLevel. Leave nil in production; behavior is identical either
	// way.
	Trace *logrus.Logger

	// TraceLevel is the level trace records are emitted at.
	TraceLevel logrus.Level
}

// DefaultOptions returns the standard configuration: bandwidth 100 and
// 1% skip/trim probability.
func DefaultOptions() Options {
	return Options{
		Bandwidth:  100,
		PSkip:      0.01,
		PTrim:      0.01,
		TraceLevel: logrus.DebugLevel,
	}
}
