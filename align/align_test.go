package align_test

import (
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squigglekit/adaband/align"
	"github.com/squigglekit/adaband/band"
)

// stubScorer is an EmissionScorer test double backed by a closure.
type stubScorer struct {
	n    int
	emit func(eventIdx int, rank uint32) float64
}

func (s stubScorer) NumEvents() int { return s.n }

func (s stubScorer) LogEmission(eventIdx int, rank uint32) float64 {
	return s.emit(eventIdx, rank)
}

// baseRanker ranks single nucleotides: A=0, C=1, G=2, T=3.
type baseRanker struct{}

func (baseRanker) K() int { return 1 }
func (baseRanker) Rank(kmer string) uint32 {
	switch kmer[0] {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	default:
		return 3
	}
}

// diagonalScorer strongly favors matching event i to the i-th k-mer of
// sequence, making the pure diagonal path near-certain.
func diagonalScorer(sequence string, n int) stubScorer {
	want := make([]uint32, len(sequence))
	for i := range sequence {
		want[i] = baseRanker{}.Rank(sequence[i : i+1])
	}
	return stubScorer{n: n, emit: func(eventIdx int, rank uint32) float64 {
		if eventIdx < len(want) && want[eventIdx] == rank {
			return 0
		}
		return -1000
	}}
}

// TestAlign_Validation covers every sentinel error path.
func TestAlign_Validation(t *testing.T) {
	ok := stubScorer{n: 4, emit: func(int, uint32) float64 { return -1 }}
	opts := align.DefaultOptions()

	_, err := align.Align("ACGT", nil, baseRanker{}, &opts)
	assert.ErrorIs(t, err, align.ErrNilCollaborator, "nil scorer must be rejected")

	_, err = align.Align("ACGT", ok, nil, &opts)
	assert.ErrorIs(t, err, align.ErrNilCollaborator, "nil ranker must be rejected")

	_, err = align.Fill(nil, "ACGT", ok, baseRanker{}, &opts)
	assert.ErrorIs(t, err, align.ErrNilCollaborator, "nil trellis must be rejected")

	_, err = align.Align("", ok, baseRanker{}, &opts)
	assert.ErrorIs(t, err, align.ErrEmptySequence, "sequence without a full k-mer must be rejected")

	_, err = align.Align("ACGT", stubScorer{n: 0, emit: ok.emit}, baseRanker{}, &opts)
	assert.ErrorIs(t, err, align.ErrNoEvents, "zero events must be rejected")

	bad := align.DefaultOptions()
	bad.Bandwidth = 0
	_, err = align.Align("ACGT", ok, baseRanker{}, &bad)
	assert.ErrorIs(t, err, align.ErrBadBandwidth, "bandwidth 0 must be rejected")

	bad = align.DefaultOptions()
	bad.PSkip = 1.5
	_, err = align.Align("ACGT", ok, baseRanker{}, &bad)
	assert.ErrorIs(t, err, align.ErrBadProbability, "p_skip outside (0,1) must be rejected")

	bad = align.DefaultOptions()
	bad.PTrim = 0
	_, err = align.Align("ACGT", ok, baseRanker{}, &bad)
	assert.ErrorIs(t, err, align.ErrBadProbability, "p_trim outside (0,1) must be rejected")

	_, err = align.Align("ACGTACGT", stubScorer{n: 4, emit: ok.emit}, baseRanker{}, &opts)
	assert.ErrorIs(t, err, align.ErrEventDeficit, "more k-mers than events must be rejected")
}

// TestAlign_PerfectDiagonal: with as many events as k-mers and an
// emission scorer that near-certainly matches event i to k-mer i, the
// recovered path is exactly the diagonal with no skips or stays.
func TestAlign_PerfectDiagonal(t *testing.T) {
	seq := "ACGT"
	opts := align.DefaultOptions()
	opts.Bandwidth = 10

	pairs, err := align.Align(seq, diagonalScorer(seq, 4), baseRanker{}, &opts)
	require.NoError(t, err, "well-formed input must align")

	want := []align.Pair{
		{KmerIdx: 0, EventIdx: 0},
		{KmerIdx: 1, EventIdx: 1},
		{KmerIdx: 2, EventIdx: 2},
		{KmerIdx: 3, EventIdx: 3},
	}
	assert.Equal(t, want, pairs, "near-certain diagonal emissions must recover the diagonal path")
}

// TestFill_BoundarySeeds inspects the trellis after a run: the start
// cell carries score zero and band 1 holds the first-event trim state.
func TestFill_BoundarySeeds(t *testing.T) {
	seq := "ACGT"
	opts := align.DefaultOptions()
	opts.Bandwidth = 10

	m := band.NewMatrix()
	_, err := align.Fill(m, seq, diagonalScorer(seq, 4), baseRanker{}, &opts)
	require.NoError(t, err)

	startOffset := m.OffsetForKmer(0, -1)
	assert.Equal(t, 0.0, m.Get(0, startOffset), "start state must score zero")
	assert.Equal(t, band.FromNone, m.Backpointer(0, startOffset), "start state has no predecessor")

	trimOffset := m.OffsetForEvent(1, 0)
	assert.Equal(t, -1, m.KmerAt(1, trimOffset), "band 1 trim cell sits in the k-mer=-1 column")
	assert.InDelta(t, math.Log(opts.PTrim), m.Get(1, trimOffset), 1e-12,
		"band 1 trim cell must score log(p_trim)")
	assert.Equal(t, band.FromUp, m.Backpointer(1, trimOffset), "trim transitions point up")
}

// TestFill_BandIdentityOverFilled verifies every written cell satisfies
// bandIdx == eventIdx + kmerIdx + 2.
func TestFill_BandIdentityOverFilled(t *testing.T) {
	seq := "ACGTACGTACGT"
	scorer := stubScorer{n: 16, emit: func(eventIdx int, rank uint32) float64 {
		return -math.Abs(float64(int(rank) - eventIdx%4))
	}}
	opts := align.DefaultOptions()
	opts.Bandwidth = 6

	m := band.NewMatrix()
	_, err := align.Fill(m, seq, scorer, baseRanker{}, &opts)
	require.NoError(t, err)

	require.Positive(t, m.Fills(), "the fill must write cells")
	m.VisitFilled(func(bandIdx, offset int) {
		e := m.EventAt(bandIdx, offset)
		k := m.KmerAt(bandIdx, offset)
		assert.Equal(t, bandIdx, band.Index(e, k),
			"filled cell (band %d, offset %d) must satisfy the band identity", bandIdx, offset)
	})
}

// TestAlign_StepOnly: with vanishing skip probability and exactly one
// event per k-mer, the path is step-only — its length equals the event
// count and it visits every k-mer exactly once in order.
func TestAlign_StepOnly(t *testing.T) {
	seq := "ACGTACGT"
	opts := align.DefaultOptions()
	opts.Bandwidth = 12
	opts.PSkip = 1e-9

	pairs, err := align.Align(seq, diagonalScorer(seq, 8), baseRanker{}, &opts)
	require.NoError(t, err)

	require.Len(t, pairs, 8, "step-only path length must equal the event count")
	for i, p := range pairs {
		assert.Equal(t, i, p.KmerIdx, "k-mer %d visited exactly once, in order", i)
		assert.Equal(t, i, p.EventIdx, "event %d consumed by exactly one step", i)
	}
}

// TestAlign_MonotoneOutput: with surplus events the path mixes stays
// into the steps, but both output indices stay monotone non-decreasing
// and inside their legal ranges.
func TestAlign_MonotoneOutput(t *testing.T) {
	seq := "ACGTACGT"
	nEvents := 12
	scorer := stubScorer{n: nEvents, emit: func(eventIdx int, rank uint32) float64 {
		return -math.Abs(float64(int(rank)-eventIdx%4)) - 0.25
	}}
	opts := align.DefaultOptions()
	opts.Bandwidth = 10

	pairs, err := align.Align(seq, scorer, baseRanker{}, &opts)
	require.NoError(t, err)
	require.NotEmpty(t, pairs, "a reachable trellis must yield a path")

	for i, p := range pairs {
		assert.True(t, p.KmerIdx >= 0 && p.KmerIdx < 8, "pair %d: k-mer index in range", i)
		assert.True(t, p.EventIdx >= 0 && p.EventIdx < nEvents, "pair %d: event index in range", i)
		if i > 0 {
			assert.GreaterOrEqual(t, p.KmerIdx, pairs[i-1].KmerIdx, "k-mer indices must not decrease")
			assert.GreaterOrEqual(t, p.EventIdx, pairs[i-1].EventIdx, "event indices must not decrease")
		}
	}
}

// countingTrellis wraps band.Matrix to verify the engine reaches
// storage only through the Trellis interface.
type countingTrellis struct {
	*band.Matrix
	bestOfThree int
}

func (c *countingTrellis) SetBestOfThree(bandIdx, offset int, d, u, l float64) {
	c.bestOfThree++
	c.Matrix.SetBestOfThree(bandIdx, offset, d, u, l)
}

// TestFill_TrellisSubstitution runs the engine against an instrumented
// backend and checks it behaves identically to the production matrix.
func TestFill_TrellisSubstitution(t *testing.T) {
	seq := "ACGT"
	opts := align.DefaultOptions()
	opts.Bandwidth = 10

	counted := &countingTrellis{Matrix: band.NewMatrix()}
	got, err := align.Fill(counted, seq, diagonalScorer(seq, 4), baseRanker{}, &opts)
	require.NoError(t, err)
	assert.Positive(t, counted.bestOfThree, "the recurrence must route through SetBestOfThree")

	want, err := align.Align(seq, diagonalScorer(seq, 4), baseRanker{}, &opts)
	require.NoError(t, err)
	assert.Equal(t, want, got, "instrumented backend must not change the path")
}

// TestAlign_TraceParity checks the trace hook changes no behavior.
func TestAlign_TraceParity(t *testing.T) {
	seq := "ACGTACGT"
	opts := align.DefaultOptions()
	opts.Bandwidth = 12

	plain, err := align.Align(seq, diagonalScorer(seq, 8), baseRanker{}, &opts)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	traced := opts
	traced.Trace = logger

	withTrace, err := align.Align(seq, diagonalScorer(seq, 8), baseRanker{}, &traced)
	require.NoError(t, err)
	assert.Equal(t, plain, withTrace, "tracing must preserve behavior parity")
}

// TestAlign_NilOptionsDefaults: nil opts behaves like DefaultOptions.
func TestAlign_NilOptionsDefaults(t *testing.T) {
	seq := "ACGT"
	pairs, err := align.Align(seq, diagonalScorer(seq, 4), baseRanker{}, nil)
	require.NoError(t, err, "nil opts must select defaults")
	assert.Len(t, pairs, 4, "defaults must align the 4x4 problem")
}
