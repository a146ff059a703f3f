package align

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/squigglekit/adaband/band"
)

// Sentinel errors for alignment input validation.
var (
	// ErrEmptySequence indicates the candidate sequence holds no complete k-mer.
	ErrEmptySequence = errors.New("align: sequence must contain at least one k-mer")

	// ErrNoEvents indicates the scorer exposes an empty observation sequence.
	ErrNoEvents = errors.New("align: event sequence must be non-empty")

	// ErrBadBandwidth indicates a non-positive bandwidth.
	ErrBadBandwidth = errors.New("align: bandwidth must be positive")

	// ErrBadProbability indicates p_skip or p_trim outside (0,1), or a
	// skip probability so large no mass remains for the step transition.
	ErrBadProbability = errors.New("align: transition probabilities must lie in (0,1) and leave step mass")

	// ErrEventDeficit indicates fewer events than k-mers, which would
	// make the derived stay probability negative.
	ErrEventDeficit = errors.New("align: fewer events than k-mers leaves no stay probability")

	// ErrNilCollaborator indicates a missing scorer, ranker, or trellis.
	ErrNilCollaborator = errors.New("align: scorer, ranker, and trellis must be non-nil")
)

// Align computes the banded Viterbi alignment of the scorer's events
// against the overlapping k-mers of sequence, using a fresh band.Matrix
// for storage. A nil opts selects DefaultOptions.
//
// The result is an ascending sequence of (k-mer, event) pairs, monotone
// non-decreasing in both indices. Leading and trailing events absorbed
// by the trim states do not appear in any pair.
//
// Complexity: O((nEvents+nKmers) × bandwidth) time and memory.
func Align(sequence string, scorer EmissionScorer, ranker KmerRanker, opts *Options) ([]Pair, error) {
	return Fill(band.NewMatrix(), sequence, scorer, ranker, opts)
}

// Fill is Align parameterized over the trellis storage backend. The
// recurrence and backtrace touch tr only through the Trellis interface,
// so instrumented or test-double backends slot in unchanged.
func Fill(tr Trellis, sequence string, scorer EmissionScorer, ranker KmerRanker, opts *Options) ([]Pair, error) {
	if tr == nil || scorer == nil || ranker == nil {
		return nil, ErrNilCollaborator
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Bandwidth < 1 {
		return nil, ErrBadBandwidth
	}
	if o.PSkip <= 0 || o.PSkip >= 1 || o.PTrim <= 0 || o.PTrim >= 1 {
		return nil, ErrBadProbability
	}

	k := ranker.K()
	if len(sequence) < k {
		return nil, ErrEmptySequence
	}
	nKmers := len(sequence) - k + 1
	nEvents := scorer.NumEvents()
	if nEvents == 0 {
		return nil, ErrNoEvents
	}
	if nEvents < nKmers {
		return nil, ErrEventDeficit
	}

	// Transition penalties. The stay probability is the expected
	// fraction of events that re-observe the k-mer they already matched.
	eventsPerKmer := float64(nEvents) / float64(nKmers)
	pStay := 1 - 1/eventsPerKmer
	pStep := 1 - o.PSkip - pStay
	if pStep <= 0 {
		return nil, ErrBadProbability
	}
	lpSkip := math.Log(o.PSkip)
	lpStay := math.Log(pStay)
	lpStep := math.Log(pStep)
	lpTrim := math.Log(o.PTrim)

	// Precompute k-mer ranks, one lookup per k-mer.
	ranks := make([]uint32, nKmers)
	for i := 0; i < nKmers; i++ {
		ranks[i] = ranker.Rank(sequence[i : i+k])
	}

	tr.Init(nEvents, nKmers, o.Bandwidth)

	// Band 0: score zero in the start cell (event -1, k-mer -1).
	startOffset := tr.OffsetForKmer(0, -1)
	tr.Set(0, startOffset, 0, band.FromNone)

	// Band 1: the very first event trimmed before any k-mer matched.
	firstTrimOffset := tr.OffsetForEvent(1, 0)
	tr.Set(1, firstTrimOffset, lpTrim, band.FromUp)

	trace := traceSink(&o)

	for bandIdx := 2; bandIdx < tr.NumBands(); bandIdx++ {
		tr.Place(bandIdx)

		// If the trim column (k-mer -1) falls inside this band, score the
		// cumulative cost of discarding every leading event up to here.
		if trimOffset := tr.OffsetForKmer(bandIdx, -1); tr.OffsetValid(trimOffset) {
			if eventIdx := tr.EventAt(bandIdx, trimOffset); eventIdx >= 0 && eventIdx < nEvents {
				tr.Set(bandIdx, trimOffset, lpTrim*float64(eventIdx+1), band.FromUp)
			} else {
				tr.Set(bandIdx, trimOffset, band.Unreachable, band.FromNone)
			}
		}

		minOffset, maxOffset := tr.OffsetRange(bandIdx)
		for offset := minOffset; offset < maxOffset; offset++ {
			eventIdx := tr.EventAt(bandIdx, offset)
			kmerIdx := tr.KmerAt(bandIdx, offset)
			rank := ranks[kmerIdx]

			offsetUp := tr.OffsetForEvent(bandIdx-1, eventIdx-1)
			offsetLeft := tr.OffsetForKmer(bandIdx-1, kmerIdx-1)
			offsetDiag := tr.OffsetForKmer(bandIdx-2, kmerIdx-1)

			// Any predecessor may read Unreachable when outside its band.
			up := tr.Get(bandIdx-1, offsetUp)
			left := tr.Get(bandIdx-1, offsetLeft)
			diag := tr.Get(bandIdx-2, offsetDiag)

			emission := scorer.LogEmission(eventIdx, rank)
			scoreDiag := diag + lpStep + emission
			scoreUp := up + lpStay + emission
			// A skip cannot consume the very first k-mer; there it
			// degenerates to a step with emission.
			scoreLeft := left + lpSkip
			if kmerIdx == 0 {
				scoreLeft = left + lpStep + emission
			}
			tr.SetBestOfThree(bandIdx, offset, scoreDiag, scoreUp, scoreLeft)

			if trace != nil {
				trace.WithFields(logrus.Fields{
					"band":   bandIdx,
					"offset": offset,
					"event":  eventIdx,
					"kmer":   kmerIdx,
					"rank":   rank,
					"emit":   emission,
					"score":  tr.Get(bandIdx, offset),
					"from":   tr.Backpointer(bandIdx, offset).String(),
				}).Log(o.TraceLevel, "fill")
			}
		}
	}

	return backtrace(tr, nEvents, nKmers, lpTrim), nil
}

// backtrace recovers the best-scoring path from the filled trellis,
// reading storage only.
func backtrace(tr Trellis, nEvents, nKmers int, lpTrim float64) []Pair {
	maxScore := band.Unreachable
	currEventIdx := 0
	currKmerIdx := nKmers - 1

	// Find the best event at the final k-mer column after paying the
	// cost of trimming the remaining trailing events. Strict comparison
	// keeps the first (smallest) event index on ties.
	for eventIdx := 0; eventIdx < nEvents; eventIdx++ {
		bandIdx := band.Index(eventIdx, currKmerIdx)
		offset := tr.OffsetForEvent(bandIdx, eventIdx)
		if !tr.OffsetValid(offset) {
			continue
		}
		s := tr.Get(bandIdx, offset) + float64(nEvents-eventIdx)*lpTrim
		if s > maxScore {
			maxScore = s
			currEventIdx = eventIdx
		}
	}

	var out []Pair
	isSkip := false
	for currKmerIdx >= 0 && currEventIdx >= 0 {
		// A skip consumed the k-mer we just left; the pair at the new
		// position is withheld exactly once.
		if !isSkip {
			out = append(out, Pair{KmerIdx: currKmerIdx, EventIdx: currEventIdx})
		}

		bandIdx := band.Index(currEventIdx, currKmerIdx)
		offset := tr.OffsetForEvent(bandIdx, currEventIdx)

		switch tr.Backpointer(bandIdx, offset) {
		case band.FromUp:
			currEventIdx--
			isSkip = false
		case band.FromLeft:
			currKmerIdx--
			isSkip = true
		default:
			// Diagonal; an unset backpointer walks out the same way.
			currEventIdx--
			currKmerIdx--
			isSkip = false
		}
	}

	// Built back-to-front; reverse in place.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// traceSink returns the logger to trace into, or nil when tracing is
// disabled or the level would drop every record anyway.
func traceSink(o *Options) *logrus.Logger {
	if o.Trace != nil && o.Trace.IsLevelEnabled(o.TraceLevel) {
		return o.Trace
	}
	return nil
}
