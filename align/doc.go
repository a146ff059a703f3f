// Package align computes a maximum-likelihood alignment between an
// ordered sequence of signal events and the overlapping k-mers of a
// candidate sequence, by adaptive banded Viterbi decoding.
//
// What:
//
//   - Align runs the full pipeline on a fresh band.Matrix: transition
//     penalties, k-mer rank cache, boundary seeding, band-by-band fill,
//     and backtrace.
//   - Fill is the same engine parameterized over the Trellis capability
//     interface, so instrumented or test-double storage backends can be
//     substituted without touching the recurrence.
//   - The transition model has three moves — step (one event, one new
//     k-mer), stay (same k-mer, new event), skip (k-mer without event) —
//     plus explicit trim states that discard leading and trailing events.
//
// Why banded:
//
//	The full trellis is O(events × k-mers). Computing one fixed-width
//	anti-diagonal band at a time and letting it drift toward the side
//	carrying more probability mass bounds both time and memory to
//	O(n × bandwidth), keeping the true path inside the band with high
//	probability.
//
// Caveat:
//
//	If the bandwidth is too small for the divergence between event and
//	k-mer counts the true path can leave the band. The engine does not
//	detect this; it returns the best path reachable inside the band.
//	Choosing an adequate bandwidth is the caller's responsibility.
//
// Errors:
//
//   - ErrEmptySequence: sequence shorter than one k-mer.
//   - ErrNoEvents: the scorer exposes zero events.
//   - ErrBadBandwidth: bandwidth below 1.
//   - ErrBadProbability: p_skip/p_trim outside (0,1), or no probability
//     mass left for the step transition.
//   - ErrEventDeficit: fewer events than k-mers (stay probability would
//     be negative).
//   - ErrNilCollaborator: missing scorer, ranker, or trellis.
//
// Complexity: O(nBands × bandwidth) time, O(nBands × bandwidth) memory.
package align
