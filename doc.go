// Package adaband aligns signal-derived event sequences against the
// overlapping k-mers of a candidate nucleotide sequence, using a
// Viterbi dynamic program confined to an adaptively placed diagonal
// band (Suzuki's adaptive banding).
//
// 🚀 What is adaband?
//
//	Instead of filling the full events × k-mers trellis, adaband computes
//	one anti-diagonal band of fixed width at a time and lets the band
//	drift toward the side carrying more probability mass. Time and
//	memory are O(n × bandwidth) rather than O(n²), at the cost of an
//	approximate (banded) search.
//
// ✨ Key features:
//   - adaptive band placement: score-guided drift, parity fallback
//   - skip / stay / step transition model with leading & trailing
//     event trimming
//   - single-best-path (Viterbi) decoding with full backtrace
//   - pluggable trellis storage for instrumented or test backends
//   - Gaussian pore-model emission scoring with per-read calibration
//   - parallel batch driver for many independent alignments
//
// Everything is organized under four subpackages:
//
//	band/  — band-local coordinate storage, placement policy, offset ranges
//	align/ — recurrence fill engine, backtrace, options & collaborator interfaces
//	model/ — DNA k-mer ranking and Gaussian signal-level emission scoring
//	batch/ — parallel fan-out over independent alignment problems
//
// Each band is one anti-diagonal slice of the trellis; consecutive
// bands shift by exactly one event (down) or one k-mer (right), so a
// path can only move diagonally, down, or right — the skip, stay and
// step transitions of the underlying profile HMM.
//
//	go get github.com/squigglekit/adaband
package adaband
