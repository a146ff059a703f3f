// Package band stores the score/backpointer trellis of a banded
// alignment in band-local coordinates.
//
// What:
//
//   - Matrix owns the flat score and backpointer buffers for all bands,
//     indexed band×bandwidth+offset, plus one Origin per band.
//   - Origin is the lower-left reference coordinate of a band; it maps
//     (event, k-mer) trellis coordinates to band-local offsets and back.
//   - Place implements Suzuki's adaptive placement rule: each band beyond
//     the first two moves right (one k-mer) or down (one event) depending
//     on the scores at the edges of the previous band.
//   - OffsetRange intersects a band with the legal event/k-mer spans so
//     the fill loop never touches structurally unreachable cells.
//
// Coordinates:
//
//	A cell (event e, k-mer k) lives in band e+k+2. Its local offset is
//	origin.EventIdx−e, which must equal k−origin.KmerIdx; both formulas
//	agreeing is what makes a coordinate meaningful for a band.
//
// Sentinels:
//
//   - Unreachable (−Inf) marks cells never computed or outside the band.
//     No real log-probability equals it, so reads at invalid offsets are
//     safe and never panic.
//   - FromNone marks cells whose predecessor was never recorded.
//
// Ownership:
//
//	A Matrix belongs to exactly one alignment instance and one goroutine
//	for its whole lifetime. There is no internal locking. Allocation
//	failure in Init is fatal (runtime panic), the only fatal condition
//	in the package.
package band
