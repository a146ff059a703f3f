package band

import "github.com/willf/bitset"

// Matrix is the band-local trellis storage for one alignment instance:
// flat score and backpointer buffers sized nBands×bandwidth, one Origin
// per band, and an occupancy mask of cells that were written.
//
// A zero Matrix is ready for Init. All methods are O(1) unless noted.
type Matrix struct {
	bandwidth int
	nEvents   int
	nKmers    int
	nBands    int

	scores  []float64
	moves   []Move
	origins []Origin
	filled  *bitset.BitSet
}

// NewMatrix returns an empty Matrix. Call Init before use.
func NewMatrix() *Matrix { return &Matrix{} }

// Init allocates storage for aligning nEvents events against nKmers
// k-mers with the given bandwidth: (nEvents+1)+(nKmers+1) bands of
// bandwidth cells each, every cell at Unreachable/FromNone, and the two
// boundary band origins seeded (band 0 centered on the start state,
// band 1 = band 0 moved down). If the allocation cannot be satisfied
// the runtime panics; Init never recovers.
// Complexity: O(nBands × bandwidth) time and memory.
func (m *Matrix) Init(nEvents, nKmers, bandwidth int) {
	m.nEvents = nEvents
	m.nKmers = nKmers
	m.bandwidth = bandwidth
	m.nBands = (nEvents + 1) + (nKmers + 1)

	cells := m.nBands * bandwidth
	m.scores = make([]float64, cells)
	for i := range m.scores {
		m.scores[i] = Unreachable
	}
	m.moves = make([]Move, cells)
	m.filled = bitset.New(uint(cells))

	m.origins = make([]Origin, m.nBands)
	half := bandwidth / 2
	m.origins[0] = Origin{EventIdx: half - 1, KmerIdx: -1 - half}
	m.origins[1] = m.origins[0].Down()
}

// NumBands returns the number of bands allocated by Init.
func (m *Matrix) NumBands() int { return m.nBands }

// Bandwidth returns the number of local offsets per band.
func (m *Matrix) Bandwidth() int { return m.bandwidth }

// OriginAt returns the origin of band bandIdx.
func (m *Matrix) OriginAt(bandIdx int) Origin { return m.origins[bandIdx] }

// Fills returns how many distinct cells have been written since Init.
func (m *Matrix) Fills() int { return int(m.filled.Count()) }

// VisitFilled calls fn for every written cell, in band order.
// Complexity: O(written cells).
func (m *Matrix) VisitFilled(fn func(bandIdx, offset int)) {
	for i, ok := m.filled.NextSet(0); ok; i, ok = m.filled.NextSet(i + 1) {
		fn(int(i)/m.bandwidth, int(i)%m.bandwidth)
	}
}

// OffsetForEvent converts an event coordinate to a band-local offset.
// Pure arithmetic; no bounds checking.
func (m *Matrix) OffsetForEvent(bandIdx, eventIdx int) int {
	return m.origins[bandIdx].EventIdx - eventIdx
}

// OffsetForKmer converts a k-mer coordinate to a band-local offset.
// Pure arithmetic; no bounds checking.
func (m *Matrix) OffsetForKmer(bandIdx, kmerIdx int) int {
	return kmerIdx - m.origins[bandIdx].KmerIdx
}

// EventAt converts a band-local offset back to an event coordinate.
func (m *Matrix) EventAt(bandIdx, offset int) int {
	return m.origins[bandIdx].EventIdx - offset
}

// KmerAt converts a band-local offset back to a k-mer coordinate.
func (m *Matrix) KmerAt(bandIdx, offset int) int {
	return m.origins[bandIdx].KmerIdx + offset
}

// OffsetValid reports whether offset lies inside [0, bandwidth).
func (m *Matrix) OffsetValid(offset int) bool {
	return offset >= 0 && offset < m.bandwidth
}

// Get returns the score at (bandIdx, offset), or Unreachable when the
// offset lies outside the band.
func (m *Matrix) Get(bandIdx, offset int) float64 {
	if !m.OffsetValid(offset) {
		return Unreachable
	}
	return m.scores[bandIdx*m.bandwidth+offset]
}

// Backpointer returns the recorded predecessor at (bandIdx, offset), or
// FromNone when the offset lies outside the band.
func (m *Matrix) Backpointer(bandIdx, offset int) Move {
	if !m.OffsetValid(offset) {
		return FromNone
	}
	return m.moves[bandIdx*m.bandwidth+offset]
}

// Set writes score and backpointer unconditionally; the caller owns
// offset validity.
func (m *Matrix) Set(bandIdx, offset int, score float64, from Move) {
	idx := bandIdx*m.bandwidth + offset
	m.scores[idx] = score
	m.moves[idx] = from
	m.filled.Set(uint(idx))
}

// SetBestOfThree records the best of the three candidate predecessor
// scores with its transition tag. The diagonal candidate is the
// provisional winner; "up" replaces it only when strictly greater, and
// "left" replaces the running winner only when strictly greater. The
// net tie-break (diagonal beats both on ties) is a fixed policy that
// downstream backtraces rely on for reproducibility.
func (m *Matrix) SetBestOfThree(bandIdx, offset int, scoreDiag, scoreUp, scoreLeft float64) {
	best := scoreDiag
	from := FromDiag
	if scoreUp > best {
		best = scoreUp
		from = FromUp
	}
	if scoreLeft > best {
		best = scoreLeft
		from = FromLeft
	}
	m.Set(bandIdx, offset, best, from)
}

// Place decides the origin of band bandIdx (≥ 2) following Suzuki's
// adaptive rule: compare the previous band's lower-left and upper-right
// scores and shift toward the side carrying more probability mass.
// When both probes are Unreachable the direction alternates purely by
// band-index parity (right on odd, down on even).
func (m *Matrix) Place(bandIdx int) {
	ll := m.Get(bandIdx-1, 0)
	ur := m.Get(bandIdx-1, m.bandwidth-1)
	llOut := ll == Unreachable
	urOut := ur == Unreachable

	var right bool
	if llOut && urOut {
		right = bandIdx%2 == 1
	} else {
		right = ll < ur
	}

	if right {
		m.origins[bandIdx] = m.origins[bandIdx-1].Right()
	} else {
		m.origins[bandIdx] = m.origins[bandIdx-1].Down()
	}
}

// OffsetRange intersects band bandIdx with the legal k-mer span
// [0, nKmers] and event span [-1, nEvents-1] (the -1 boundary is the
// before-the-first-event trim column), clipped to [0, bandwidth).
// The fill loop iterates [minOffset, maxOffset).
func (m *Matrix) OffsetRange(bandIdx int) (minOffset, maxOffset int) {
	kmerMin := m.OffsetForKmer(bandIdx, 0)
	kmerMax := m.OffsetForKmer(bandIdx, m.nKmers)

	eventMin := m.OffsetForEvent(bandIdx, m.nEvents-1)
	eventMax := m.OffsetForEvent(bandIdx, -1)

	minOffset = max(kmerMin, eventMin)
	minOffset = max(minOffset, 0)

	maxOffset = min(kmerMax, eventMax)
	maxOffset = min(maxOffset, m.bandwidth)
	return minOffset, maxOffset
}
