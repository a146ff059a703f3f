package band

import "math"

// Unreachable is the sentinel score for cells that were never computed
// or lie outside a band. It corresponds to probability zero.
var Unreachable = math.Inf(-1)

// Move identifies the predecessor transition recorded for a cell.
type Move uint8

const (
	// FromNone marks a cell with no recorded predecessor.
	FromNone Move = iota

	// FromDiag: one event consumed one new k-mer (step).
	FromDiag

	// FromUp: the same k-mer re-observed by a new event (stay),
	// or an event trimmed against the k-mer=-1 boundary column.
	FromUp

	// FromLeft: a k-mer skipped without a matching event (skip).
	FromLeft
)

// String returns a short human-readable tag, used by trace output.
func (m Move) String() string {
	switch m {
	case FromDiag:
		return "diag"
	case FromUp:
		return "up"
	case FromLeft:
		return "left"
	default:
		return "none"
	}
}

// Origin is the lower-left reference coordinate of a band, defining its
// local offset frame.
type Origin struct {
	EventIdx int
	KmerIdx  int
}

// Down returns the origin shifted by one event.
func (o Origin) Down() Origin { return Origin{EventIdx: o.EventIdx + 1, KmerIdx: o.KmerIdx} }

// Right returns the origin shifted by one k-mer.
func (o Origin) Right() Origin { return Origin{EventIdx: o.EventIdx, KmerIdx: o.KmerIdx + 1} }

// Index returns the band index holding trellis cell (eventIdx, kmerIdx).
// Every valid cell of band b satisfies b == eventIdx+kmerIdx+2.
func Index(eventIdx, kmerIdx int) int {
	return (eventIdx + 1) + (kmerIdx + 1)
}
