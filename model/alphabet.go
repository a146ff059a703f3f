package model

import "errors"

// ErrBadK indicates a non-positive k-mer length.
var ErrBadK = errors.New("model: k-mer length must be positive")

// Alphabet ranks fixed-length DNA k-mers. Ranks are base-4
// lexicographic: Rank("AA..A") == 0 and Rank("TT..T") == 4^k - 1.
type Alphabet struct {
	k int
}

// NewAlphabet returns an Alphabet for k-mers of length k.
func NewAlphabet(k int) (*Alphabet, error) {
	if k < 1 {
		return nil, ErrBadK
	}
	return &Alphabet{k: k}, nil
}

// K returns the fixed k-mer length.
func (a *Alphabet) K() int { return a.k }

// NumKmers returns the alphabet size 4^k.
func (a *Alphabet) NumKmers() int { return 1 << (2 * a.k) }

// Rank returns the base-4 encoding of kmer. Lowercase bases are
// accepted; anything that is not A, C or G ranks as T.
// Complexity: O(k).
func (a *Alphabet) Rank(kmer string) uint32 {
	var r uint32
	for i := 0; i < len(kmer); i++ {
		r = r<<2 | baseRank(kmer[i])
	}
	return r
}

func baseRank(b byte) uint32 {
	switch b {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	default:
		return 3
	}
}
