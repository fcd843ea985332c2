package crypto

import (
	"errors"

	"github.com/ccoin/kernel/pkg/types"
)

// MMR errors.
var (
	ErrMMRPositionOutOfRange = errors.New("crypto: mmr position out of range")
	ErrMMRProofMismatch      = errors.New("crypto: mmr opening does not match the claimed root")
)

// MMROpening is everything needed to authenticate one leaf against an
// MMR root: the Merkle path up to its containing peak, plus the full
// current peak list (bagged together to reconstruct the root).
type MMROpening struct {
	Leaf       types.Word
	Siblings   []types.Word // path from Leaf to the peak containing it
	LocalIndex uint64       // index of Leaf within that peak's subtree
	PeakIndex  int          // which entry of Peaks this leaf's peak is
	Peaks      []types.Word // the MMR's current peak list, oldest/tallest first
}

// MMR is an append-only Merkle Mountain Range over block sub-hashes
// (spec.md section 3). The kernel appends the current block after
// verifying the chain commitment, so notes produced in it can later be
// authenticated against the chain.
type MMR interface {
	Append(leaf types.Word) (pos uint64)
	NumLeaves() uint64
	Root() types.Word
	Open(pos uint64) (MMROpening, error)
	// Peaks returns the current peak roots, oldest/tallest first — the
	// compact representation stored in memmap.Map for bookkeeping.
	Peaks() []types.Word
}

// peak tracks one mountain: its current root hash and height (0 = a bare
// leaf, height h covers 2^h leaves).
type peak struct {
	root   types.Word
	height int
	// leaves holds this peak's leaves in order, retained so Open can
	// rebuild an intra-peak Merkle path; a production MMR would persist
	// only the path needed, not the whole subtree, but this reference
	// implementation favors simplicity over memory.
	leaves []types.Word
}

type mmr struct {
	h      Hasher
	peaks  []peak
	leaves uint64
}

// NewMMR returns an empty MMR backed by h.
func NewMMR(h Hasher) MMR {
	return &mmr{h: h}
}

func (m *mmr) Append(leaf types.Word) uint64 {
	pos := m.leaves
	m.leaves++

	newPeak := peak{root: leaf, height: 0, leaves: []types.Word{leaf}}
	m.peaks = append(m.peaks, newPeak)

	// Merge equal-height peaks from the top, mirroring a binary
	// counter increment: carries cascade while the two most recent
	// peaks share a height.
	for len(m.peaks) >= 2 {
		last := m.peaks[len(m.peaks)-1]
		prev := m.peaks[len(m.peaks)-2]
		if last.height != prev.height {
			break
		}
		merged := peak{
			root:   m.h.Hash(prev.root, last.root),
			height: last.height + 1,
			leaves: append(append([]types.Word{}, prev.leaves...), last.leaves...),
		}
		m.peaks = append(m.peaks[:len(m.peaks)-2], merged)
	}

	return pos
}

func (m *mmr) NumLeaves() uint64 {
	return m.leaves
}

func (m *mmr) Peaks() []types.Word {
	out := make([]types.Word, len(m.peaks))
	for i, p := range m.peaks {
		out[i] = p.root
	}
	return out
}

// Root bags the current peaks left-to-right: H(...H(H(p0,p1),p2)...).
// A single-peak MMR's root is that peak's root unchanged.
func (m *mmr) Root() types.Word {
	if len(m.peaks) == 0 {
		return types.ZeroWord
	}
	acc := m.peaks[0].root
	for i := 1; i < len(m.peaks); i++ {
		acc = m.h.Hash(acc, m.peaks[i].root)
	}
	return acc
}

func (m *mmr) Open(pos uint64) (MMROpening, error) {
	if pos >= m.leaves {
		return MMROpening{}, ErrMMRPositionOutOfRange
	}

	// Locate the peak containing pos by walking peaks in append order
	// and tracking how many leaves precede each.
	var seen uint64
	for pi, pk := range m.peaks {
		span := uint64(1) << uint(pk.height)
		if pos < seen+span {
			local := pos - seen
			siblings := merklePath(m.h, pk.leaves, local)
			peakRoots := make([]types.Word, len(m.peaks))
			for i, p := range m.peaks {
				peakRoots[i] = p.root
			}
			return MMROpening{
				Leaf:       pk.leaves[local],
				Siblings:   siblings,
				LocalIndex: local,
				PeakIndex:  pi,
				Peaks:      peakRoots,
			}, nil
		}
		seen += span
	}
	return MMROpening{}, ErrMMRPositionOutOfRange
}

// merklePath rebuilds the sibling path for leaves[index] inside a
// perfect binary tree over leaves (len(leaves) is always a power of two
// for a well-formed peak).
func merklePath(h Hasher, leaves []types.Word, index uint64) []types.Word {
	level := append([]types.Word{}, leaves...)
	var path []types.Word
	idx := index
	for len(level) > 1 {
		siblingIdx := idx ^ 1
		path = append(path, level[siblingIdx])
		next := make([]types.Word, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, h.Hash(level[i], level[i+1]))
		}
		level = next
		idx /= 2
	}
	return path
}

// VerifyMMROpening independently re-derives root from an opening and
// reports whether it matches. This is the verification side of Open,
// kept as a free function since the prologue (the only caller) checks
// an opening it built from advice, not one it generated itself.
func VerifyMMROpening(h Hasher, o MMROpening, root types.Word) bool {
	if o.PeakIndex < 0 || o.PeakIndex >= len(o.Peaks) {
		return false
	}
	cur := o.Leaf
	idx := o.LocalIndex
	for _, sibling := range o.Siblings {
		if idx&1 == 0 {
			cur = h.Hash(cur, sibling)
		} else {
			cur = h.Hash(sibling, cur)
		}
		idx /= 2
	}
	if !cur.Equal(o.Peaks[o.PeakIndex]) {
		return false
	}
	if len(o.Peaks) == 0 {
		return false
	}
	acc := o.Peaks[0]
	for i := 1; i < len(o.Peaks); i++ {
		acc = h.Hash(acc, o.Peaks[i])
	}
	return acc.Equal(root)
}
