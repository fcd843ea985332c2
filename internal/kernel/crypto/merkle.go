package crypto

import "github.com/ccoin/kernel/pkg/types"

// MerkleVerifier checks a Merkle authentication path against a claimed
// root. Mismatches are reported via the boolean result; callers treat a
// false result as fatal (spec.md section 4.2).
type MerkleVerifier interface {
	// Verify returns true iff walking leaf up through path, guided by
	// index's bits (0 = sibling is on the right, 1 = sibling is on the
	// left at that depth), reaches root.
	Verify(leaf types.Word, path []types.Word, index uint64, root types.Word) bool
}

type merkleVerifier struct {
	h Hasher
}

// NewMerkleVerifier returns a MerkleVerifier backed by h.
func NewMerkleVerifier(h Hasher) MerkleVerifier {
	return merkleVerifier{h: h}
}

func (v merkleVerifier) Verify(leaf types.Word, path []types.Word, index uint64, root types.Word) bool {
	cur := leaf
	for depth, sibling := range path {
		if index&(1<<uint(depth)) == 0 {
			cur = v.h.Hash(cur, sibling)
		} else {
			cur = v.h.Hash(sibling, cur)
		}
	}
	return cur.Equal(root)
}
