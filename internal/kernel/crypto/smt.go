package crypto

import "github.com/ccoin/kernel/pkg/types"

// SMT is a sparse Merkle tree of Words keyed by Word, backing asset
// vaults and map-typed storage slots. A missing key's value is
// types.ZeroWord (spec.md section 4.2); there is no "key not found"
// error, since an empty vault entry and an absent one are
// indistinguishable by design.
type SMT interface {
	Get(key types.Word) types.Word
	Insert(key, value types.Word) (newRoot types.Word)
	Root() types.Word
	// Clone returns an independent copy: mutating the copy never affects
	// the original, and vice versa.
	Clone() SMT
}

// smt is a reference implementation keyed by the raw Word rather than a
// bit-indexed path into a fixed-depth tree: it is grounded on the
// teacher's CommitmentTree (an append-only Merkle accumulator) but
// generalized from "append a leaf" to "upsert a keyed leaf," since a
// vault is a balance map, not an append-only note set. The root is the
// sequential hash of (key, value) pairs in key order, which changes
// deterministically with every insert/delete and is empty (ZeroWord)
// for an empty map.
type smt struct {
	h       Hasher
	entries map[types.Word]types.Word
	order   []types.Word
}

// NewSMT returns an empty SMT backed by h.
func NewSMT(h Hasher) SMT {
	return &smt{h: h, entries: make(map[types.Word]types.Word)}
}

func (s *smt) Get(key types.Word) types.Word {
	if v, ok := s.entries[key]; ok {
		return v
	}
	return types.ZeroWord
}

func (s *smt) Insert(key, value types.Word) types.Word {
	_, existed := s.entries[key]
	if value.IsZero() {
		if existed {
			delete(s.entries, key)
			s.removeFromOrder(key)
		}
	} else {
		if !existed {
			s.order = append(s.order, key)
		}
		s.entries[key] = value
	}
	return s.Root()
}

func (s *smt) removeFromOrder(key types.Word) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *smt) Clone() SMT {
	entries := make(map[types.Word]types.Word, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	return &smt{h: s.h, entries: entries, order: append([]types.Word{}, s.order...)}
}

func (s *smt) Root() types.Word {
	if len(s.order) == 0 {
		return types.ZeroWord
	}
	sorted := append([]types.Word{}, s.order...)
	sortWords(sorted)
	acc := types.ZeroWord
	for _, k := range sorted {
		acc = s.h.Hash(acc, k, s.entries[k])
	}
	return acc
}

func sortWords(ws []types.Word) {
	for i := 1; i < len(ws); i++ {
		for j := i; j > 0 && ws[j].Less(ws[j-1]); j-- {
			ws[j], ws[j-1] = ws[j-1], ws[j]
		}
	}
}
