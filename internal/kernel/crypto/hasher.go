// Package crypto wraps the host-provided cryptographic primitives the
// kernel assumes: a linear hash H, Merkle-path verification, MMR
// open/append, and SMT get/insert. Every operation here is deterministic
// and side-effect-free except StreamAbsorb, which consumes advice.
//
// The real rollup VM supplies these as native instructions; this package
// gives a concrete, pure-Go stand-in (BN254 + MiMC) so the kernel can be
// exercised and unit-tested without one, per spec.md section 9's design
// note that the hasher/MMR/SMT should be "abstracted behind interfaces so
// a non-VM implementation can unit-test the core."
package crypto

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/ccoin/kernel/pkg/types"
)

// Hasher is the kernel's linear hash façade.
type Hasher interface {
	// Hash absorbs the elements of every Word in order and squeezes out
	// a single digest Word.
	Hash(words ...types.Word) types.Word

	// StreamAbsorb reads k Words from r in order, absorbs them, and
	// returns the resulting digest. It is the only advice-consuming
	// operation in this package.
	StreamAbsorb(r WordReader, k int) (types.Word, error)
}

// WordReader is the minimal advice-reading surface StreamAbsorb needs;
// internal/kernel/advice.Provider satisfies it.
type WordReader interface {
	PopWord() (types.Word, error)
}

// mimcHasher implements Hasher using a MiMC sponge over the BN254 scalar
// field. A Word digest is produced by hashing the same absorbed stream
// four times under four domain tags, one per output element — a
// reference expansion, not a claim about the real VM's internal sponge
// construction.
type mimcHasher struct{}

// NewHasher returns the reference MiMC-backed Hasher.
func NewHasher() Hasher {
	return mimcHasher{}
}

func (mimcHasher) Hash(words ...types.Word) types.Word {
	return hashWords(words)
}

func (h mimcHasher) StreamAbsorb(r WordReader, k int) (types.Word, error) {
	words := make([]types.Word, 0, k)
	for i := 0; i < k; i++ {
		w, err := r.PopWord()
		if err != nil {
			return types.Word{}, err
		}
		words = append(words, w)
	}
	return hashWords(words), nil
}

// domainTags separates the four squeezed outputs of a Word digest so
// that hashing the same input stream four times doesn't just repeat one
// value.
var domainTags = [types.WordSize]byte{0x01, 0x02, 0x03, 0x04}

func hashWords(words []types.Word) types.Word {
	var out types.Word
	for i := 0; i < types.WordSize; i++ {
		h := mimc.NewMiMC()
		h.Write([]byte{domainTags[i]})
		for _, w := range words {
			for _, f := range w {
				b := f.Bytes()
				h.Write(b)
			}
		}
		var digest types.Felt
		digest.SetBytes(h.Sum(nil))
		out[i] = digest
	}
	return out
}

// HashPair is a convenience used throughout the Merkle/MMR/SMT
// reference implementations: H(left || right).
func HashPair(h Hasher, left, right types.Word) types.Word {
	return h.Hash(left, right)
}
