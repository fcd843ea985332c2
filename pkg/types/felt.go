// Package types defines the core data structures shared across the
// transaction kernel: field elements, words, accounts, assets and notes.
package types

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Felt is a single prime-field scalar (F), the atomic unit of kernel state.
// It is backed by the BN254 scalar field, a concrete stand-in for the
// rollup's native VM field.
type Felt struct {
	e fr.Element
}

// Zero is the additive identity of F.
var Zero = Felt{}

// FeltFromUint64 builds a Felt from a small integer. Kernel quantities such
// as nonces and amounts are bounded well below the field modulus, so this
// is the normal way to construct one.
func FeltFromUint64(v uint64) Felt {
	var f Felt
	f.e.SetUint64(v)
	return f
}

// FeltFromBigInt reduces a big.Int modulo F.
func FeltFromBigInt(v *big.Int) Felt {
	var f Felt
	f.e.SetBigInt(v)
	return f
}

// Uint64 returns the Felt's value as a uint64 and whether it fit without
// truncation (i.e. the represented integer is < 2^64).
func (f Felt) Uint64() (uint64, bool) {
	big := f.e.BigInt(new(big.Int))
	if !big.IsUint64() {
		return 0, false
	}
	return big.Uint64(), true
}

// BigInt returns the Felt's canonical representative as a big.Int.
func (f Felt) BigInt() *big.Int {
	return f.e.BigInt(new(big.Int))
}

// Add returns f + g.
func (f Felt) Add(g Felt) Felt {
	var r Felt
	r.e.Add(&f.e, &g.e)
	return r
}

// Sub returns f - g.
func (f Felt) Sub(g Felt) Felt {
	var r Felt
	r.e.Sub(&f.e, &g.e)
	return r
}

// Mul returns f * g.
func (f Felt) Mul(g Felt) Felt {
	var r Felt
	r.e.Mul(&f.e, &g.e)
	return r
}

// Equal reports whether f and g represent the same field element.
func (f Felt) Equal(g Felt) bool {
	return f.e.Equal(&g.e)
}

// IsZero reports whether f is the additive identity.
func (f Felt) IsZero() bool {
	return f.e.IsZero()
}

// Bytes returns the big-endian canonical byte encoding of f.
func (f Felt) Bytes() []byte {
	b := f.e.Bytes()
	return b[:]
}

// SetBytes sets f from a big-endian byte encoding, reducing modulo F.
func (f *Felt) SetBytes(b []byte) {
	f.e.SetBytes(b)
}

// String renders f in decimal.
func (f Felt) String() string {
	return f.e.String()
}
