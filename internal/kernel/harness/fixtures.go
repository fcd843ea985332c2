// Package harness provides reference test fixtures for the kernel:
// deterministic field-element generation seeded via blake2b, and a
// small gnark circuit used only to sanity-check that the kernel's
// asset-conservation arithmetic would be expressible as R1CS constraints
// (not a real prover — per spec.md's explicit non-goal of defining a
// proof system).
package harness

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/ccoin/kernel/pkg/types"
)

// DeriveFelts expands seed into n deterministic field elements via
// repeated blake2b-256 hashing of seed‖counter. This is deliberately a
// different hash than the kernel's own MiMC sponge (internal/kernel
// /crypto) so tests can tell fixture generation apart from in-kernel
// hashing rather than accidentally coupling the two.
func DeriveFelts(seed []byte, n int) []types.Felt {
	out := make([]types.Felt, n)
	for i := 0; i < n; i++ {
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], uint64(i))
		digest := blake2b.Sum256(append(append([]byte{}, seed...), ctr[:]...))
		out[i] = types.FeltFromBigInt(new(big.Int).SetBytes(digest[:]))
	}
	return out
}

// DeriveWord expands seed into a single Word of four field elements.
func DeriveWord(seed []byte) types.Word {
	f := DeriveFelts(seed, 4)
	return types.NewWord(f[0], f[1], f[2], f[3])
}

// DeriveAccountID derives a plausible account id from seed, with the
// faucet/fungible type bits forced to the given values (tests rarely
// care about the proof-of-work seed predicate, only about exercising a
// specific account kind).
func DeriveAccountID(seed []byte, isFaucet, isFungible bool) types.AccountID {
	f := DeriveFelts(seed, 1)[0]
	v := f.BigInt()
	v.SetBit(v, 0, b2u(isFaucet))
	v.SetBit(v, 1, b2u(isFungible))
	return types.NewAccountID(types.FeltFromBigInt(v))
}

func b2u(b bool) uint {
	if b {
		return 1
	}
	return 0
}
