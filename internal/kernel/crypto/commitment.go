package crypto

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrCommitmentOpeningFailed is returned when a blinded commitment does
// not open to the claimed value and blinder.
var ErrCommitmentOpeningFailed = errors.New("crypto: commitment does not open to the given value and blinder")

var (
	commitG, commitH bn254.G1Affine
	commitInit       bool
)

// initGenerators derives the two independent Pedersen generators used by
// BlindedCommitment: G is BN254's standard base point, H is derived from
// it by scalar multiplication with a fixed domain-separated scalar so
// that no party knows the discrete log relating them.
func initGenerators() {
	if commitInit {
		return
	}
	_, _, g, _ := bn254.Generators()
	commitG = g
	var seed fr.Element
	seed.SetString("7656456665487479416579877289180049549108023412651043800520937843092792712517")
	commitH.ScalarMultiplication(&commitG, seed.BigInt(new(big.Int)))
	commitInit = true
}

// BlindedCommitment is a Pedersen commitment C = value*G + blinder*H over
// BN254's G1, usable for a host to sanity-check that a set of asset
// amounts balances without revealing any individual amount — the shape
// of disclosure a real rollup would use to let a wallet prove solvency
// to a counterparty without opening its whole vault. The kernel's own
// vault commitments (the SMT roots in internal/kernel/vault) stay fully
// transparent; this is a separate, optional privacy layer exercised only
// by internal/kernel/harness.
type BlindedCommitment struct {
	Point bn254.G1Affine
}

// NewBlindedCommitment commits to value under blinder.
func NewBlindedCommitment(value, blinder uint64) BlindedCommitment {
	initGenerators()
	var vG, bH, sum bn254.G1Affine
	vG.ScalarMultiplication(&commitG, new(big.Int).SetUint64(value))
	bH.ScalarMultiplication(&commitH, new(big.Int).SetUint64(blinder))
	sum.Add(&vG, &bH)
	return BlindedCommitment{Point: sum}
}

// Add homomorphically combines two commitments: if c1 commits to
// (v1, r1) and c2 to (v2, r2), Add(c1, c2) commits to (v1+v2, r1+r2).
func Add(c1, c2 BlindedCommitment) BlindedCommitment {
	var sum bn254.G1Affine
	sum.Add(&c1.Point, &c2.Point)
	return BlindedCommitment{Point: sum}
}

// Equal reports whether two commitments are the same curve point.
func (c BlindedCommitment) Equal(o BlindedCommitment) bool {
	return c.Point.Equal(&o.Point)
}

// Open verifies that c commits to (value, blinder).
func (c BlindedCommitment) Open(value, blinder uint64) error {
	if !c.Equal(NewBlindedCommitment(value, blinder)) {
		return ErrCommitmentOpeningFailed
	}
	return nil
}

// Bytes returns the uncompressed G1 encoding (X and Y) of the commitment.
func (c BlindedCommitment) Bytes() []byte {
	return c.Point.Marshal()
}
