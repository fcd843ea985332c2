package harness

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/ccoin/kernel/internal/kernel/crypto"
)

// ErrBlindedConservationFailed is returned by CheckBlindedConservation
// when the blinded input and output commitments do not sum to the same
// point.
var ErrBlindedConservationFailed = errors.New("harness: blinded input/output commitments do not balance")

// CheckBlindedConservation is a privacy-preserving counterpart to
// CheckConservation: rather than solving a circuit over plaintext
// amounts, it sums homomorphic Pedersen commitments to the input and
// output amounts and checks the sums agree, without ever exposing an
// individual amount. blinders must sum to the same total on both sides
// for the check to pass, matching how a real confidential-amounts
// extension of this kernel would let a wallet prove solvency without
// opening its vault (the transparent kernel itself never needs this;
// it is offered as a reference host-side sanity check only).
func CheckBlindedConservation(inAmounts, inBlinders, outAmounts, outBlinders []uint64) error {
	inSum := crypto.NewBlindedCommitment(0, 0)
	for i, v := range inAmounts {
		inSum = crypto.Add(inSum, crypto.NewBlindedCommitment(v, inBlinders[i]))
	}
	outSum := crypto.NewBlindedCommitment(0, 0)
	for i, v := range outAmounts {
		outSum = crypto.Add(outSum, crypto.NewBlindedCommitment(v, outBlinders[i]))
	}
	if !inSum.Equal(outSum) {
		return ErrBlindedConservationFailed
	}
	return nil
}

// ConservationCircuit mirrors the epilogue's asset-conservation check
// (spec.md invariant 2, input_vault_root == output_vault_root) in
// circuit-shaped form: given lists of input and output amounts, assert
// the sum of the inputs equals the sum of the outputs. This
// is a host-side sanity check that the invariant the kernel enforces in
// Go is the same shape a real circuit would enforce in R1CS — it
// compiles and solves a witness but never runs a trusted setup or
// produces a proof (no prover/verifier, per spec.md's non-goals).
type ConservationCircuit struct {
	InAmounts  []frontend.Variable
	OutAmounts []frontend.Variable
}

// Define implements frontend.Circuit.
func (c *ConservationCircuit) Define(api frontend.API) error {
	var inSum, outSum frontend.Variable = 0, 0
	for _, v := range c.InAmounts {
		inSum = api.Add(inSum, v)
	}
	for _, v := range c.OutAmounts {
		outSum = api.Add(outSum, v)
	}
	api.AssertIsEqual(inSum, outSum)
	return nil
}

// CheckConservation builds a witness from inAmounts/outAmounts (amount
// lists, not necessarily of equal length) and reports whether the
// conservation circuit is solved by it — i.e. whether the two totals
// balance. It never
// touches proving/verifying keys, matching the reference-harness-only
// scope of this package.
func CheckConservation(inAmounts, outAmounts []uint64) error {
	circuit := &ConservationCircuit{
		InAmounts:  make([]frontend.Variable, len(inAmounts)),
		OutAmounts: make([]frontend.Variable, len(outAmounts)),
	}
	witness := &ConservationCircuit{
		InAmounts:  make([]frontend.Variable, len(inAmounts)),
		OutAmounts: make([]frontend.Variable, len(outAmounts)),
	}
	for i, v := range inAmounts {
		witness.InAmounts[i] = v
	}
	for i, v := range outAmounts {
		witness.OutAmounts[i] = v
	}
	return test.IsSolved(circuit, witness, ecc.BN254.ScalarField())
}
