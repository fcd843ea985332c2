package crypto

import "github.com/ccoin/kernel/pkg/types"

// Recipient computes recipient = H(H(H(serialNumber ‖ 0) ‖ scriptRoot) ‖ inputsHash),
// per spec.md section 3.
func Recipient(h Hasher, serialNumber, scriptRoot, inputsHash types.Word) types.Word {
	step1 := h.Hash(serialNumber, types.ZeroWord)
	step2 := h.Hash(step1, scriptRoot)
	return h.Hash(step2, inputsHash)
}

// NoteHash computes note_hash = H(recipient ‖ assets_hash).
func NoteHash(h Hasher, recipient, assetsHash types.Word) types.Word {
	return h.Hash(recipient, assetsHash)
}

// ComputeNoteHash derives note_hash directly from a note's core fields.
func ComputeNoteHash(h Hasher, serialNumber, scriptRoot, inputsHash, assetsHash types.Word) types.Word {
	return NoteHash(h, Recipient(h, serialNumber, scriptRoot, inputsHash), assetsHash)
}

// Nullifier computes nullifier = H(serial_number ‖ script_root ‖ inputs_hash ‖ assets_hash).
func Nullifier(h Hasher, serialNumber, scriptRoot, inputsHash, assetsHash types.Word) types.Word {
	step1 := h.Hash(serialNumber, scriptRoot)
	step2 := h.Hash(step1, inputsHash)
	return h.Hash(step2, assetsHash)
}

// AuthDigest computes auth_digest = H(note_hash ‖ metadata), used to
// authenticate a note's presence in chain state.
func AuthDigest(h Hasher, noteHash, metadata types.Word) types.Word {
	return h.Hash(noteHash, metadata)
}

// CommitInputs folds up to MaxInputsPerNote field elements into the
// note's inputs_hash (a sequential hash, per the same convention as
// CommitStorage).
func CommitInputs(h Hasher, inputs []types.Felt) types.Word {
	acc := types.ZeroWord
	for _, f := range inputs {
		acc = h.Hash(acc, types.NewWord(f, types.Zero, types.Zero, types.Zero))
	}
	return acc
}

// CommitAssets folds a note's assets into its assets_hash: the root of a
// fresh SMT keyed the same way the account vault is keyed, so a note's
// asset set is committed order-independently.
func CommitAssets(h Hasher, assets []types.Asset) types.Word {
	smt := NewSMT(h)
	for _, a := range assets {
		smt.Insert(a.VaultKey(), a.Word)
	}
	return smt.Root()
}
