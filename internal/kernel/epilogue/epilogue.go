// Package epilogue implements the kernel epilogue (C11): the final
// sequence that commits a deferred code update, builds and checks the
// output vault against the input vault (asset conservation), computes
// the output-notes commitment, and leaves the canonical result stack
// (spec.md section 4.11).
package epilogue

import (
	"errors"

	"github.com/ccoin/kernel/internal/kernel/advice"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/internal/kernel/note"
	"github.com/ccoin/kernel/internal/kernel/prologue"
	"github.com/ccoin/kernel/pkg/types"
)

// Epilogue errors.
var (
	ErrNonceNotAdvanced  = errors.New("epilogue: account hash changed but the nonce did not strictly increase")
	ErrAssetConservation = errors.New("epilogue: input vault root does not match the rebuilt output vault root")
)

// Run executes the epilogue against the state the prologue produced and
// the body left behind (the account module's current data, and any
// notes appended to st.OutputNotes).
func Run(h crypto.Hasher, st *prologue.State, adv *advice.Provider) (types.Outputs, error) {
	// (a) account code update: any deferred code root written by
	// account.Module.SetCode during the body is already reflected in the
	// account's live data; nothing further to commit here.
	finalAccount := st.Account.Snapshot()

	// (b) compute final_account_hash and check the nonce-advance invariant.
	finalAccountHash := crypto.HashAccount(h, finalAccount)
	initialHash := st.Mem.Account.InitialHash
	if !finalAccountHash.Equal(initialHash) {
		initialNonce, _ := st.Mem.Account.Account.Nonce.Uint64()
		finalNonce, _ := finalAccount.Nonce.Uint64()
		if finalNonce <= initialNonce {
			return types.Outputs{}, ErrNonceNotAdvanced
		}
	}

	// (c) build the output vault: a scratch copy of the account's
	// post-body vault (which already holds the input notes' assets,
	// merged in by the prologue, plus whatever the body added or
	// removed) with every output note's declared asset folded in on top.
	// This must not touch st.Account's live vault — those assets left in
	// output notes, not in the account.
	outputVault := st.Account.Vault().Clone()
	for _, o := range st.OutputNotes.Outputs() {
		if err := outputVault.Add(o.Asset); err != nil {
			return types.Outputs{}, err
		}
	}
	st.Mem.OutputVaultRoot = outputVault.Root()

	// (d) compute output_notes_commitment and publish this transaction's
	// two advice-map side effects for a downstream prover: the final
	// account's pre-image keyed by its own hash, and the created notes'
	// pre-image keyed by their commitment.
	outputNotesCommitment := st.OutputNotes.ComputeOutputNotesCommitment()
	if adv != nil {
		storageRoot := crypto.CommitStorage(h, finalAccount.Storage)
		adv.Map.Set(finalAccountHash, finalAccountDataFelts(finalAccount, storageRoot))
		adv.Map.Set(outputNotesCommitment, outputNoteDataFelts(st.OutputNotes.Outputs()))
	}
	st.Mem.OutputNotesCommitment = outputNotesCommitment

	// (e) load tx_script_root.
	txScriptRoot, err := st.Mem.RequireTxScriptRoot()
	if err != nil {
		return types.Outputs{}, err
	}

	// (f) assert asset conservation.
	if !st.Mem.InputVaultRoot.Equal(st.Mem.OutputVaultRoot) {
		return types.Outputs{}, ErrAssetConservation
	}

	// (g) canonical result stack.
	return types.Outputs{
		TxScriptRoot:          txScriptRoot,
		OutputNotesCommitment: outputNotesCommitment,
		FinalAccountHash:      finalAccountHash,
	}, nil
}

// finalAccountDataFelts flattens the final account's hashed pre-image
// (id, nonce, vault root, storage root, code root — the same fields and
// order crypto.HashAccount absorbs) into the advice map's value under
// final_account_hash.
func finalAccountDataFelts(acct types.Account, storageRoot types.Word) []types.Felt {
	out := make([]types.Felt, 0, 2+3*types.WordSize)
	out = append(out, acct.ID.Felt, acct.Nonce)
	out = append(out, acct.VaultRoot[:]...)
	out = append(out, storageRoot[:]...)
	out = append(out, acct.CodeRoot[:]...)
	return out
}

// outputNoteDataFelts flattens every created note's (note_hash,
// metadata) pair, in creation order, into the advice map's value under
// output_notes_commitment.
func outputNoteDataFelts(outputs []note.Output) []types.Felt {
	out := make([]types.Felt, 0, len(outputs)*2*types.WordSize)
	for _, o := range outputs {
		out = append(out, o.NoteHash[:]...)
		out = append(out, o.Metadata[:]...)
	}
	return out
}
