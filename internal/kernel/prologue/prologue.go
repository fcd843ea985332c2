// Package prologue implements the kernel prologue (C10): the six
// sequential steps that unhash and authenticate every input before the
// transaction body runs (spec.md section 4.10). It is the one place in
// the kernel permitted to read straight from the advice channel; every
// later component reads only memory the prologue (or the body) already
// wrote, per invariant 1.
package prologue

import (
	"errors"

	"github.com/ccoin/kernel/internal/kernel/account"
	"github.com/ccoin/kernel/internal/kernel/advice"
	"github.com/ccoin/kernel/internal/kernel/context"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/internal/kernel/events"
	"github.com/ccoin/kernel/internal/kernel/memmap"
	"github.com/ccoin/kernel/internal/kernel/note"
	"github.com/ccoin/kernel/internal/kernel/vault"
	"github.com/ccoin/kernel/pkg/types"
)

// Prologue errors, each corresponding to one of spec.md section 7's
// fatal "input inconsistency" cases.
var (
	ErrBlockHashMismatch        = errors.New("prologue: recomputed block hash does not match the public input")
	ErrChainRootMismatch        = errors.New("prologue: mmr root does not match the block header's chain root")
	ErrAccountHashMismatch      = errors.New("prologue: recomputed account hash does not match the public input")
	ErrVaultCommitmentMismatch  = errors.New("prologue: supplied vault assets do not commit to the declared vault root")
	ErrNewAccountNotEmpty       = errors.New("prologue: new account must have an empty vault")
	ErrNewAccountNonzeroNonce   = errors.New("prologue: new account must have nonce zero")
	ErrInvalidAccountIDSeed     = errors.New("prologue: new account id does not satisfy the proof-of-work seed predicate")
	ErrExistingAccountZeroNonce = errors.New("prologue: existing account must have a nonzero nonce")
	ErrTooManyNotes             = errors.New("prologue: consumed note count exceeds MaxNumConsumedNotes")
	ErrInputsHashMismatch       = errors.New("prologue: recomputed note inputs_hash does not match the supplied value")
	ErrAssetsHashMismatch       = errors.New("prologue: recomputed note assets_hash does not match the supplied value")
	ErrNoteLeafMismatch         = errors.New("prologue: recomputed mmr leaf does not match the opened chain leaf")
	ErrNoteMerkleMismatch       = errors.New("prologue: note hash does not verify under the block's note root")
	ErrNullifierCommitmentMismatch = errors.New("prologue: recomputed nullifier commitment does not match the public input")
	ErrTypesCommitmentMismatch  = errors.New("prologue: declared slot types do not commit to the account's TYPES_COM storage entry")
)

// Deps bundles the host-provided collaborators the prologue needs beyond
// the advice channel itself.
type Deps struct {
	Hasher   crypto.Hasher
	Merkle   crypto.MerkleVerifier
	ChainMMR crypto.MMR // the rollup's chain state as of the previous block; mutated in place
	Sink     events.Sink
}

// State is everything the prologue hands off to the body and epilogue:
// the populated memory map, the account module (with its vault already
// holding the input notes' assets), and the output-note builder the
// body will append to.
type State struct {
	Mem         *memmap.Map
	Account     *account.Module
	OutputNotes *note.Builder
	RootCtx     *context.Context
	Nullifiers  []types.Word
}

// NoteInput is the host-supplied pre-image of one consumed note, plus
// the chain-authentication data the prologue needs to verify it was
// really created on-chain.
type NoteInput struct {
	SerialNumber types.Word
	ScriptRoot   types.Word
	Inputs       []types.Felt
	Assets       []types.Asset
	Metadata     types.NoteMetadata
	Args         types.Word

	// InputsHash/AssetsHash are the commitments declared at note creation
	// time; the prologue recomputes them from Inputs/Assets above and
	// asserts equality (fatal on mismatch) before trusting either.
	InputsHash types.Word
	AssetsHash types.Word

	LeafPos   uint64 // block number the note was created in
	NoteIndex uint64 // index of the note within that block's note tree
	NoteRoot  types.Word // that block's note-tree root (header.NoteRoot)
	NotePath  []types.Word // merkle path of note_hash under NoteRoot at NoteIndex
}

// AccountInput is the host-supplied pre-image of the executing account.
type AccountInput struct {
	ID          types.AccountID
	Nonce       types.Felt
	VaultRoot   types.Word
	CodeRoot    types.Word
	Storage     [types.NumStorageSlots]types.Word
	SlotTypes   types.SlotTypeTable
	VaultAssets []types.Asset // the vault's full pre-image, must commit to VaultRoot
}

// Run executes the six prologue steps against pub (the public stack
// inputs) and the private inputs supplied directly (header, account,
// notes, tx script root) — a concrete stand-in for what a real VM would
// stream out of the advice channel one Word at a time. adv is accepted
// but not read, and it is not stored in the returned State.
func Run(pub types.PublicInputs, header types.BlockHeader, acctIn AccountInput, notes []NoteInput, txScriptRoot types.Word, adv *advice.Provider, deps Deps) (*State, error) {
	mem := memmap.New()
	h := deps.Hasher

	// (a) process global inputs.
	mem.SetGlobalInputs(memmap.GlobalInputs{
		BlockHash:            pub.BlockHash,
		AccountID:            pub.AccountID,
		InitialAccountHash:   pub.InitialAccountHash,
		NullifierCommitment:  pub.NullifierCommitment,
	})

	// (b) process block data.
	fields := header.StreamFields()
	subHash := h.Hash(fields[:]...)
	blockHash := h.Hash(subHash, header.NoteRoot)
	if !blockHash.Equal(pub.BlockHash) {
		return nil, ErrBlockHashMismatch
	}
	mem.SetBlockData(memmap.BlockData{Header: header, SubHash: subHash, Written: true})

	// (c) process chain data: verify the chain commitment, then append
	// the current block so notes created in it are authenticatable.
	if !deps.ChainMMR.Root().Equal(header.ChainRoot) {
		return nil, ErrChainRootMismatch
	}
	deps.ChainMMR.Append(subHash)
	mem.SetChainMMR(deps.ChainMMR.Peaks(), deps.ChainMMR.NumLeaves())

	// (d) process account data.
	if err := acctIn.SlotTypes.Validate(acctIn.ID); err != nil {
		return nil, err
	}
	if !acctIn.Storage[types.SlotTypesCommitmentSlot].Equal(crypto.CommitSlotTypes(h, acctIn.SlotTypes)) {
		return nil, ErrTypesCommitmentMismatch
	}
	acct := types.Account{
		ID:          acctIn.ID,
		Nonce:       acctIn.Nonce,
		VaultRoot:   acctIn.VaultRoot,
		CodeRoot:    acctIn.CodeRoot,
		Storage:     acctIn.Storage,
		SlotTypes:   acctIn.SlotTypes,
	}
	workingVault := vault.New(h)
	for _, a := range acctIn.VaultAssets {
		if err := workingVault.Add(a); err != nil {
			return nil, err
		}
	}
	if !workingVault.Root().Equal(acctIn.VaultRoot) {
		return nil, ErrVaultCommitmentMismatch
	}
	accountHash := crypto.HashAccount(h, acct)

	isNew := types.IsNewAccount(pub.InitialAccountHash)
	if isNew {
		if !workingVault.Root().IsZero() {
			return nil, ErrNewAccountNotEmpty
		}
		nonce, _ := acct.Nonce.Uint64()
		if nonce != 0 {
			return nil, ErrNewAccountNonzeroNonce
		}
		if !acct.ID.ValidSeed() {
			return nil, ErrInvalidAccountIDSeed
		}
	} else {
		if !accountHash.Equal(pub.InitialAccountHash) {
			return nil, ErrAccountHashMismatch
		}
		nonce, _ := acct.Nonce.Uint64()
		if nonce == 0 {
			return nil, ErrExistingAccountZeroNonce
		}
	}

	newAcctCodeRoot := acct.CodeRoot

	// (e) process input notes.
	if len(notes) > types.MaxNumConsumedNotes {
		return nil, ErrTooManyNotes
	}
	var nullifiers []types.Word
	for _, in := range notes {
		inputsHash := crypto.CommitInputs(h, in.Inputs)
		if !inputsHash.Equal(in.InputsHash) {
			return nil, ErrInputsHashMismatch
		}
		assetsHash := crypto.CommitAssets(h, in.Assets)
		if !assetsHash.Equal(in.AssetsHash) {
			return nil, ErrAssetsHashMismatch
		}

		n := types.Note{
			SerialNumber: in.SerialNumber,
			ScriptRoot:   in.ScriptRoot,
			Inputs:       in.Inputs,
			Assets:       in.Assets,
			Metadata:     in.Metadata,
			InputsHash:   inputsHash,
			AssetsHash:   assetsHash,
		}
		if err := n.Validate(); err != nil {
			return nil, err
		}

		noteHash := crypto.ComputeNoteHash(h, in.SerialNumber, in.ScriptRoot, inputsHash, assetsHash)
		nullifier := crypto.Nullifier(h, in.SerialNumber, in.ScriptRoot, inputsHash, assetsHash)

		// Authenticate against the chain: open the note's creation block
		// at leaf_pos and verify that opening against the current MMR
		// root (the block really is part of this chain), then Merkle
		// -verify the note itself under that block's note root.
		opening, err := deps.ChainMMR.Open(in.LeafPos)
		if err != nil {
			return nil, err
		}
		if !crypto.VerifyMMROpening(h, opening, deps.ChainMMR.Root()) {
			return nil, ErrNoteLeafMismatch
		}
		if !deps.Merkle.Verify(noteHash, in.NotePath, in.NoteIndex, in.NoteRoot) {
			return nil, ErrNoteMerkleMismatch
		}

		for _, a := range in.Assets {
			if err := workingVault.Add(a); err != nil {
				return nil, err
			}
		}

		nullifiers = append(nullifiers, nullifier)

		mem.AppendInputNote(memmap.InputNote{
			Note:      n,
			Args:      in.Args,
			NoteHash:  noteHash,
			Nullifier: nullifier,
			LeafPos:   in.LeafPos,
			NoteIndex: in.NoteIndex,
		})
	}

	nullifierCommitment := note.NullifierCommitment(h, nullifiers)
	if !nullifierCommitment.Equal(pub.NullifierCommitment) {
		return nil, ErrNullifierCommitmentMismatch
	}

	mem.InputVaultRoot = workingVault.Root()

	// (f) process transaction script root.
	mem.SetTxScriptRoot(txScriptRoot)

	mem.SetAccountData(memmap.AccountData{
		Account:           acct,
		InitialHash:       pub.InitialAccountHash,
		IsNew:             isNew,
		NewCodeRoot:       newAcctCodeRoot,
		CodeUpdatePending: false,
	})

	acctModule := account.NewWithVault(h, deps.Sink, acct, workingVault)
	rootCtx := context.NewRoot(mem)

	return &State{
		Mem:         mem,
		Account:     acctModule,
		OutputNotes: note.NewBuilder(h, mem),
		RootCtx:     rootCtx,
		Nullifiers:  nullifiers,
	}, nil
}
