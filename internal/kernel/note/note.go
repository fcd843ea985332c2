// Package note implements the note module (C6): read-only introspection
// of the note currently being consumed, and construction of output notes
// during the body (spec.md section 4.6).
package note

import (
	"errors"

	"github.com/ccoin/kernel/internal/kernel/context"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/internal/kernel/memmap"
	"github.com/ccoin/kernel/pkg/types"
)

// Note module errors.
var (
	// ErrNoActiveNote reports that no input note is being processed.
	// Nothing in this package returns it: an Active always wraps a note,
	// and its getters, GetSender included, have no error result.
	ErrNoActiveNote = errors.New("note: no note is currently being processed")
	// ErrWrongContext restricts create_note to account context.
	ErrWrongContext = errors.New("note: operation not permitted from this context")
)

// Active is the read-only view of the note currently being consumed,
// exposed to note-context code.
type Active struct {
	note types.Note
}

// NewActive wraps a consumed note for introspection.
func NewActive(n types.Note) *Active {
	return &Active{note: n}
}

// GetAssets returns the note's declared assets.
func (a *Active) GetAssets() []types.Asset {
	return append([]types.Asset{}, a.note.Assets...)
}

// GetInputs returns the note's declared inputs.
func (a *Active) GetInputs() []types.Felt {
	return append([]types.Felt{}, a.note.Inputs...)
}

// GetSender reads metadata.sender_id.
func (a *Active) GetSender() types.AccountID {
	return a.note.Metadata.SenderID
}

// VaultInfo is the pair returned by get_vault_info.
type VaultInfo struct {
	AssetsHash types.Word
	NumAssets  int
}

// GetVaultInfo returns the note's assets_hash and asset count.
func (a *Active) GetVaultInfo() VaultInfo {
	return VaultInfo{AssetsHash: a.note.AssetsHash, NumAssets: len(a.note.Assets)}
}

// InputsInfo is the pair returned by get_inputs_info.
type InputsInfo struct {
	InputsHash types.Word
	NumInputs  int
}

// GetInputsInfo returns the note's inputs_hash and input count.
func (a *Active) GetInputsInfo() InputsInfo {
	return InputsInfo{InputsHash: a.note.InputsHash, NumInputs: len(a.note.Inputs)}
}

// Output is one note created during the body, finalized by the
// epilogue. The epilogue — not this module — is responsible for adding
// Asset into the output vault.
type Output struct {
	Asset     types.Asset
	Tag       types.Felt
	Recipient types.Word
	Sender    types.AccountID

	// NoteHash and Metadata are computed by CreateNote when the note is
	// created: Metadata packs the sender and tag, and NoteHash commits to
	// the recipient and the note's single asset.
	NoteHash types.Word
	Metadata types.Word
}

// Builder accumulates output notes created during the body and computes
// their commitment at epilogue time. It also mirrors every created note
// into the kernel's C1 memory map, so the output-note region reflects
// exactly what create_note produced rather than bypassing it.
type Builder struct {
	hasher  crypto.Hasher
	mem     *memmap.Map
	outputs []Output
}

// NewBuilder returns an empty output-note builder backed by mem, the
// same memory map the prologue populated.
func NewBuilder(h crypto.Hasher, mem *memmap.Map) *Builder {
	return &Builder{hasher: h, mem: mem}
}

// CreateNote allocates a fresh output-note slot: asset, tag, and
// recipient as supplied by account-context code. sender is recorded as
// passed; CreateNote does not check it against the executing account.
// Returns the new note's index ("ptr").
func (b *Builder) CreateNote(ctx *context.Context, sender types.AccountID, asset types.Asset, tag types.Felt, recipient types.Word) (int, error) {
	if ctx.Kind != context.Account {
		return 0, ErrWrongContext
	}
	out := Output{Asset: asset, Tag: tag, Recipient: recipient, Sender: sender}
	out.Metadata = types.NoteMetadata{SenderID: sender, Tag: tag}.Pack()
	out.NoteHash = crypto.NoteHash(b.hasher, recipient, crypto.CommitAssets(b.hasher, []types.Asset{asset}))
	idx := len(b.outputs)
	b.outputs = append(b.outputs, out)
	if b.mem != nil {
		b.mem.AppendOutputNote(memmap.OutputNote{
			Asset:     out.Asset,
			Tag:       out.Tag,
			Recipient: out.Recipient,
			Sender:    out.Sender,
			NoteHash:  out.NoteHash,
			Metadata:  out.Metadata,
		})
	}
	return idx, nil
}

// Outputs returns every note created so far, in creation order.
func (b *Builder) Outputs() []Output {
	return append([]Output{}, b.outputs...)
}

// ComputeOutputNotesCommitment sequentially hashes (note_hash, metadata)
// over every created note, in creation order.
func (b *Builder) ComputeOutputNotesCommitment() types.Word {
	acc := types.ZeroWord
	for _, o := range b.outputs {
		acc = b.hasher.Hash(acc, o.NoteHash, o.Metadata)
	}
	return acc
}

// NullifierCommitment sequentially hashes (nullifier, ZERO) pairs over
// the consumed input notes, in consumption order — the resolved
// convention of spec.md section 4.6 (not (nullifier, script_root), see
// the design notes on the corresponding open question).
func NullifierCommitment(h crypto.Hasher, nullifiers []types.Word) types.Word {
	acc := types.ZeroWord
	for _, n := range nullifiers {
		acc = h.Hash(acc, n, types.ZeroWord)
	}
	return acc
}

// InputNotesHash is defined identically to NullifierCommitment: both are
// the sequential hash of (nullifier, ZERO) over the same input-note
// list, so get_input_notes_hash (C8) and the prologue's running
// nullifier_commitment always agree (the resolution of spec.md section
// 9's corresponding open question).
func InputNotesHash(h crypto.Hasher, nullifiers []types.Word) types.Word {
	return NullifierCommitment(h, nullifiers)
}
