// Package memmap implements the kernel's memory-layout contract: a
// single flat region partitioned into labeled sub-regions (global
// inputs, block data, chain MMR, account data, input/output notes,
// vault scratch, transaction script root) with fixed bases and strides.
//
// This package is pure data plus bounds-checked getters/setters — no
// policy. Every other component references memory only through the
// named accessors here; violating a region's declared stride (e.g.
// reading an asset past a note's declared asset count) is the caller's
// bug to prevent, per spec.md section 4.1.
package memmap

import (
	"errors"

	"github.com/ccoin/kernel/pkg/types"
)

// Region base "addresses". These are symbolic (Go holds each region in
// its own field, not a literal byte array) but are exported so the
// layout documented in spec.md section 4.1 has a single normative home
// other components can cite.
const (
	BaseGlobalInputs  = 0
	BaseBlockData     = BaseGlobalInputs + 16
	BaseChainMMR      = BaseBlockData + 8
	BaseAccountData   = BaseChainMMR + MaxChainMMRWords
	BaseInputNotes    = BaseAccountData + accountDataWords
	inputNoteStride   = 64
	outputNoteStride  = 32
)

// MaxChainMMRWords bounds the chain-MMR region per spec.md section 4.1
// ("≥16 W, ≤63 W").
const MaxChainMMRWords = 63

const accountDataWords = 4 + types.NumStorageSlots + 1 + 1 + 32 // root view + storage + vault + code + slot-type table

var (
	// ErrNoteIndexOutOfRange is returned when a note index exceeds the
	// region's declared capacity.
	ErrNoteIndexOutOfRange = errors.New("memmap: note index out of range")
	// ErrNotWritten is returned by a getter when the invariant "every
	// read inside the body reads only addresses already written" would
	// be violated.
	ErrNotWritten = errors.New("memmap: region read before being written")
)

// GlobalInputs holds the four public inputs (spec.md section 6).
type GlobalInputs struct {
	BlockHash           types.Word
	AccountID           types.AccountID
	InitialAccountHash  types.Word
	NullifierCommitment types.Word
	written             bool
}

// BlockData holds the streamed block header plus the recomputed
// sub-hash.
type BlockData struct {
	Header   types.BlockHeader
	SubHash  types.Word
	Written  bool
}

// AccountData is the kernel's working copy of the executing account.
type AccountData struct {
	Account          types.Account
	InitialHash      types.Word
	IsNew            bool
	NewCodeRoot      types.Word // seeded by the prologue with the account's code root; the epilogue does not read it
	CodeUpdatePending bool
	Written          bool
}

// InputNote is one consumed note's kernel-visible state.
type InputNote struct {
	Note       types.Note
	Args       types.Word
	NoteHash   types.Word
	Nullifier  types.Word
	LeafPos    uint64
	NoteIndex  uint64
}

// OutputNote is one created note's kernel-visible state: the fields
// create_note knows at creation time (spec.md section 4.6), not a full
// types.Note (output notes have no serial number or script root of
// their own within this kernel).
type OutputNote struct {
	Asset     types.Asset
	Tag       types.Felt
	Recipient types.Word
	Sender    types.AccountID
	NoteHash  types.Word
	Metadata  types.Word
}

// Map is the kernel's flat memory region.
type Map struct {
	Global GlobalInputs
	Block  BlockData

	ChainMMRPeaks []types.Word
	ChainMMRSize  uint64

	Account AccountData

	InputNotes  []InputNote
	OutputNotes []OutputNote

	InputVaultRoot  types.Word
	OutputVaultRoot types.Word

	OutputNotesCommitment types.Word

	TxScriptRoot        types.Word
	txScriptRootWritten bool
}

// New returns an empty Map ready for the prologue to populate.
func New() *Map {
	return &Map{}
}

// SetGlobalInputs writes the four public inputs. Called exactly once,
// by the prologue's first step.
func (m *Map) SetGlobalInputs(g GlobalInputs) {
	g.written = true
	m.Global = g
}

// SetBlockData writes the recomputed block header/sub-hash.
func (m *Map) SetBlockData(b BlockData) {
	b.Written = true
	m.Block = b
}

// SetChainMMR writes the reconstructed MMR peak list.
func (m *Map) SetChainMMR(peaks []types.Word, size uint64) {
	m.ChainMMRPeaks = append([]types.Word{}, peaks...)
	m.ChainMMRSize = size
}

// SetAccountData writes the account's working copy.
func (m *Map) SetAccountData(a AccountData) {
	a.Written = true
	m.Account = a
}

// AppendInputNote appends one authenticated input note. Returns its
// index in the region.
func (m *Map) AppendInputNote(n InputNote) int {
	m.InputNotes = append(m.InputNotes, n)
	return len(m.InputNotes) - 1
}

// AppendOutputNote appends one created output note. Returns its index.
func (m *Map) AppendOutputNote(n OutputNote) int {
	m.OutputNotes = append(m.OutputNotes, n)
	return len(m.OutputNotes) - 1
}

// GetInputNote reads an input note by index.
func (m *Map) GetInputNote(index int) (*InputNote, error) {
	if index < 0 || index >= len(m.InputNotes) {
		return nil, ErrNoteIndexOutOfRange
	}
	return &m.InputNotes[index], nil
}

// GetOutputNote reads an output note by index.
func (m *Map) GetOutputNote(index int) (*OutputNote, error) {
	if index < 0 || index >= len(m.OutputNotes) {
		return nil, ErrNoteIndexOutOfRange
	}
	return &m.OutputNotes[index], nil
}

// SetTxScriptRoot writes the transaction script root, the prologue's
// final step.
func (m *Map) SetTxScriptRoot(root types.Word) {
	m.TxScriptRoot = root
	m.txScriptRootWritten = true
}

// RequireTxScriptRoot reads the transaction script root, failing if the
// prologue has not yet written it (invariant 1).
func (m *Map) RequireTxScriptRoot() (types.Word, error) {
	if !m.txScriptRootWritten {
		return types.Word{}, ErrNotWritten
	}
	return m.TxScriptRoot, nil
}
