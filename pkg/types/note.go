package types

import "errors"

// Note errors.
var (
	ErrTooManyNoteInputs = errors.New("types: note input count exceeds MaxInputsPerNote")
	ErrTooManyNoteAssets = errors.New("types: note asset count exceeds MaxAssetsPerNote")
)

// NoteMetadata packs a note's sender and routing tag into a Word. The
// third and fourth elements are reserved for future protocol use and are
// always zero in this implementation.
type NoteMetadata struct {
	SenderID AccountID
	Tag      Felt
}

// Pack serializes the metadata into its Word encoding.
func (m NoteMetadata) Pack() Word {
	return NewWord(m.SenderID.Felt, m.Tag, Zero, Zero)
}

// UnpackNoteMetadata decodes a Word into a NoteMetadata.
func UnpackNoteMetadata(w Word) NoteMetadata {
	return NoteMetadata{SenderID: AccountID{Felt: w[0]}, Tag: w[1]}
}

// Note is the private representation of a note: everything a note's
// creator commits to, before any derived commitment (recipient, note
// hash, nullifier) is computed over it.
type Note struct {
	SerialNumber Word
	ScriptRoot   Word
	Inputs       []Felt
	Assets       []Asset
	Metadata     NoteMetadata

	// InputsHash and AssetsHash are commitments to Inputs/Assets
	// respectively; they are supplied with each input note, and the
	// prologue recomputes them and checks them. Output notes are not
	// represented as Note values.
	InputsHash Word
	AssetsHash Word
}

// Validate enforces the note's count bounds.
func (n *Note) Validate() error {
	if len(n.Inputs) > MaxInputsPerNote {
		return ErrTooManyNoteInputs
	}
	if len(n.Assets) > MaxAssetsPerNote {
		return ErrTooManyNoteAssets
	}
	return nil
}

// InputNoteArgs are the per-consumption arguments a transaction script
// supplies when consuming a note (distinct from the note's own Inputs,
// which are fixed at note-creation time).
type InputNoteArgs struct {
	Args Word
}
