package types

import "testing"

func TestNoteMetadataPackRoundTrip(t *testing.T) {
	m := NoteMetadata{SenderID: NewAccountID(FeltFromUint64(0b11)), Tag: FeltFromUint64(5)}
	got := UnpackNoteMetadata(m.Pack())
	if !got.SenderID.Equal(m.SenderID) || !got.Tag.Equal(m.Tag) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, m)
	}
}

func TestNoteValidateRejectsTooManyInputs(t *testing.T) {
	n := Note{Inputs: make([]Felt, MaxInputsPerNote+1)}
	if err := n.Validate(); err != ErrTooManyNoteInputs {
		t.Fatalf("got %v, want ErrTooManyNoteInputs", err)
	}
}

func TestNoteValidateRejectsTooManyAssets(t *testing.T) {
	n := Note{Assets: make([]Asset, MaxAssetsPerNote+1)}
	if err := n.Validate(); err != ErrTooManyNoteAssets {
		t.Fatalf("got %v, want ErrTooManyNoteAssets", err)
	}
}

func TestNoteValidateAcceptsBoundaryCounts(t *testing.T) {
	n := Note{
		Inputs: make([]Felt, MaxInputsPerNote),
		Assets: make([]Asset, MaxAssetsPerNote),
	}
	if err := n.Validate(); err != nil {
		t.Fatalf("got %v, want nil at the exact bound", err)
	}
}
