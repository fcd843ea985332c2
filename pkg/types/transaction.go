// Package types defines core transaction structures for the transaction
// kernel. A transaction consumes zero or more input notes against one
// account, runs a transaction script, and optionally creates output
// notes; its only observable effects are the public commitments below.
package types

// PublicInputs are the values pushed onto the stack at kernel entry,
// per spec.md section 6.
type PublicInputs struct {
	BlockHash            Word
	AccountID            AccountID
	InitialAccountHash   Word
	NullifierCommitment  Word
}

// Outputs are the values left on the stack at kernel exit, in the
// canonical order the epilogue publishes them.
type Outputs struct {
	TxScriptRoot           Word
	OutputNotesCommitment  Word
	FinalAccountHash       Word
}

// Stack renders the outputs in their canonical stack order
// [tx_script_root, output_notes_commitment, final_account_hash].
func (o Outputs) Stack() [3]Word {
	return [3]Word{o.TxScriptRoot, o.OutputNotesCommitment, o.FinalAccountHash}
}
