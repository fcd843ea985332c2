// Package txexec wires the kernel's components (C1-C11) into a single
// transaction-execution entry point: run the prologue, hand the caller
// the account/note/faucet/tx modules to drive the body, then run the
// epilogue. There is no script interpreter here — per spec.md's
// explicit non-goal of defining a proof system or VM, the "body" is
// whatever Go code a caller (a test, or a higher-level script runner)
// chooses to execute against the modules this package exposes.
package txexec

import (
	"github.com/ccoin/kernel/internal/kernel/account"
	"github.com/ccoin/kernel/internal/kernel/advice"
	"github.com/ccoin/kernel/internal/kernel/context"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/internal/kernel/epilogue"
	"github.com/ccoin/kernel/internal/kernel/events"
	"github.com/ccoin/kernel/internal/kernel/faucet"
	"github.com/ccoin/kernel/internal/kernel/note"
	"github.com/ccoin/kernel/internal/kernel/prologue"
	"github.com/ccoin/kernel/internal/kernel/txmod"
	"github.com/ccoin/kernel/pkg/types"
)

// Request bundles everything Begin needs: the public stack inputs,
// the private pre-images the prologue unhashes, and the host
// collaborators (hasher, Merkle verifier, chain MMR, advice, event
// sink).
type Request struct {
	PublicInputs types.PublicInputs
	BlockHeader  types.BlockHeader
	Account      prologue.AccountInput
	InputNotes   []prologue.NoteInput
	TxScriptRoot types.Word

	Hasher   crypto.Hasher
	Merkle   crypto.MerkleVerifier
	ChainMMR crypto.MMR
	Advice   *advice.Provider
	Sink     events.Sink
}

// Session is the live set of context-scoped modules available to a
// transaction body, plus the kernel state they share.
type Session struct {
	Prologue *prologue.State

	Account *account.Module
	Faucet  *faucet.Module
	Tx      *txmod.Module
	Notes   *note.Builder

	AccountCtx *context.Context
	NoteCtx    *context.Context
	ScriptCtx  *context.Context
}

// Begin runs the prologue and returns a Session ready for the body to
// drive. If the executing account is a faucet, Session.Faucet is
// populated; otherwise it is nil.
func Begin(req Request) (*Session, error) {
	st, err := prologue.Run(req.PublicInputs, req.BlockHeader, req.Account, req.InputNotes, req.TxScriptRoot, req.Advice, prologue.Deps{
		Hasher:   req.Hasher,
		Merkle:   req.Merkle,
		ChainMMR: req.ChainMMR,
		Sink:     req.Sink,
	})
	if err != nil {
		return nil, err
	}

	accountCodeRoot := st.Account.Snapshot().CodeRoot
	accountCtx := st.RootCtx.Enter(context.Account, accountCodeRoot)
	scriptCtx := st.RootCtx.Enter(context.TxScript, accountCodeRoot)

	sess := &Session{
		Prologue:   st,
		Account:    st.Account,
		Tx:         txmod.New(st.Mem),
		Notes:      st.OutputNotes,
		AccountCtx: accountCtx,
		ScriptCtx:  scriptCtx,
	}
	if st.Account.GetID().IsFaucet() {
		sess.Faucet = faucet.New(req.Hasher, st.Account)
	}
	return sess, nil
}

// EnterNote returns a note context plus the read-only view of the input
// note at index (its position in the consumption order req.InputNotes
// supplied to Begin).
func (s *Session) EnterNote(index int) (*context.Context, *note.Active, error) {
	in, err := s.Prologue.Mem.GetInputNote(index)
	if err != nil {
		return nil, nil, err
	}
	noteCtx := s.Prologue.RootCtx.Enter(context.Note, in.Note.ScriptRoot)
	return noteCtx, note.NewActive(in.Note), nil
}

// Finish runs the epilogue and returns the transaction's canonical
// public outputs.
func (s *Session) Finish(h crypto.Hasher, adv *advice.Provider) (types.Outputs, error) {
	return epilogue.Run(h, s.Prologue, adv)
}
