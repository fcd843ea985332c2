// Package context implements the kernel's four-context execution model
// and the authenticated kernel-call boundary that protects account
// mutation (spec.md section 4.9). Each context owns its own memory
// window; crossing into a new context is a synchronous call/return with
// no shared mutable state except what is explicitly passed.
package context

import (
	"errors"

	"github.com/ccoin/kernel/internal/kernel/memmap"
	"github.com/ccoin/kernel/pkg/types"
)

// Kind discriminates the four logical execution contexts.
type Kind uint8

const (
	// Root is the kernel/root context: it owns all memory and is the
	// only context entered by the prologue and epilogue.
	Root Kind = iota
	// Account is entered when dispatching into the executing account's
	// own code (its wallet/auth procedures).
	Account
	// Note is entered when dispatching into a note script, selected
	// dynamically by the note's script root.
	Note
	// TxScript is entered when running the transaction script.
	TxScript
)

// ErrUnauthorizedCaller is returned by AuthenticateAccountOrigin when the
// immediate caller is not the executing account's own code — the sole
// capability check protecting the vault, storage, nonce, code root, and
// faucet issuance.
var ErrUnauthorizedCaller = errors.New("context: caller is not authenticated as the account's own code")

// Context is one entry on the context stack: a kind tag, the memory
// window visible while executing in it, and the identity of whoever
// invoked it (CALLER).
type Context struct {
	Kind   Kind
	Memory *memmap.Map
	Caller types.Word
}

// NewRoot returns the root/kernel context over mem. It has no caller:
// nothing authenticates into the root context, the root context is the
// trust anchor.
func NewRoot(mem *memmap.Map) *Context {
	return &Context{Kind: Root, Memory: mem, Caller: types.ZeroWord}
}

// Enter constructs a child context of the given kind, recording the
// current context's identity as the child's CALLER. Per spec.md's
// cross-context table, entering account or note context gives the
// callee a fresh memory window; here that window is still backed by the
// same kernel memmap.Map, since this is a single-process reference
// implementation rather than a real isolated VM page — the isolation
// that matters, "the callee cannot see addresses the caller didn't
// intend to expose," is enforced by every component only ever touching
// memmap.Map through its own narrow accessor methods, never raw fields.
func (c *Context) Enter(kind Kind, caller types.Word) *Context {
	return &Context{Kind: kind, Memory: c.Memory, Caller: caller}
}

// AuthenticateAccountOrigin asserts that ctx's caller is the given
// account's own code root — the only origin permitted to mutate that
// account's vault, storage, nonce, code, or (for a faucet) issuance.
func AuthenticateAccountOrigin(ctx *Context, account types.Account) error {
	if !ctx.Caller.Equal(account.CodeRoot) {
		return ErrUnauthorizedCaller
	}
	return nil
}
