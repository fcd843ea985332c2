// Package account implements the account module (C4): the read/write
// surface over the executing account's nonce, code root, storage slots,
// and vault, each operation gated by the caller-context constraints of
// spec.md section 4.4.
package account

import (
	"errors"

	"github.com/ccoin/kernel/internal/kernel/context"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/internal/kernel/events"
	"github.com/ccoin/kernel/internal/kernel/vault"
	"github.com/ccoin/kernel/pkg/types"
)

// Account module errors.
var (
	// ErrWrongContext is returned when an operation is invoked from a
	// context not permitted by spec.md's caller-context table.
	ErrWrongContext = errors.New("account: operation not permitted from this context")
	// ErrNonceOverflow guards the nonce increment's declared bound.
	ErrNonceOverflow = errors.New("account: nonce increment exceeds the protocol limit")
	// ErrFaucetOnly is returned when a faucet-only operation targets a
	// non-faucet account.
	ErrFaucetOnly = errors.New("account: operation requires a faucet account")
	// ErrFaucetReservedSlot is returned when set_item targets a faucet's
	// reserved issuance-accounting slot directly; only mint/burn may
	// touch it.
	ErrFaucetReservedSlot = errors.New("account: cannot set_item the faucet's reserved issuance slot directly")
)

const (
	AddAssetEvent    = types.AccountVaultAddAssetEvent
	RemoveAssetEvent = types.AccountVaultRemoveAssetEvent
)

// Module is the kernel's working view of the executing account: its
// durable fields (types.Account) plus a live vault instance mirroring
// AccountData.Account.VaultRoot.
type Module struct {
	hasher crypto.Hasher
	sink   events.Sink

	data  types.Account
	vault *vault.Vault
}

// New constructs a Module over acct's declared fields, with a vault built
// by adding each of assets in order (vault.FromRoot); acct.VaultRoot is
// not checked against the resulting vault root.
func New(h crypto.Hasher, sink events.Sink, acct types.Account, assets []types.Asset) (*Module, error) {
	if sink == nil {
		sink = events.Noop{}
	}
	v, err := vault.FromRoot(h, assets)
	if err != nil {
		return nil, err
	}
	return &Module{hasher: h, sink: sink, data: acct, vault: v}, nil
}

// NewWithVault constructs a Module over an already-built vault (used by
// the prologue, which merges consumed notes' assets into the vault
// before the account module is ever exposed to the body).
func NewWithVault(h crypto.Hasher, sink events.Sink, acct types.Account, v *vault.Vault) *Module {
	if sink == nil {
		sink = events.Noop{}
	}
	return &Module{hasher: h, sink: sink, data: acct, vault: v}
}

// Snapshot returns the account's current durable state, with VaultRoot
// refreshed from the live vault.
func (m *Module) Snapshot() types.Account {
	out := m.data
	out.VaultRoot = m.vault.Root()
	return out
}

// GetID is readable from any context.
func (m *Module) GetID() types.AccountID { return m.data.ID }

// GetNonce is readable from any context.
func (m *Module) GetNonce() types.Felt { return m.data.Nonce }

// GetCurrentHash is readable from any context; it folds the live vault
// root in, since the vault may have mutated since the account was last
// hashed into memory.
func (m *Module) GetCurrentHash() types.Word {
	acct := m.Snapshot()
	return crypto.HashAccount(m.hasher, acct)
}

// GetVaultCommitment is readable from any context.
func (m *Module) GetVaultCommitment() types.Word { return m.vault.Root() }

// Vault returns the account's live vault instance. Exposed for the
// epilogue, which must build the output vault starting from the same
// vault the body mutated, not a copy of its root commitment (the
// reference SMT has no standalone "open by root").
func (m *Module) Vault() *vault.Vault { return m.vault }

// GetItem reads storage slot index. Readable from any context.
func (m *Module) GetItem(index int) (types.Word, error) {
	return m.data.GetItem(index)
}

// SetItem writes storage slot index. Only the account's own code may
// call this; a faucet account may never write its reserved issuance
// slot directly (mint/burn are the only paths to it).
func (m *Module) SetItem(ctx *context.Context, index int, value types.Word) error {
	if err := m.requireAccountOrigin(ctx); err != nil {
		return err
	}
	if m.data.ID.IsFaucet() && index == types.FaucetStorageDataSlot {
		return ErrFaucetReservedSlot
	}
	return m.data.SetItem(index, value)
}

// IncrNonce increases the nonce by value, bounded by NonceIncrementLimit.
// Account context only.
func (m *Module) IncrNonce(ctx *context.Context, value uint64) error {
	if err := m.requireAccountOrigin(ctx); err != nil {
		return err
	}
	if value >= types.NonceIncrementLimit {
		return ErrNonceOverflow
	}
	cur, _ := m.data.Nonce.Uint64()
	m.data.Nonce = types.FeltFromUint64(cur + value)
	return nil
}

// SetCode replaces the account's code root. Account context only. The new
// root takes effect at once in the live account data, and so in later
// origin checks and in the final account hash; it is not held back for
// the epilogue, and neither the account's faucet status nor any
// code-update policy is checked.
func (m *Module) SetCode(ctx *context.Context, newCodeRoot types.Word) error {
	if err := m.requireAccountOrigin(ctx); err != nil {
		return err
	}
	m.data.CodeRoot = newCodeRoot
	return nil
}

// AddAsset merges asset into the vault and emits an advisory event.
// Account context only.
func (m *Module) AddAsset(ctx *context.Context, asset types.Asset) error {
	if err := m.requireAccountOrigin(ctx); err != nil {
		return err
	}
	if err := m.vault.Add(asset); err != nil {
		return err
	}
	m.sink.Emit(AddAssetEvent, asset.Word)
	return nil
}

// RemoveAsset subtracts asset from the vault and emits an advisory
// event. Account context only.
func (m *Module) RemoveAsset(ctx *context.Context, asset types.Asset) error {
	if err := m.requireAccountOrigin(ctx); err != nil {
		return err
	}
	if err := m.vault.Remove(asset); err != nil {
		return err
	}
	m.sink.Emit(RemoveAssetEvent, asset.Word)
	return nil
}

// GetBalance is readable from any context. faucetID must identify a
// fungible faucet (spec.md section 4.4).
func (m *Module) GetBalance(faucetID types.AccountID) (uint64, error) {
	return m.vault.GetBalance(faucetID)
}

// HasNonFungibleAsset is readable from any context. asset must be
// non-fungible (spec.md section 4.4).
func (m *Module) HasNonFungibleAsset(asset types.Asset) (bool, error) {
	return m.vault.HasNonFungible(asset)
}

// GetTotalIssuance reads the faucet issuance accounting slot. Faucet
// accounts only; mirrors the reserved-slot convention of
// types.FaucetStorageDataSlot.
func (m *Module) GetTotalIssuance() (types.Word, error) {
	if !m.data.ID.IsFaucet() {
		return types.Word{}, ErrFaucetOnly
	}
	return m.data.GetItem(types.FaucetStorageDataSlot)
}

// SetTotalIssuance writes the faucet issuance accounting slot. Account
// context only, faucet accounts only.
func (m *Module) SetTotalIssuance(ctx *context.Context, value types.Word) error {
	if !m.data.ID.IsFaucet() {
		return ErrFaucetOnly
	}
	if err := m.requireAccountOrigin(ctx); err != nil {
		return err
	}
	return m.data.SetItem(types.FaucetStorageDataSlot, value)
}

func (m *Module) requireAccountOrigin(ctx *context.Context) error {
	if ctx.Kind != context.Account {
		return ErrWrongContext
	}
	return context.AuthenticateAccountOrigin(ctx, m.data)
}
