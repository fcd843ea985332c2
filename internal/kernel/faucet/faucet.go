// Package faucet implements the faucet module (C7): mint/burn against a
// faucet account's reserved issuance-accounting slot (spec.md section
// 4.7). Generalizes the teacher's total-supply overflow-guard idiom
// (internal/economics/supply.go) to per-faucet fungible/non-fungible
// issuance.
package faucet

import (
	"errors"

	"github.com/ccoin/kernel/internal/kernel/account"
	"github.com/ccoin/kernel/internal/kernel/context"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/pkg/types"
)

// Faucet module errors.
var (
	ErrWrongContext       = errors.New("faucet: operation not permitted from this context")
	ErrFaucetIDMismatch   = errors.New("faucet: asset's faucet id does not match the executing account")
	ErrIssuanceOverflow   = errors.New("faucet: total issuance would exceed the protocol limit")
	ErrIssuanceUnderflow  = errors.New("faucet: burn amount exceeds total issuance")
	ErrNonFungibleMinted  = errors.New("faucet: non-fungible asset already minted (duplicate)")
	ErrNonFungibleUnknown = errors.New("faucet: non-fungible asset was not minted by this faucet")
)

// Module wraps an account.Module known to be a faucet account, adding
// mint/burn against its reserved issuance slot (fungible: a scalar
// counter; non-fungible: an SMT of minted items, both stored at
// types.FaucetStorageDataSlot).
type Module struct {
	hasher crypto.Hasher
	acct   *account.Module
	minted crypto.SMT // non-fungible faucets only
}

// New wraps acct, which must identify as a faucet account. minted is the
// reference SMT tracking which non-fungible items this faucet has
// issued; it is irrelevant for fungible faucets.
func New(h crypto.Hasher, acct *account.Module) *Module {
	return &Module{hasher: h, acct: acct, minted: crypto.NewSMT(h)}
}

// Mint issues asset. Callable only from the faucet's own account
// context (the same authenticated boundary account.Module.SetItem
// enforces), requiring asset.FaucetID() equal the executing account's
// id.
func (m *Module) Mint(ctx *context.Context, asset types.Asset) error {
	if ctx.Kind != context.Account {
		return ErrWrongContext
	}
	if !asset.FaucetID().Equal(m.acct.GetID()) {
		return ErrFaucetIDMismatch
	}

	if asset.IsFungible() {
		amount, _ := asset.Amount()
		cur, err := m.acct.GetTotalIssuance()
		if err != nil {
			return err
		}
		curAmount, _ := cur[3].Uint64()
		sum := curAmount + amount
		if sum < curAmount || sum >= types.FungibleAmountLimit {
			return ErrIssuanceOverflow
		}
		return m.setIssuance(ctx, types.NewWord(types.Zero, types.Zero, types.Zero, types.FeltFromUint64(sum)))
	}

	key := asset.VaultKey()
	if !m.minted.Get(key).IsZero() {
		return ErrNonFungibleMinted
	}
	m.minted.Insert(key, asset.Word)
	return m.setIssuance(ctx, m.minted.Root())
}

// Burn reverses a prior mint. Faucet's own account context only.
func (m *Module) Burn(ctx *context.Context, asset types.Asset) error {
	if ctx.Kind != context.Account {
		return ErrWrongContext
	}
	if !asset.FaucetID().Equal(m.acct.GetID()) {
		return ErrFaucetIDMismatch
	}

	if asset.IsFungible() {
		amount, _ := asset.Amount()
		cur, err := m.acct.GetTotalIssuance()
		if err != nil {
			return err
		}
		curAmount, _ := cur[3].Uint64()
		if curAmount < amount {
			return ErrIssuanceUnderflow
		}
		return m.setIssuance(ctx, types.NewWord(types.Zero, types.Zero, types.Zero, types.FeltFromUint64(curAmount-amount)))
	}

	key := asset.VaultKey()
	if m.minted.Get(key).IsZero() {
		return ErrNonFungibleUnknown
	}
	m.minted.Insert(key, types.ZeroWord)
	return m.setIssuance(ctx, m.minted.Root())
}

// GetTotalIssuance reads the fungible issuance counter. Fungible faucets
// only.
func (m *Module) GetTotalIssuance() (uint64, error) {
	if !m.acct.GetID().IsFungibleFaucet() {
		return 0, account.ErrFaucetOnly
	}
	w, err := m.acct.GetTotalIssuance()
	if err != nil {
		return 0, err
	}
	v, _ := w[3].Uint64()
	return v, nil
}

func (m *Module) setIssuance(ctx *context.Context, value types.Word) error {
	return m.acct.SetTotalIssuance(ctx, value)
}
