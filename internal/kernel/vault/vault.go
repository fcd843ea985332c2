// Package vault implements the asset vault module (C5): add/remove/query
// over the sparse-Merkle-tree-backed account vault, with fungible-merge
// and non-fungible-uniqueness semantics (spec.md section 4.5).
package vault

import (
	"errors"

	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/pkg/types"
)

// Vault errors.
var (
	ErrFungibleOverflow      = errors.New("vault: fungible amount sum exceeds the protocol limit")
	ErrNonFungibleDuplicate  = errors.New("vault: non-fungible asset already present (double mint)")
	ErrNonFungibleMissing    = errors.New("vault: non-fungible asset not present")
	ErrFungibleUnderflow     = errors.New("vault: fungible amount to remove exceeds the held balance")
	ErrFungibleKeyMissing    = errors.New("vault: no balance recorded for this faucet id")
	// ErrNotFungibleFaucet is returned by GetBalance when faucetID does
	// not identify a fungible faucet (spec.md section 4.4's stated
	// precondition on get_balance).
	ErrNotFungibleFaucet = errors.New("vault: faucet id is not a fungible faucet")
	// ErrAssetIsFungible is returned by HasNonFungible when asset is
	// fungible (spec.md section 4.4's stated precondition on
	// has_non_fungible_asset).
	ErrAssetIsFungible = errors.New("vault: asset is not non-fungible")
)

// Vault wraps an SMT keyed by asset (spec.md section 4.5): faucet_id for
// fungible assets, the asset word itself for non-fungible assets.
type Vault struct {
	smt crypto.SMT
}

// New returns an empty vault backed by h.
func New(h crypto.Hasher) *Vault {
	return &Vault{smt: crypto.NewSMT(h)}
}

// FromRoot builds a Vault by adding each of entries in order via Add,
// returning the first Add error. The reference SMT cannot open an
// existing root without its entries, so the vault is rebuilt from them;
// no expected root is taken or checked. account.New uses it.
func FromRoot(h crypto.Hasher, entries []types.Asset) (*Vault, error) {
	v := New(h)
	for _, a := range entries {
		if err := v.Add(a); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Root returns the vault's current SMT root.
func (v *Vault) Root() types.Word {
	return v.smt.Root()
}

// Add merges a into the vault: fungible amounts sum (fatal on overflow
// at or above the 2^63 limit), non-fungible assets must not already be
// present (fatal on double-mint).
func (v *Vault) Add(a types.Asset) error {
	key := a.VaultKey()
	existing := v.smt.Get(key)

	if a.IsFungible() {
		amount, _ := a.Amount()
		var sum uint64
		if !existing.IsZero() {
			cur, _ := types.Asset{Word: existing}.Amount()
			sum = cur + amount
			if sum < cur || sum >= types.FungibleAmountLimit {
				return ErrFungibleOverflow
			}
		} else {
			sum = amount
			if sum >= types.FungibleAmountLimit {
				return ErrFungibleOverflow
			}
		}
		merged := a.WithAmount(sum)
		v.smt.Insert(key, merged.Word)
		return nil
	}

	if !existing.IsZero() {
		return ErrNonFungibleDuplicate
	}
	v.smt.Insert(key, a.Word)
	return nil
}

// Remove subtracts a from the vault: fungible removal requires a
// sufficient existing balance (fatal on underflow or a missing key),
// non-fungible removal requires the asset to be present (fatal
// otherwise).
func (v *Vault) Remove(a types.Asset) error {
	key := a.VaultKey()
	existing := v.smt.Get(key)

	if a.IsFungible() {
		amount, _ := a.Amount()
		if existing.IsZero() {
			return ErrFungibleKeyMissing
		}
		cur, _ := types.Asset{Word: existing}.Amount()
		if cur < amount {
			return ErrFungibleUnderflow
		}
		remaining := cur - amount
		if remaining == 0 {
			v.smt.Insert(key, types.ZeroWord)
		} else {
			v.smt.Insert(key, a.WithAmount(remaining).Word)
		}
		return nil
	}

	if existing.IsZero() {
		return ErrNonFungibleMissing
	}
	v.smt.Insert(key, types.ZeroWord)
	return nil
}

// GetBalance returns the fungible balance held for faucetID, 0 if absent.
// faucetID must identify a fungible faucet.
func (v *Vault) GetBalance(faucetID types.AccountID) (uint64, error) {
	if !faucetID.IsFungibleFaucet() {
		return 0, ErrNotFungibleFaucet
	}
	key := types.NewWord(faucetID.Felt, types.Zero, types.Zero, types.Zero)
	existing := v.smt.Get(key)
	if existing.IsZero() {
		return 0, nil
	}
	amount, _ := types.Asset{Word: existing}.Amount()
	return amount, nil
}

// HasNonFungible reports whether a is present in the vault. a must be
// non-fungible.
func (v *Vault) HasNonFungible(a types.Asset) (bool, error) {
	if a.IsFungible() {
		return false, ErrAssetIsFungible
	}
	return !v.smt.Get(a.VaultKey()).IsZero(), nil
}

// Clone returns an independent copy of v: mutating the copy never
// affects v, and vice versa. Used by the epilogue to build the output
// vault from the account's post-body vault without mutating the live
// vault handed back to the caller.
func (v *Vault) Clone() *Vault {
	return &Vault{smt: v.smt.Clone()}
}
