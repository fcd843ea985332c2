package types

import "errors"

// Asset errors.
var (
	ErrAmountOverflow        = errors.New("types: fungible amount exceeds the protocol limit")
	ErrAssetFaucetMismatch   = errors.New("types: asset faucet id does not match expected faucet kind")
	ErrNotFungibleAsset      = errors.New("types: asset is not fungible")
	ErrNotNonFungibleAsset   = errors.New("types: asset is not non-fungible")
)

// Asset is a single Word carrying either a fungible balance or a
// non-fungible token identity. Element 0 always holds the issuing
// faucet's AccountID (its type bits disambiguate fungible/non-fungible);
// for fungible assets element 3 holds the amount and elements 1-2 are
// zero, for non-fungible assets elements 1-3 hold a hash unique to the
// minted item.
type Asset struct {
	Word Word
}

// FaucetID returns the issuing faucet's account id.
func (a Asset) FaucetID() AccountID {
	return AccountID{Felt: a.Word[0]}
}

// IsFungible reports whether a was minted by a fungible faucet.
func (a Asset) IsFungible() bool {
	return a.FaucetID().IsFungibleFaucet()
}

// Amount returns the fungible amount carried by a. It is only meaningful
// when IsFungible is true.
func (a Asset) Amount() (uint64, error) {
	if !a.IsFungible() {
		return 0, ErrNotFungibleAsset
	}
	v, _ := a.Word[3].Uint64()
	return v, nil
}

// NewFungibleAsset builds a fungible Asset for the given faucet and
// amount, rejecting amounts at or above the protocol's fungible limit
// and faucet ids that are not fungible faucets.
func NewFungibleAsset(faucetID AccountID, amount uint64) (Asset, error) {
	if !faucetID.IsFungibleFaucet() {
		return Asset{}, ErrAssetFaucetMismatch
	}
	if amount >= FungibleAmountLimit {
		return Asset{}, ErrAmountOverflow
	}
	return Asset{Word: NewWord(faucetID.Felt, Zero, Zero, FeltFromUint64(amount))}, nil
}

// NewNonFungibleAsset builds a non-fungible Asset given its issuing
// faucet and a precomputed digest (hash(faucet_id || data_hash),
// computed by the crypto façade since Asset derivation requires a
// hasher this package does not own).
func NewNonFungibleAsset(faucetID AccountID, digest Word) (Asset, error) {
	if !faucetID.IsNonFungibleFaucet() {
		return Asset{}, ErrAssetFaucetMismatch
	}
	word := digest
	word[0] = faucetID.Felt
	return Asset{Word: word}, nil
}

// VaultKey returns the key under which this asset is stored in an asset
// vault's sparse Merkle tree: the faucet id for fungible assets (so
// same-faucet fungible assets merge), the asset word itself for
// non-fungible assets (so every minted item gets a distinct key).
func (a Asset) VaultKey() Word {
	if a.IsFungible() {
		return NewWord(a.FaucetID().Felt, Zero, Zero, Zero)
	}
	return a.Word
}

// WithAmount returns a copy of a fungible asset with its amount replaced.
func (a Asset) WithAmount(amount uint64) Asset {
	w := a.Word
	w[3] = FeltFromUint64(amount)
	return Asset{Word: w}
}
