package types

import (
	"errors"
	"math/big"
)

// Account-related sentinel errors. Every kernel-detected inconsistency is
// fatal to the surrounding transaction; there is no local recovery.
var (
	ErrStorageIndexOutOfRange = errors.New("types: storage index out of range")
	ErrInvalidSlotType        = errors.New("types: invalid storage slot type encoding")
	ErrReservedSlotMistyped   = errors.New("types: reserved storage slot has the wrong type")
)

// AccountID is a single field element encoding, in its low bits, the two
// account type bits (is_faucet, is_fungible).
type AccountID struct {
	Felt Felt
}

const (
	accountIDFaucetBit   = 0
	accountIDFungibleBit = 1
)

// NewAccountID builds an AccountID from a raw Felt value (typically the
// output of the account-id proof-of-work seed search performed off-kernel).
func NewAccountID(f Felt) AccountID {
	return AccountID{Felt: f}
}

// IsFaucet reports whether this id's faucet bit is set.
func (id AccountID) IsFaucet() bool {
	return id.Felt.BigInt().Bit(accountIDFaucetBit) == 1
}

// IsFungibleFaucet reports whether this id identifies a fungible faucet.
func (id AccountID) IsFungibleFaucet() bool {
	return id.IsFaucet() && id.Felt.BigInt().Bit(accountIDFungibleBit) == 1
}

// IsNonFungibleFaucet reports whether this id identifies a non-fungible
// faucet.
func (id AccountID) IsNonFungibleFaucet() bool {
	return id.IsFaucet() && id.Felt.BigInt().Bit(accountIDFungibleBit) == 0
}

// Equal reports whether two account ids are the same Felt.
func (id AccountID) Equal(o AccountID) bool {
	return id.Felt.Equal(o.Felt)
}

// ValidSeed reports whether id satisfies the proof-of-work seed
// predicate new accounts must be minted under (invariant 7): its bits
// above the two type-tag bits must carry at least
// AccountIDSeedDifficulty trailing zeros.
func (id AccountID) ValidSeed() bool {
	v := new(big.Int).Rsh(id.Felt.BigInt(), 2)
	if v.Sign() == 0 {
		return true
	}
	return v.TrailingZeroBits() >= AccountIDSeedDifficulty
}

// SlotKind distinguishes a scalar storage slot from one whose value is the
// root of a sub sparse-Merkle-tree (a "map" slot).
type SlotKind uint8

const (
	SlotKindScalar SlotKind = 0
	SlotKindMap    SlotKind = 1
)

// SlotType packs an entry arity (0..255) and a kind into the one-Felt
// encoding stored in the account's reserved slot-type table. Arity is
// meaningful only for map slots (number of keys expected, 0 meaning
// unbounded); scalar slots always carry arity 0.
type SlotType struct {
	Kind  SlotKind
	Arity uint8
}

// Pack serializes the slot type into its single-Felt wire encoding:
// low byte is the kind tag, next byte is the arity.
func (st SlotType) Pack() Felt {
	v := uint64(st.Kind) | uint64(st.Arity)<<8
	return FeltFromUint64(v)
}

// UnpackSlotType decodes a Felt into a SlotType, rejecting encodings that
// don't round-trip through Pack (the only well-formed encodings).
func UnpackSlotType(f Felt) (SlotType, error) {
	v, ok := f.Uint64()
	if !ok || v > 0xFFFF {
		return SlotType{}, ErrInvalidSlotType
	}
	kind := SlotKind(v & 0xFF)
	arity := uint8((v >> 8) & 0xFF)
	if kind != SlotKindScalar && kind != SlotKindMap {
		return SlotType{}, ErrInvalidSlotType
	}
	return SlotType{Kind: kind, Arity: arity}, nil
}

// SlotTypeTable is the 256-entry array of slot types committed to by the
// reserved TYPES_COM slot (NumStorageSlots-1).
type SlotTypeTable [NumStorageSlots]SlotType

// Validate checks every entry is well-formed and that the reserved slots
// carry the types the protocol requires of them: slot 255 (TYPES_COM
// itself) is always scalar, and for faucet accounts slot 254 must match
// the faucet's fungible/non-fungible kind.
func (t SlotTypeTable) Validate(id AccountID) error {
	for _, st := range t {
		if st.Kind != SlotKindScalar && st.Kind != SlotKindMap {
			return ErrInvalidSlotType
		}
	}
	if t[SlotTypesCommitmentSlot].Kind != SlotKindScalar {
		return ErrReservedSlotMistyped
	}
	if id.IsFaucet() {
		want := SlotKindScalar
		if id.IsNonFungibleFaucet() {
			want = SlotKindMap
		}
		if t[FaucetStorageDataSlot].Kind != want {
			return ErrReservedSlotMistyped
		}
	}
	return nil
}

// Account is the kernel's view of an on-chain account: identity, nonce,
// and the roots of its three state trees (vault, storage, code).
type Account struct {
	ID          AccountID
	Nonce       Felt
	VaultRoot   Word
	StorageRoot Word
	CodeRoot    Word

	// Storage holds the 256 slot values as seen by the kernel; a scalar
	// slot's value is its Word directly, a map slot's value is the root
	// of its sub-SMT.
	Storage [NumStorageSlots]Word

	// SlotTypes is the pre-image of TYPES_COM (storage[255]).
	SlotTypes SlotTypeTable
}

// IsNewAccount reports whether an account is brand-new, i.e. whether its
// initial hash, computed by the caller, is ZeroWord.
func IsNewAccount(initialHash Word) bool {
	return initialHash.IsZero()
}

// GetItem returns the Word stored at the given slot index.
func (a *Account) GetItem(index int) (Word, error) {
	if index < 0 || index >= NumStorageSlots {
		return Word{}, ErrStorageIndexOutOfRange
	}
	return a.Storage[index], nil
}

// SetItem writes a Word to the given slot index. Faucet-reserved-slot and
// context restrictions are enforced by the account module (internal/kernel
// /account), not here: this type is a pure data holder.
func (a *Account) SetItem(index int, v Word) error {
	if index < 0 || index >= NumStorageSlots {
		return ErrStorageIndexOutOfRange
	}
	a.Storage[index] = v
	return nil
}
