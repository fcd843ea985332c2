package types

// Protocol-wide constants. These must match bit-for-bit on both sides of
// the prover/verifier boundary; they are compile-time defaults, never
// mutable kernel state (kernelcfg.Config mirrors some of them as
// defaults, but the kernel checks read these constants directly).
const (
	// MaxInputsPerNote bounds the number of Felt inputs a note may carry.
	MaxInputsPerNote = 16

	// MaxAssetsPerNote bounds the number of assets a single note may carry.
	MaxAssetsPerNote = 10

	// MaxNumConsumedNotes bounds the number of input notes a single
	// transaction may consume.
	MaxNumConsumedNotes = 32

	// FungibleAmountBits is the bit width of a fungible asset amount; an
	// amount must satisfy amount < 2^FungibleAmountBits.
	FungibleAmountBits = 63

	// NumStorageSlots is the fixed number of slots in account storage.
	NumStorageSlots = 256

	// FaucetStorageDataSlot is the reserved storage slot holding a
	// faucet's issuance accounting (total_issuance or minted-NFT root).
	FaucetStorageDataSlot = 254

	// SlotTypesCommitmentSlot is the reserved storage slot holding
	// TYPES_COM, the commitment to the 256-entry slot-type table.
	SlotTypesCommitmentSlot = 255

	// NoteTreeDepth is the depth of the per-block note Merkle tree.
	NoteTreeDepth = 32

	// MaxChainMMRPeaks bounds the number of peaks unpacked from advice
	// when reconstructing the chain MMR (log2 of a plausible max chain
	// length, rounded up).
	MaxChainMMRPeaks = 63

	// MinChainMMRPeaks is the minimum peak count (a chain with at least
	// one block has at least one peak).
	MinChainMMRPeaks = 1

	// AccountIDSeedDifficulty is the number of trailing zero bits (beyond
	// the two type-tag bits) a freshly-minted account_id must exhibit,
	// the PoW seed predicate new accounts are validated against.
	AccountIDSeedDifficulty = 8
)

// Advisory event codes. These have no effect on commitments; they exist so
// a host can observe vault mutations for UX/telemetry purposes only.
const (
	AccountVaultAddAssetEvent    uint32 = 131072
	AccountVaultRemoveAssetEvent uint32 = 131073
)

// FungibleAmountLimit is 2^FungibleAmountBits, exclusive upper bound on a
// fungible asset's amount.
var FungibleAmountLimit = func() uint64 { return uint64(1) << FungibleAmountBits }()

// NonceIncrementLimit is the exclusive upper bound (2^32) on a single
// incr_nonce call's value argument.
const NonceIncrementLimit = uint64(1) << 32
