package prologue

import (
	"testing"

	"github.com/ccoin/kernel/internal/kernel/advice"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/internal/kernel/events"
	"github.com/ccoin/kernel/pkg/types"
)

func newDeps() (Deps, crypto.Hasher) {
	h := crypto.NewHasher()
	return Deps{
		Hasher:   h,
		Merkle:   crypto.NewMerkleVerifier(h),
		ChainMMR: crypto.NewMMR(h),
		Sink:     events.Noop{},
	}, h
}

// buildHeader computes a header whose recomputed block hash matches what
// Run independently derives, given the chain's current root.
func buildHeader(h crypto.Hasher, chainRoot types.Word) types.BlockHeader {
	header := types.BlockHeader{
		NoteRoot:    types.ZeroWord,
		PrevHash:    types.WordFromUint64s(1, 0, 0, 0),
		ChainRoot:   chainRoot,
		StateRoot:   types.WordFromUint64s(2, 0, 0, 0),
		BatchRoot:   types.WordFromUint64s(3, 0, 0, 0),
		BlockNumber: types.WordFromUint64s(1, 0, 0, 0),
	}
	return header
}

func blockHash(h crypto.Hasher, header types.BlockHeader) types.Word {
	fields := header.StreamFields()
	subHash := h.Hash(fields[:]...)
	return h.Hash(subHash, header.NoteRoot)
}

func validSeedID() types.AccountID {
	return types.NewAccountID(types.FeltFromUint64((uint64(1) << (types.AccountIDSeedDifficulty + 2)) | 0b11))
}

// defaultStorage returns a storage array whose TYPES_COM slot commits to
// the zero-value SlotTypeTable, satisfying the prologue's binding check
// for tests that don't care about slot typing.
func defaultStorage(h crypto.Hasher) [types.NumStorageSlots]types.Word {
	var storage [types.NumStorageSlots]types.Word
	storage[types.SlotTypesCommitmentSlot] = crypto.CommitSlotTypes(h, types.SlotTypeTable{})
	return storage
}

func TestRunAcceptsNewAccountWithEmptyVault(t *testing.T) {
	deps, h := newDeps()
	header := buildHeader(h, deps.ChainMMR.Root())
	bh := blockHash(h, header)

	id := validSeedID()
	pub := types.PublicInputs{
		BlockHash:           bh,
		AccountID:           id,
		InitialAccountHash:  types.ZeroWord,
		NullifierCommitment: types.ZeroWord,
	}
	acctIn := AccountInput{ID: id, Nonce: types.Zero, CodeRoot: types.WordFromUint64s(4, 0, 0, 0), Storage: defaultStorage(h)}

	state, err := Run(pub, header, acctIn, nil, types.WordFromUint64s(5, 0, 0, 0), advice.NewProvider(nil, nil), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if state.Account.GetID().Felt != id.Felt {
		t.Fatal("returned state's account id should match the input")
	}
}

func TestRunRejectsBlockHashMismatch(t *testing.T) {
	deps, h := newDeps()
	header := buildHeader(h, deps.ChainMMR.Root())

	id := validSeedID()
	pub := types.PublicInputs{
		BlockHash:          types.WordFromUint64s(99, 99, 99, 99),
		AccountID:          id,
		InitialAccountHash: types.ZeroWord,
	}
	acctIn := AccountInput{ID: id, Nonce: types.Zero}

	_, err := Run(pub, header, acctIn, nil, types.ZeroWord, advice.NewProvider(nil, nil), deps)
	if err != ErrBlockHashMismatch {
		t.Fatalf("got %v, want ErrBlockHashMismatch", err)
	}
}

func TestRunRejectsChainRootMismatch(t *testing.T) {
	deps, h := newDeps()
	header := buildHeader(h, types.WordFromUint64s(1, 1, 1, 1))
	bh := blockHash(h, header)

	id := validSeedID()
	pub := types.PublicInputs{BlockHash: bh, AccountID: id, InitialAccountHash: types.ZeroWord}
	acctIn := AccountInput{ID: id, Nonce: types.Zero}

	_, err := Run(pub, header, acctIn, nil, types.ZeroWord, advice.NewProvider(nil, nil), deps)
	if err != ErrChainRootMismatch {
		t.Fatalf("got %v, want ErrChainRootMismatch", err)
	}
}

func TestRunRejectsInvalidAccountIDSeedForNewAccount(t *testing.T) {
	deps, h := newDeps()
	header := buildHeader(h, deps.ChainMMR.Root())
	bh := blockHash(h, header)

	id := types.NewAccountID(types.FeltFromUint64(0b111)) // payload 1: no trailing zero bits
	pub := types.PublicInputs{BlockHash: bh, AccountID: id, InitialAccountHash: types.ZeroWord}
	acctIn := AccountInput{ID: id, Nonce: types.Zero, Storage: defaultStorage(h)}

	_, err := Run(pub, header, acctIn, nil, types.ZeroWord, advice.NewProvider(nil, nil), deps)
	if err != ErrInvalidAccountIDSeed {
		t.Fatalf("got %v, want ErrInvalidAccountIDSeed", err)
	}
}

func TestRunRejectsNewAccountWithNonEmptyVault(t *testing.T) {
	deps, h := newDeps()
	header := buildHeader(h, deps.ChainMMR.Root())
	bh := blockHash(h, header)

	id := validSeedID()
	faucet := types.NewAccountID(types.FeltFromUint64(0b11))
	asset, _ := types.NewFungibleAsset(faucet, 10)

	vaultOnly := crypto.NewSMT(h)
	vaultOnly.Insert(asset.VaultKey(), asset.Word)

	pub := types.PublicInputs{BlockHash: bh, AccountID: id, InitialAccountHash: types.ZeroWord}
	acctIn := AccountInput{
		ID:          id,
		Nonce:       types.Zero,
		VaultRoot:   vaultOnly.Root(),
		VaultAssets: []types.Asset{asset},
		Storage:     defaultStorage(h),
	}

	_, err := Run(pub, header, acctIn, nil, types.ZeroWord, advice.NewProvider(nil, nil), deps)
	if err != ErrNewAccountNotEmpty {
		t.Fatalf("got %v, want ErrNewAccountNotEmpty", err)
	}
}

func TestRunRejectsVaultCommitmentMismatch(t *testing.T) {
	deps, h := newDeps()
	header := buildHeader(h, deps.ChainMMR.Root())
	bh := blockHash(h, header)

	id := validSeedID()
	pub := types.PublicInputs{BlockHash: bh, AccountID: id, InitialAccountHash: types.ZeroWord}
	acctIn := AccountInput{
		ID:        id,
		Nonce:     types.Zero,
		VaultRoot: types.WordFromUint64s(1, 2, 3, 4), // does not commit to an empty vault
		Storage:   defaultStorage(h),
	}

	_, err := Run(pub, header, acctIn, nil, types.ZeroWord, advice.NewProvider(nil, nil), deps)
	if err != ErrVaultCommitmentMismatch {
		t.Fatalf("got %v, want ErrVaultCommitmentMismatch", err)
	}
}

func TestRunConsumesAuthenticatedInputNote(t *testing.T) {
	deps, h := newDeps()

	// Seed the chain with one prior block (pos 0) before this header.
	priorSubHash := types.WordFromUint64s(42, 0, 0, 0)
	deps.ChainMMR.Append(priorSubHash)

	header := buildHeader(h, deps.ChainMMR.Root())
	bh := blockHash(h, header)

	id := validSeedID()
	faucet := types.NewAccountID(types.FeltFromUint64(0b11))
	asset, _ := types.NewFungibleAsset(faucet, 7)

	serial := types.WordFromUint64s(1, 1, 1, 1)
	scriptRoot := types.WordFromUint64s(2, 2, 2, 2)
	inputsHash := crypto.CommitInputs(h, nil)
	assetsHash := crypto.CommitAssets(h, []types.Asset{asset})
	noteHash := crypto.ComputeNoteHash(h, serial, scriptRoot, inputsHash, assetsHash)
	nullifier := crypto.Nullifier(h, serial, scriptRoot, inputsHash, assetsHash)

	noteIn := NoteInput{
		SerialNumber: serial,
		ScriptRoot:   scriptRoot,
		Assets:       []types.Asset{asset},
		InputsHash:   inputsHash,
		AssetsHash:   assetsHash,
		LeafPos:      0,
		NoteIndex:    0,
		NoteRoot:     noteHash, // single-leaf note tree: root == leaf, empty path
	}

	nullifierCommitment := crypto.NewHasher().Hash(types.ZeroWord, nullifier, types.ZeroWord)

	pub := types.PublicInputs{
		BlockHash:           bh,
		AccountID:           id,
		InitialAccountHash:  types.ZeroWord,
		NullifierCommitment: nullifierCommitment,
	}
	acctIn := AccountInput{ID: id, Nonce: types.Zero, Storage: defaultStorage(h)}

	state, err := Run(pub, header, acctIn, []NoteInput{noteIn}, types.ZeroWord, advice.NewProvider(nil, nil), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	bal, err := state.Account.GetBalance(faucet)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if bal != 7 {
		t.Fatalf("GetBalance = %d, want 7 (note's asset merged into the vault)", bal)
	}
	if len(state.Nullifiers) != 1 || !state.Nullifiers[0].Equal(nullifier) {
		t.Fatalf("state.Nullifiers = %v, want [%v]", state.Nullifiers, nullifier)
	}
}
