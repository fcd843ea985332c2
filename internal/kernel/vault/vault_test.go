package vault

import (
	"testing"

	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/pkg/types"
)

func fungibleFaucet(seed uint64) types.AccountID {
	return types.NewAccountID(types.FeltFromUint64(seed<<2 | 0b11))
}

func nonFungibleFaucet(seed uint64) types.AccountID {
	return types.NewAccountID(types.FeltFromUint64(seed<<2 | 0b01))
}

func TestAddMergesFungibleAmounts(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := fungibleFaucet(1)
	a1, _ := types.NewFungibleAsset(faucet, 10)
	a2, _ := types.NewFungibleAsset(faucet, 5)

	if err := v.Add(a1); err != nil {
		t.Fatalf("Add a1: %v", err)
	}
	if err := v.Add(a2); err != nil {
		t.Fatalf("Add a2: %v", err)
	}
	got, err := v.GetBalance(faucet)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if got != 15 {
		t.Fatalf("GetBalance = %d, want 15", got)
	}
}

func TestAddRejectsFungibleOverflow(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := fungibleFaucet(2)
	a1, _ := types.NewFungibleAsset(faucet, types.FungibleAmountLimit-1)
	a2, _ := types.NewFungibleAsset(faucet, 2)

	if err := v.Add(a1); err != nil {
		t.Fatalf("Add a1: %v", err)
	}
	if err := v.Add(a2); err != ErrFungibleOverflow {
		t.Fatalf("got %v, want ErrFungibleOverflow", err)
	}
}

func TestAddRejectsNonFungibleDuplicate(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := nonFungibleFaucet(3)
	a, err := types.NewNonFungibleAsset(faucet, types.WordFromUint64s(1, 2, 3, 4))
	if err != nil {
		t.Fatalf("NewNonFungibleAsset: %v", err)
	}

	if err := v.Add(a); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := v.Add(a); err != ErrNonFungibleDuplicate {
		t.Fatalf("got %v, want ErrNonFungibleDuplicate", err)
	}
}

func TestRemoveFungibleUnderflowAndMissing(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := fungibleFaucet(4)
	a, _ := types.NewFungibleAsset(faucet, 5)

	if err := v.Remove(a); err != ErrFungibleKeyMissing {
		t.Fatalf("got %v, want ErrFungibleKeyMissing", err)
	}
	if err := v.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}
	over, _ := types.NewFungibleAsset(faucet, 6)
	if err := v.Remove(over); err != ErrFungibleUnderflow {
		t.Fatalf("got %v, want ErrFungibleUnderflow", err)
	}
}

func TestRemoveFungibleToZeroClearsBalance(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := fungibleFaucet(5)
	a, _ := types.NewFungibleAsset(faucet, 7)
	if err := v.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := v.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got, err := v.GetBalance(faucet)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if got != 0 {
		t.Fatalf("GetBalance = %d, want 0", got)
	}
}

func TestRemoveNonFungibleMissing(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := nonFungibleFaucet(6)
	a, err := types.NewNonFungibleAsset(faucet, types.WordFromUint64s(9, 9, 9, 9))
	if err != nil {
		t.Fatalf("NewNonFungibleAsset: %v", err)
	}
	if err := v.Remove(a); err != ErrNonFungibleMissing {
		t.Fatalf("got %v, want ErrNonFungibleMissing", err)
	}
}

func TestHasNonFungible(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := nonFungibleFaucet(7)
	a, err := types.NewNonFungibleAsset(faucet, types.WordFromUint64s(1, 1, 1, 1))
	if err != nil {
		t.Fatalf("NewNonFungibleAsset: %v", err)
	}
	present, err := v.HasNonFungible(a)
	if err != nil {
		t.Fatalf("HasNonFungible: %v", err)
	}
	if present {
		t.Fatal("should not be present before Add")
	}
	if err := v.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if present, err = v.HasNonFungible(a); err != nil {
		t.Fatalf("HasNonFungible: %v", err)
	} else if !present {
		t.Fatal("should be present after Add")
	}
	if err := v.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if present, err = v.HasNonFungible(a); err != nil {
		t.Fatalf("HasNonFungible: %v", err)
	} else if present {
		t.Fatal("should not be present after Remove")
	}
}

func TestGetBalanceRejectsNonFungibleFaucet(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := nonFungibleFaucet(9)
	if _, err := v.GetBalance(faucet); err != ErrNotFungibleFaucet {
		t.Fatalf("got %v, want ErrNotFungibleFaucet", err)
	}
}

func TestHasNonFungibleRejectsFungibleAsset(t *testing.T) {
	v := New(crypto.NewHasher())
	faucet := fungibleFaucet(10)
	a, _ := types.NewFungibleAsset(faucet, 1)
	if _, err := v.HasNonFungible(a); err != ErrAssetIsFungible {
		t.Fatalf("got %v, want ErrAssetIsFungible", err)
	}
}

func TestFromRootReplaysEntries(t *testing.T) {
	h := crypto.NewHasher()
	faucet := fungibleFaucet(8)
	a, _ := types.NewFungibleAsset(faucet, 3)

	direct := New(h)
	if err := direct.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}

	replayed, err := FromRoot(h, []types.Asset{a})
	if err != nil {
		t.Fatalf("FromRoot: %v", err)
	}
	if !direct.Root().Equal(replayed.Root()) {
		t.Fatal("FromRoot should reconstruct the same root as replaying Add directly")
	}
}
