package crypto

import "github.com/ccoin/kernel/pkg/types"

// CommitStorage folds an account's 256 storage slots into a single
// Word via sequential hashing, in slot order. This stands in for
// whatever concrete storage-tree commitment the real VM uses; what the
// kernel actually depends on is that it is a deterministic, collision
// -resistant function of every slot (spec.md section 4.1's StorageRoot).
func CommitStorage(h Hasher, storage [types.NumStorageSlots]types.Word) types.Word {
	acc := types.ZeroWord
	for _, slot := range storage {
		acc = h.Hash(acc, slot)
	}
	return acc
}

// CommitSlotTypes folds the 256-entry slot-type table into TYPES_COM,
// the value expected at storage slot types.SlotTypesCommitmentSlot.
func CommitSlotTypes(h Hasher, table types.SlotTypeTable) types.Word {
	acc := types.ZeroWord
	for _, st := range table {
		acc = h.Hash(acc, types.NewWord(st.Pack(), types.Zero, types.Zero, types.Zero))
	}
	return acc
}

// HashAccount computes an account's commitment from its identity, nonce,
// vault root, storage root, and code root (spec.md section 4.1's
// account_hash). StorageRoot is recomputed from the live Storage array
// rather than trusted from the struct field, since the account module
// mutates Storage in place via SetItem without separately tracking
// StorageRoot.
func HashAccount(h Hasher, acct types.Account) types.Word {
	storageRoot := CommitStorage(h, acct.Storage)
	idWord := types.NewWord(acct.ID.Felt, acct.Nonce, types.Zero, types.Zero)
	return h.Hash(idWord, acct.VaultRoot, storageRoot, acct.CodeRoot)
}
