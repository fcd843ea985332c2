// Kernel Daemon - a reference driver that exercises one transaction
// through the full prologue/body/epilogue lifecycle against
// in-process fixtures, to demonstrate the kernel without a real prover.
package main

import (
	"fmt"
	"os"

	"github.com/ccoin/kernel/internal/kernel/advice"
	"github.com/ccoin/kernel/internal/kernel/crypto"
	"github.com/ccoin/kernel/internal/kernel/events"
	"github.com/ccoin/kernel/internal/kernel/harness"
	"github.com/ccoin/kernel/internal/kernel/prologue"
	"github.com/ccoin/kernel/internal/kernel/txexec"
	"github.com/ccoin/kernel/internal/kernel/vault"
	"github.com/ccoin/kernel/internal/kernelcfg"
	"github.com/ccoin/kernel/pkg/types"
)

const (
	version = "0.1.0"
	banner  = `
  _  __                   _
 | |/ /___ _ __ _ __   ___| |
 | ' // _ \ '__| '_ \ / _ \ |
 | . \  __/ |  | | | |  __/ |
 |_|\_\___|_|  |_| |_|\___|_|

  Kernel Daemon v%s
  Transaction Kernel reference driver
`
)

func main() {
	cfg := kernelcfg.ParseFlags()
	fmt.Printf(banner, version)
	fmt.Printf("configured bounds: max-inputs=%d max-assets=%d max-notes=%d note-tree-depth=%d\n",
		cfg.MaxInputsPerNote, cfg.MaxAssetsPerNote, cfg.MaxNumConsumedNotes, cfg.NoteTreeDepth)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultStorage returns a storage array whose TYPES_COM slot commits to
// the zero-value SlotTypeTable, satisfying the prologue's binding check
// for this demo account, which declares no typed storage slots.
func defaultStorage(h crypto.Hasher) [types.NumStorageSlots]types.Word {
	var storage [types.NumStorageSlots]types.Word
	storage[types.SlotTypesCommitmentSlot] = crypto.CommitSlotTypes(h, types.SlotTypeTable{})
	return storage
}

func run() error {
	fmt.Println("Running a reference transaction through the kernel...")

	h := crypto.NewHasher()
	merkle := crypto.NewMerkleVerifier(h)
	chainMMR := crypto.NewMMR(h)
	sink := events.NewRecorder()
	adv := advice.NewProvider(nil, nil)

	faucetID := harness.DeriveAccountID([]byte("kerneld/demo/faucet"), true, true)
	asset, err := types.NewFungibleAsset(faucetID, 500)
	if err != nil {
		return fmt.Errorf("build fixture asset: %w", err)
	}

	acctID := harness.DeriveAccountID([]byte("kerneld/demo/account"), false, false)
	codeRoot := harness.DeriveWord([]byte("kerneld/demo/account/code"))

	initialVault := vault.New(h)
	if err := initialVault.Add(asset); err != nil {
		return fmt.Errorf("seed initial vault: %w", err)
	}

	acct := types.Account{
		ID:        acctID,
		Nonce:     types.FeltFromUint64(1),
		VaultRoot: initialVault.Root(),
		CodeRoot:  codeRoot,
		Storage:   defaultStorage(h),
	}
	initialAccountHash := crypto.HashAccount(h, acct)

	header := types.BlockHeader{
		NoteRoot:         harness.DeriveWord([]byte("kerneld/demo/block/note-root")),
		PrevHash:         types.ZeroWord,
		ChainRoot:        chainMMR.Root(),
		StateRoot:        harness.DeriveWord([]byte("kerneld/demo/block/state-root")),
		BatchRoot:        harness.DeriveWord([]byte("kerneld/demo/block/batch-root")),
		PrevBlockHashAlt: types.ZeroWord,
		BlockNumber:      types.NewWord(types.FeltFromUint64(1), types.Zero, types.Zero, types.Zero),
	}
	fields := header.StreamFields()
	subHash := h.Hash(fields[:]...)
	blockHash := h.Hash(subHash, header.NoteRoot)

	txScriptRoot := harness.DeriveWord([]byte("kerneld/demo/tx-script"))

	req := txexec.Request{
		PublicInputs: types.PublicInputs{
			BlockHash:           blockHash,
			AccountID:           acctID,
			InitialAccountHash:  initialAccountHash,
			NullifierCommitment: types.ZeroWord,
		},
		BlockHeader: header,
		Account: prologue.AccountInput{
			ID:          acctID,
			Nonce:       types.FeltFromUint64(1),
			VaultRoot:   acct.VaultRoot,
			CodeRoot:    codeRoot,
			Storage:     defaultStorage(h),
			VaultAssets: []types.Asset{asset},
		},
		InputNotes:   nil,
		TxScriptRoot: txScriptRoot,
		Hasher:       h,
		Merkle:       merkle,
		ChainMMR:     chainMMR,
		Advice:       adv,
		Sink:         sink,
	}

	sess, err := txexec.Begin(req)
	if err != nil {
		return fmt.Errorf("prologue failed: %w", err)
	}
	fmt.Println("prologue: ok, account and chain data authenticated")

	sendAmount := uint64(120)
	sendAsset, err := types.NewFungibleAsset(faucetID, sendAmount)
	if err != nil {
		return fmt.Errorf("build send asset: %w", err)
	}
	if err := sess.Account.RemoveAsset(sess.AccountCtx, sendAsset); err != nil {
		return fmt.Errorf("remove_asset: %w", err)
	}
	recipient := harness.DeriveWord([]byte("kerneld/demo/recipient"))
	if _, err := sess.Notes.CreateNote(sess.AccountCtx, acctID, sendAsset, types.FeltFromUint64(7), recipient); err != nil {
		return fmt.Errorf("create_note: %w", err)
	}
	if err := sess.Account.IncrNonce(sess.AccountCtx, 1); err != nil {
		return fmt.Errorf("incr_nonce: %w", err)
	}
	fmt.Printf("body: moved %d units from the account vault into one output note\n", sendAmount)

	outputs, err := sess.Finish(h, adv)
	if err != nil {
		return fmt.Errorf("epilogue failed: %w", err)
	}

	fmt.Println("epilogue: ok, asset conservation held")
	fmt.Printf("tx_script_root          = %x\n", outputs.TxScriptRoot.Bytes())
	fmt.Printf("output_notes_commitment = %x\n", outputs.OutputNotesCommitment.Bytes())
	fmt.Printf("final_account_hash      = %x\n", outputs.FinalAccountHash.Bytes())
	fmt.Printf("advisory events emitted: %d\n", len(sink.Events))

	return nil
}
