// Package txmod implements the tx module (C8): read-only accessors over
// block data and note commitments (spec.md section 4.8), grounded on the
// teacher's plain-getter DAG accessor style (internal/dag.DAG's
// GetHeight/GetTips) reduced to pure getters over the kernel memory map.
package txmod

import (
	"github.com/ccoin/kernel/internal/kernel/memmap"
	"github.com/ccoin/kernel/pkg/types"
)

// Module is a thin read accessor over the memory map's block and
// note-commitment regions.
type Module struct {
	mem *memmap.Map
}

// New wraps mem.
func New(mem *memmap.Map) *Module {
	return &Module{mem: mem}
}

// GetBlockNumber returns the current block's number.
func (m *Module) GetBlockNumber() uint64 {
	return m.mem.Block.Header.Number()
}

// GetBlockHash returns the current global-input block hash.
func (m *Module) GetBlockHash() types.Word {
	return m.mem.Global.BlockHash
}

// GetInputNotesHash returns the running nullifier commitment recorded in
// global inputs — identical by construction to the sequential hash the
// prologue recomputes over the consumed notes (see internal/kernel/note).
func (m *Module) GetInputNotesHash() types.Word {
	return m.mem.Global.NullifierCommitment
}

// GetOutputNotesHash returns the output-notes commitment, available only
// after the epilogue has computed it.
func (m *Module) GetOutputNotesHash() types.Word {
	return m.mem.OutputNotesCommitment
}
