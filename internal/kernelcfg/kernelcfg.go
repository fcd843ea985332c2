// Package kernelcfg holds the kernel's compile-time-overridable bounds:
// the per-transaction limits named in spec.md section 6 and the note
// -tree depth the chain commits to. The kernel packages never read a
// Config: their checks use the compile-time constants in pkg/types, so
// prover and verifier agree bit-for-bit. A Config only carries values
// for a host to inspect (cmd/kerneld prints it).
package kernelcfg

import "flag"

// Config holds the kernel's configurable bounds.
type Config struct {
	MaxInputsPerNote    int
	MaxAssetsPerNote    int
	MaxNumConsumedNotes int
	NoteTreeDepth       int
}

// DefaultConfig returns the protocol-default bounds (the constants also
// exported by pkg/types, so a caller that skips configuration entirely
// still matches the kernel's own compile-time limits).
func DefaultConfig() *Config {
	return &Config{
		MaxInputsPerNote:    16,
		MaxAssetsPerNote:    10,
		MaxNumConsumedNotes: 32,
		NoteTreeDepth:       32,
	}
}

// ParseFlags builds a Config from command-line flags, defaulting to
// DefaultConfig's values. Used by cmd/kerneld; the flags change only the
// returned Config, not the bounds the kernel enforces.
func ParseFlags() *Config {
	cfg := DefaultConfig()

	flag.IntVar(&cfg.MaxInputsPerNote, "max-inputs-per-note", cfg.MaxInputsPerNote, "maximum inputs a single note may declare")
	flag.IntVar(&cfg.MaxAssetsPerNote, "max-assets-per-note", cfg.MaxAssetsPerNote, "maximum assets a single note may declare")
	flag.IntVar(&cfg.MaxNumConsumedNotes, "max-consumed-notes", cfg.MaxNumConsumedNotes, "maximum notes a transaction may consume")
	flag.IntVar(&cfg.NoteTreeDepth, "note-tree-depth", cfg.NoteTreeDepth, "depth of a block's note merkle tree")

	flag.Parse()

	return cfg
}
