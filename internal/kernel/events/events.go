// Package events implements the kernel's advisory event sink. Events
// have no semantic effect on commitments (spec.md section 6) — they
// exist only so a host can observe vault mutations for UX or telemetry.
// This generalizes the teacher's DisclosureManager advisory-data pattern
// (programmable compliance disclosures attached to a transaction without
// affecting its validity) to kernel-level advisory events.
package events

import "github.com/ccoin/kernel/pkg/types"

// Sink receives advisory events emitted during execution.
type Sink interface {
	Emit(code uint32, data ...types.Word)
}

// Noop discards every event; the default sink when a caller doesn't
// care to observe them.
type Noop struct{}

func (Noop) Emit(uint32, ...types.Word) {}

// Event is one recorded emission, used by Recorder.
type Event struct {
	Code uint32
	Data []types.Word
}

// Recorder accumulates every emitted event in order, for tests and for
// hosts that want to replay or log them after execution completes.
type Recorder struct {
	Events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(code uint32, data ...types.Word) {
	r.Events = append(r.Events, Event{Code: code, Data: append([]types.Word{}, data...)})
}
