// Package advice implements the non-deterministic advice channel the
// prologue reads from: a LIFO stack of Felts/Words and a map keyed by
// Word. The stream is produced once by the host and consumed exactly
// once, in strict order, by the kernel (spec.md section 4.3); there is
// no backtracking.
package advice

import (
	"errors"

	"github.com/ccoin/kernel/pkg/types"
)

// Advice errors.
var (
	ErrStackExhausted = errors.New("advice: stack exhausted")
	ErrMapKeyUnknown  = errors.New("advice: unknown map key")
)

// Stack is the LIFO advice stack: values pushed by the host (in advice
// order), popped by the kernel one Felt or one Word at a time.
type Stack struct {
	felts []types.Felt
}

// NewStack builds a Stack from its felts in push order (index 0 pushed
// first, popped last).
func NewStack(felts []types.Felt) *Stack {
	s := &Stack{felts: append([]types.Felt{}, felts...)}
	return s
}

// PushFelt appends a Felt to the stack (used when building fixtures;
// the kernel itself never pushes).
func (s *Stack) PushFelt(f types.Felt) {
	s.felts = append(s.felts, f)
}

// PushWord appends a Word's four Felts.
func (s *Stack) PushWord(w types.Word) {
	for _, f := range w {
		s.PushFelt(f)
	}
}

// PopFelt removes and returns the top Felt.
func (s *Stack) PopFelt() (types.Felt, error) {
	if len(s.felts) == 0 {
		return types.Felt{}, ErrStackExhausted
	}
	top := s.felts[len(s.felts)-1]
	s.felts = s.felts[:len(s.felts)-1]
	return top, nil
}

// PopWord removes and returns the top four Felts as a Word, most
// recently pushed element landing in Word[0].
func (s *Stack) PopWord() (types.Word, error) {
	var w types.Word
	for i := 0; i < types.WordSize; i++ {
		f, err := s.PopFelt()
		if err != nil {
			return types.Word{}, err
		}
		w[i] = f
	}
	return w, nil
}

// Len reports how many Felts remain.
func (s *Stack) Len() int {
	return len(s.felts)
}

// Map is the advice map: Word -> []Felt, referenced by the prologue via
// digest lookups (e.g. the account's storage pre-image).
type Map struct {
	entries map[types.Word][]types.Felt
}

// NewMap builds an advice Map from a set of key/value entries.
func NewMap(entries map[types.Word][]types.Felt) *Map {
	m := &Map{entries: make(map[types.Word][]types.Felt, len(entries))}
	for k, v := range entries {
		m.entries[k] = append([]types.Felt{}, v...)
	}
	return m
}

// Get looks up key, failing fatally (per spec.md section 4.3) if absent.
func (m *Map) Get(key types.Word) ([]types.Felt, error) {
	v, ok := m.entries[key]
	if !ok {
		return nil, ErrMapKeyUnknown
	}
	return v, nil
}

// Set inserts or overwrites an entry; used to publish the epilogue's
// advice-map side effects (final account data, output-note data).
func (m *Map) Set(key types.Word, value []types.Felt) {
	if m.entries == nil {
		m.entries = make(map[types.Word][]types.Felt)
	}
	m.entries[key] = append([]types.Felt{}, value...)
}

// Provider bundles the stack and map the prologue consumes.
type Provider struct {
	Stack *Stack
	Map   *Map
}

// NewProvider builds a Provider over the given stack and map.
func NewProvider(stack *Stack, m *Map) *Provider {
	if stack == nil {
		stack = NewStack(nil)
	}
	if m == nil {
		m = NewMap(nil)
	}
	return &Provider{Stack: stack, Map: m}
}

// PopFelt delegates to the underlying stack.
func (p *Provider) PopFelt() (types.Felt, error) { return p.Stack.PopFelt() }

// PopWord delegates to the underlying stack.
func (p *Provider) PopWord() (types.Word, error) { return p.Stack.PopWord() }

// GetMap delegates to the underlying map.
func (p *Provider) GetMap(key types.Word) ([]types.Felt, error) { return p.Map.Get(key) }
