package advice

import (
	"testing"

	"github.com/ccoin/kernel/pkg/types"
)

func TestStackPopFeltLIFOOrder(t *testing.T) {
	s := NewStack(nil)
	s.PushFelt(types.FeltFromUint64(1))
	s.PushFelt(types.FeltFromUint64(2))
	s.PushFelt(types.FeltFromUint64(3))

	for _, want := range []uint64{3, 2, 1} {
		got, err := s.PopFelt()
		if err != nil {
			t.Fatalf("PopFelt: %v", err)
		}
		if v, _ := got.Uint64(); v != want {
			t.Fatalf("PopFelt() = %d, want %d", v, want)
		}
	}
}

func TestStackPopFeltExhausted(t *testing.T) {
	s := NewStack(nil)
	if _, err := s.PopFelt(); err != ErrStackExhausted {
		t.Fatalf("got %v, want ErrStackExhausted", err)
	}
}

func TestStackPushWordPopWordRoundTrip(t *testing.T) {
	s := NewStack(nil)
	w := types.WordFromUint64s(1, 2, 3, 4)
	s.PushWord(w)
	got, err := s.PopWord()
	if err != nil {
		t.Fatalf("PopWord: %v", err)
	}
	// PushWord pushes element 0 first, so the most-recently-pushed
	// element (index 3) is popped into Word[0] first.
	want := types.WordFromUint64s(4, 3, 2, 1)
	if !got.Equal(want) {
		t.Fatalf("PopWord() = %v, want %v", got, want)
	}
}

func TestStackLen(t *testing.T) {
	s := NewStack([]types.Felt{types.FeltFromUint64(1), types.FeltFromUint64(2)})
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	s.PopFelt()
	if s.Len() != 1 {
		t.Fatalf("Len() after one pop = %d, want 1", s.Len())
	}
}

func TestMapGetUnknownKey(t *testing.T) {
	m := NewMap(nil)
	if _, err := m.Get(types.WordFromUint64s(1, 0, 0, 0)); err != ErrMapKeyUnknown {
		t.Fatalf("got %v, want ErrMapKeyUnknown", err)
	}
}

func TestMapSetThenGet(t *testing.T) {
	m := NewMap(nil)
	key := types.WordFromUint64s(1, 0, 0, 0)
	m.Set(key, []types.Felt{types.FeltFromUint64(9)})
	got, err := m.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d felts, want 1", len(got))
	}
	if v, _ := got[0].Uint64(); v != 9 {
		t.Fatalf("got %d, want 9", v)
	}
}

func TestProviderDelegatesToStackAndMap(t *testing.T) {
	stack := NewStack([]types.Felt{types.FeltFromUint64(5)})
	m := NewMap(map[types.Word][]types.Felt{
		types.WordFromUint64s(1, 0, 0, 0): {types.FeltFromUint64(7)},
	})
	p := NewProvider(stack, m)

	f, err := p.PopFelt()
	if err != nil || func() uint64 { v, _ := f.Uint64(); return v }() != 5 {
		t.Fatalf("PopFelt via provider failed: %v, %v", f, err)
	}
	vals, err := p.GetMap(types.WordFromUint64s(1, 0, 0, 0))
	if err != nil || len(vals) != 1 {
		t.Fatalf("GetMap via provider failed: %v, %v", vals, err)
	}
}

func TestNewProviderDefaultsNilArgs(t *testing.T) {
	p := NewProvider(nil, nil)
	if _, err := p.PopFelt(); err != ErrStackExhausted {
		t.Fatalf("got %v, want ErrStackExhausted on a default empty stack", err)
	}
	if _, err := p.GetMap(types.ZeroWord); err != ErrMapKeyUnknown {
		t.Fatalf("got %v, want ErrMapKeyUnknown on a default empty map", err)
	}
}
