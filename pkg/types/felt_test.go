package types

import (
	"math/big"
	"testing"
)

func TestFeltArithmetic(t *testing.T) {
	a := FeltFromUint64(5)
	b := FeltFromUint64(7)

	if got, _ := a.Add(b).Uint64(); got != 12 {
		t.Fatalf("Add: got %d, want 12", got)
	}
	if got, _ := b.Sub(a).Uint64(); got != 2 {
		t.Fatalf("Sub: got %d, want 2", got)
	}
	if got, _ := a.Mul(b).Uint64(); got != 35 {
		t.Fatalf("Mul: got %d, want 35", got)
	}
}

func TestFeltEqualAndZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatal("Zero.IsZero() = false")
	}
	if !FeltFromUint64(3).Equal(FeltFromUint64(3)) {
		t.Fatal("equal values compared unequal")
	}
	if FeltFromUint64(3).Equal(FeltFromUint64(4)) {
		t.Fatal("unequal values compared equal")
	}
}

func TestFeltBigIntRoundTrip(t *testing.T) {
	v := big.NewInt(123456789)
	f := FeltFromBigInt(v)
	if f.BigInt().Cmp(v) != 0 {
		t.Fatalf("round trip mismatch: got %s, want %s", f.BigInt(), v)
	}
}

func TestFeltUint64Overflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 250)
	f := FeltFromBigInt(huge)
	if _, ok := f.Uint64(); ok {
		t.Fatal("expected Uint64 to report overflow for a 250-bit value")
	}
}

func TestFeltBytesRoundTrip(t *testing.T) {
	f := FeltFromUint64(424242)
	var g Felt
	g.SetBytes(f.Bytes())
	if !f.Equal(g) {
		t.Fatal("Bytes/SetBytes round trip did not preserve the value")
	}
}
