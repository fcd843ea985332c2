package harness

import "testing"

func TestCheckConservationAcceptsBalancedAmounts(t *testing.T) {
	if err := CheckConservation([]uint64{10, 5}, []uint64{7, 8}); err != nil {
		t.Fatalf("CheckConservation: %v", err)
	}
}

func TestCheckConservationRejectsImbalancedAmounts(t *testing.T) {
	if err := CheckConservation([]uint64{10}, []uint64{9}); err == nil {
		t.Fatal("CheckConservation should reject a sum mismatch")
	}
}

func TestCheckBlindedConservationAcceptsBalancedCommitments(t *testing.T) {
	err := CheckBlindedConservation(
		[]uint64{10, 5}, []uint64{1, 2},
		[]uint64{7, 8}, []uint64{2, 1},
	)
	if err != nil {
		t.Fatalf("CheckBlindedConservation: %v", err)
	}
}

func TestCheckBlindedConservationRejectsValueImbalance(t *testing.T) {
	err := CheckBlindedConservation(
		[]uint64{10}, []uint64{1},
		[]uint64{9}, []uint64{1},
	)
	if err != ErrBlindedConservationFailed {
		t.Fatalf("got %v, want ErrBlindedConservationFailed", err)
	}
}

func TestCheckBlindedConservationRejectsBlinderImbalance(t *testing.T) {
	// Same total value on both sides, but the blinders don't sum equal,
	// so the commitments land on different curve points.
	err := CheckBlindedConservation(
		[]uint64{10}, []uint64{1},
		[]uint64{10}, []uint64{2},
	)
	if err != ErrBlindedConservationFailed {
		t.Fatalf("got %v, want ErrBlindedConservationFailed", err)
	}
}
