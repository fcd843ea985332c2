package crypto

import "testing"

func TestBlindedCommitmentOpensToItsOwnValues(t *testing.T) {
	c := NewBlindedCommitment(42, 7)
	if err := c.Open(42, 7); err != nil {
		t.Fatalf("Open with the correct value/blinder: %v", err)
	}
	if err := c.Open(42, 8); err == nil {
		t.Fatal("Open with the wrong blinder should fail")
	}
	if err := c.Open(43, 7); err == nil {
		t.Fatal("Open with the wrong value should fail")
	}
}

func TestBlindedCommitmentHidesValueUnderDifferentBlinders(t *testing.T) {
	a := NewBlindedCommitment(10, 1)
	b := NewBlindedCommitment(10, 2)
	if a.Equal(b) {
		t.Fatal("same value with different blinders should commit to different points")
	}
}

func TestBlindedCommitmentAddIsHomomorphic(t *testing.T) {
	a := NewBlindedCommitment(10, 3)
	b := NewBlindedCommitment(20, 4)
	sum := Add(a, b)
	want := NewBlindedCommitment(30, 7)
	if !sum.Equal(want) {
		t.Fatal("Add(commit(v1,r1), commit(v2,r2)) should equal commit(v1+v2, r1+r2)")
	}
}
