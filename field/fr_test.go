package field

import (
	"math/big"
	"testing"
)

func TestFrBytesRoundTrip(t *testing.T) {
	vals := []int64{0, 1, 2, 999999, -1, -999999}
	for _, v := range vals {
		x := NewFr(big.NewInt(v))
		b := x.Bytes()
		if len(b) != 32 {
			t.Fatalf("Bytes: want 32 bytes, got %d", len(b))
		}
		y := SetBytesFr(b)
		if !x.Equal(y) {
			t.Fatalf("round trip mismatch for %d", v)
		}
	}
}

func TestFrArithmeticIdentities(t *testing.T) {
	a := FrFromUint64(17)
	b := FrFromUint64(23)

	if !a.Add(b).Sub(b).Equal(a) {
		t.Fatal("(a+b)-b != a")
	}

	prod := a.Mul(b)
	bInv, err := b.Inv()
	if err != nil {
		t.Fatalf("Inv: %v", err)
	}
	if !prod.Mul(bInv).Equal(a) {
		t.Fatal("(a*b)/b != a")
	}

	if !a.Sub(a).IsZero() {
		t.Fatal("a-a != 0")
	}
	if !a.Neg().Add(a).IsZero() {
		t.Fatal("-a+a != 0")
	}
}

func TestFrInvZeroFails(t *testing.T) {
	if _, err := FrZero().Inv(); err == nil {
		t.Fatal("expected error inverting zero")
	}
}

func TestFrPow(t *testing.T) {
	a := FrFromUint64(3)
	got := a.Pow(big.NewInt(4))
	want := FrFromUint64(81)
	if !got.Equal(want) {
		t.Fatalf("3^4 = %v, want %v", got.BigInt(), want.BigInt())
	}
}

func TestFrLegendreAndSqrt(t *testing.T) {
	if FrZero().Legendre() != 0 {
		t.Fatal("Legendre(0) != 0")
	}
	x := FrFromUint64(12345)
	square := x.Mul(x)
	root, ok := square.Sqrt()
	if !ok {
		t.Fatal("expected a square root for a perfect square")
	}
	if !root.Mul(root).Equal(square) {
		t.Fatal("sqrt(x)^2 != x")
	}
}
