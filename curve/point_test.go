package curve

import (
	"math/big"
	"testing"

	"github.com/chainscore-labs/ringvrf/field"
)

func TestDistinguishedPointsOnCurve(t *testing.T) {
	points := map[string]Affine{
		"G":            G(),
		"B":            B(),
		"SeedPoint":    SeedPoint(),
		"PaddingPoint": PaddingPoint(),
		"Identity":     Identity(),
	}
	for name, p := range points {
		if !p.IsOnCurve() {
			t.Errorf("%s is not on curve", name)
		}
	}
}

func TestIdentityIsAdditiveUnit(t *testing.T) {
	g := G()
	id := Identity()
	if !g.Add(id).Equal(g) {
		t.Fatal("g + identity != g")
	}
	if !id.Add(g).Equal(g) {
		t.Fatal("identity + g != g")
	}
}

func TestAddNegCancels(t *testing.T) {
	g := G()
	if !g.Add(g.Neg()).IsIdentity() {
		t.Fatal("g + (-g) != identity")
	}
}

func TestDoubleMatchesAdd(t *testing.T) {
	g := G()
	if !g.Double().Equal(g.Add(g)) {
		t.Fatal("g.Double() != g.Add(g)")
	}
}

func TestScalarMulDistributesOverAddition(t *testing.T) {
	g := G()
	a := field.NewFr(big.NewInt(7))
	b := field.NewFr(big.NewInt(11))
	sum := a.Add(b)

	lhs := g.ScalarMul(sum)
	rhs := g.ScalarMul(a).Add(g.ScalarMul(b))
	if !lhs.Equal(rhs) {
		t.Fatal("[a+b]G != [a]G + [b]G")
	}
}

func TestScalarMulByZeroIsIdentity(t *testing.T) {
	g := G()
	if !g.ScalarMul(field.FrZero()).IsIdentity() {
		t.Fatal("[0]G != identity")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	points := []Affine{G(), B(), SeedPoint(), PaddingPoint(), Identity()}
	for i, p := range points {
		b := p.Bytes()
		if len(b) != 32 {
			t.Fatalf("point %d: Bytes() = %d bytes, want 32", i, len(b))
		}
		got, err := DecodeAffine(b)
		if err != nil {
			t.Fatalf("point %d: DecodeAffine: %v", i, err)
		}
		if !got.Equal(p) {
			t.Fatalf("point %d: round trip mismatch", i)
		}
	}
}

func TestDecodeAffineRejectsWrongLength(t *testing.T) {
	if _, err := DecodeAffine(make([]byte, 31)); err == nil {
		t.Fatal("expected error for short input")
	}
	if _, err := DecodeAffine(make([]byte, 33)); err == nil {
		t.Fatal("expected error for long input")
	}
}

func TestDecodeAffineRejectsOutOfRangeY(t *testing.T) {
	b := make([]byte, 32)
	for i := range b {
		b[i] = 0xff
	}
	b[31] = 0x7f // clear the sign bit, leave y at its maximal representable value
	if _, err := DecodeAffine(b); err == nil {
		t.Fatal("expected decode failure for out-of-range y")
	}
}
