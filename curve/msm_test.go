package curve

import (
	"math/big"
	"testing"

	"github.com/chainscore-labs/ringvrf/field"
)

func TestMSMMatchesNaiveSum(t *testing.T) {
	g := G()
	b := B()
	seed := SeedPoint()

	k1 := field.NewFr(new(big.Int).Lsh(big.NewInt(0xabcdef), 210))
	k2 := field.NewFr(new(big.Int).Lsh(big.NewInt(0x13579b), 190))
	k3 := field.NewFr(big.NewInt(424242))

	cases := []struct {
		points  []Affine
		scalars []field.Fr
	}{
		{nil, nil},
		{[]Affine{g}, []field.Fr{k1}},
		{[]Affine{g, b}, []field.Fr{k1, k2}},
		{[]Affine{g, b, seed}, []field.Fr{k1, k2, k3}},
	}
	for i, c := range cases {
		want := Identity()
		for j, p := range c.points {
			want = want.Add(p.ScalarMul(c.scalars[j]))
		}
		if got := MSM(c.points, c.scalars); !got.Equal(want) {
			t.Fatalf("case %d: MSM disagrees with per-term scalar multiplication", i)
		}
	}
}

func TestMSMZeroScalarAndIdentityPoint(t *testing.T) {
	g := G()
	k := field.NewFr(new(big.Int).Lsh(big.NewInt(77), 140))

	if got := MSM([]Affine{g, B()}, []field.Fr{k, field.FrZero()}); !got.Equal(g.ScalarMul(k)) {
		t.Fatal("zero second scalar should reduce to a single multiplication")
	}
	if got := MSM([]Affine{Identity(), B()}, []field.Fr{k, k}); !got.Equal(B().ScalarMul(k)) {
		t.Fatal("identity first point should reduce to a single multiplication")
	}
}
