package curve

import (
	"math/big"
	"math/bits"

	"github.com/chainscore-labs/ringvrf/field"
)

// MSM computes the multi-scalar-multiplication sum(scalars[i] * points[i]).
// The two-term case — the shape the Pedersen equations produce
// (k*G + k_b*B, s*G + s_b*B) — GLV-splits both scalars and runs all four
// half-size components through a single simultaneous pass; larger inputs
// fold additional terms onto that result one GLV multiplication at a time.
func MSM(points []Affine, scalars []field.Fr) Affine {
	if len(points) != len(scalars) {
		panic("curve: MSM point/scalar length mismatch")
	}
	switch len(points) {
	case 0:
		return Identity()
	case 1:
		return points[0].GLVScalarMul(scalars[0])
	default:
		acc := msm2(points[0], scalars[0], points[1], scalars[1])
		for i := 2; i < len(points); i++ {
			acc = acc.Add(points[i].GLVScalarMul(scalars[i]))
		}
		return acc
	}
}

// msm2 computes [k1]p + [k2]q in one pass: both scalars are GLV-decomposed
// and the four half-size components are evaluated by a 16-entry
// simultaneous double-and-add, halving the doubling count relative to two
// separate GLV multiplications.
func msm2(p Affine, k1 field.Fr, q Affine, k2 field.Fr) Affine {
	if p.IsIdentity() || k1.IsZero() {
		return q.GLVScalarMul(k2)
	}
	if q.IsIdentity() || k2.IsZero() {
		return p.GLVScalarMul(k1)
	}

	p1, p2 := glvDecompose(k1)
	q1, q2 := glvDecompose(k2)

	pts := [4]Affine{p, endomorphism(p), q, endomorphism(q)}
	ks := [4]*big.Int{p1, p2, q1, q2}
	for i := range ks {
		if ks[i].Sign() < 0 {
			ks[i].Neg(ks[i])
			pts[i] = pts[i].Neg()
		}
	}
	return simultaneousMul4(pts, ks)
}

// simultaneousMul4 computes sum([ks[i]]pts[i]) via a single left-to-right
// pass over the scalar bits, selecting from a 16-entry table of subset
// sums.
func simultaneousMul4(pts [4]Affine, ks [4]*big.Int) Affine {
	var table [16]Affine
	table[0] = Identity()
	for m := 1; m < 16; m++ {
		low := m & -m
		table[m] = table[m&(m-1)].Add(pts[bits.TrailingZeros(uint(low))])
	}

	n := 0
	for _, k := range ks {
		if k.BitLen() > n {
			n = k.BitLen()
		}
	}
	if n == 0 {
		return Identity()
	}

	acc := Identity()
	for i := n - 1; i >= 0; i-- {
		acc = acc.Double()
		idx := 0
		for j, k := range ks {
			if k.Bit(i) == 1 {
				idx |= 1 << j
			}
		}
		if idx != 0 {
			acc = acc.Add(table[idx])
		}
	}
	return acc
}
