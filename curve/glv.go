package curve

import (
	"math/big"

	"github.com/chainscore-labs/ringvrf/field"
)

// endomorphism applies Bandersnatch's efficiently-computable endomorphism
// φ to p, returning a point equal to [λ]p for the fixed eigenvalue
// GLVLambda. The closed form works in projective coordinates so one
// inversion covers both outputs:
//
//	f(y) = C·(1 - y²), g(y) = B·(y² + B), h(y) = y² - B
//	φ(x, y) = ( f(y)·h(y) : g(y)·x·y : h(y)·x·y )
func endomorphism(p Affine) Affine {
	if p.IsIdentity() {
		return p
	}
	var one, y2, xy field.Fp
	one.SetOne()
	y2.Square(&p.Y)
	xy.Mul(&p.X, &p.Y)

	var fy, gy, hy field.Fp
	fy.Sub(&one, &y2)
	fy.Mul(&fy, &glvConstC)
	gy.Add(&y2, &glvConstB)
	gy.Mul(&gy, &glvConstB)
	hy.Sub(&y2, &glvConstB)

	var xp, yp, zp field.Fp
	xp.Mul(&fy, &hy)
	yp.Mul(&gy, &xy)
	zp.Mul(&hy, &xy)

	var zInv field.Fp
	zInv.Inverse(&zp)

	var out Affine
	out.X.Mul(&xp, &zInv)
	out.Y.Mul(&yp, &zInv)
	return out
}

// glvDecompose splits a scalar k into k1, k2 of roughly half bit-length
// such that k ≡ k1 + k2·λ (mod r), using the standard extended-Euclidean
// short-vector construction on (r, λ). Either component may be negative;
// the caller negates the corresponding point instead.
func glvDecompose(k field.Fr) (k1, k2 *big.Int) {
	r := field.FrModulus
	lambda := GLVLambda.BigInt()

	// Run the extended Euclidean algorithm on (r, lambda) and stop once the
	// remainder drops below sqrt(r); the two half-size vectors straddling
	// that point form a short basis for the lattice
	// {(x, y) : x + y*lambda ≡ 0 mod r}.
	sqrtR := new(big.Int).Sqrt(r)

	rPrev, rCur := new(big.Int).Set(r), new(big.Int).Set(lambda)
	sPrev, sCur := big.NewInt(0), big.NewInt(1)

	for rCur.Cmp(sqrtR) > 0 {
		q := new(big.Int).Div(rPrev, rCur)
		rPrev, rCur = rCur, new(big.Int).Sub(rPrev, new(big.Int).Mul(q, rCur))
		sPrev, sCur = sCur, new(big.Int).Sub(sPrev, new(big.Int).Mul(q, sCur))
	}

	a1, b1 := new(big.Int).Set(rCur), new(big.Int).Neg(sCur)
	a2, b2 := new(big.Int).Set(rPrev), new(big.Int).Neg(sPrev)

	kb := k.BigInt()

	// det = a1*b2 - a2*b1 is ±r; fold its sign into the rounded quotients
	// so (c1, c2) approximate the solution of
	// [a1 a2; b1 b2]·(c1, c2) = (k, 0).
	det := new(big.Int).Sub(new(big.Int).Mul(a1, b2), new(big.Int).Mul(a2, b1))
	num1 := new(big.Int).Mul(b2, kb)
	num2 := new(big.Int).Mul(new(big.Int).Neg(b1), kb)
	if det.Sign() < 0 {
		num1.Neg(num1)
		num2.Neg(num2)
	}
	c1 := roundedDiv(num1, r)
	c2 := roundedDiv(num2, r)

	t1 := new(big.Int).Mul(c1, a1)
	t2 := new(big.Int).Mul(c2, a2)
	k1 = new(big.Int).Sub(kb, new(big.Int).Add(t1, t2))

	t3 := new(big.Int).Mul(c1, b1)
	t4 := new(big.Int).Mul(c2, b2)
	k2 = new(big.Int).Neg(new(big.Int).Add(t3, t4))
	return k1, k2
}

// roundedDiv returns round(num/den) for a signed numerator and positive
// denominator.
func roundedDiv(num, den *big.Int) *big.Int {
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	rem2 := new(big.Int).Lsh(new(big.Int).Abs(rem), 1)
	if rem2.Cmp(den) >= 0 {
		if num.Sign() >= 0 {
			q.Add(q, big.NewInt(1))
		} else {
			q.Sub(q, big.NewInt(1))
		}
	}
	return q
}

// GLVScalarMul returns [k]p, splitting k into two half-size components via
// glvDecompose and evaluating them with a simultaneous double-and-add over
// (p, φ(p)). This is the fast path on the public-key and
// proof-verification hot paths.
func (p Affine) GLVScalarMul(k field.Fr) Affine {
	if p.IsIdentity() || k.IsZero() {
		return Identity()
	}
	k1, k2 := glvDecompose(k)

	p1 := p
	if k1.Sign() < 0 {
		k1.Neg(k1)
		p1 = p1.Neg()
	}
	p2 := endomorphism(p)
	if k2.Sign() < 0 {
		k2.Neg(k2)
		p2 = p2.Neg()
	}

	return simultaneousMul(p1, k1, p2, k2)
}

// simultaneousMul computes [a]p + [b]q via Shamir's trick: a single
// left-to-right pass over the bits of a and b using a 4-entry
// precomputed table {O, p, q, p+q}.
func simultaneousMul(p Affine, a *big.Int, q Affine, b *big.Int) Affine {
	table := [4]Affine{Identity(), p, q, p.Add(q)}

	n := a.BitLen()
	if b.BitLen() > n {
		n = b.BitLen()
	}
	if n == 0 {
		return Identity()
	}

	acc := Identity()
	for i := n - 1; i >= 0; i-- {
		acc = acc.Double()
		idx := 0
		if a.Bit(i) == 1 {
			idx |= 1
		}
		if b.Bit(i) == 1 {
			idx |= 2
		}
		if idx != 0 {
			acc = acc.Add(table[idx])
		}
	}
	return acc
}
