package ring

import (
	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/poly"
)

// Domain bundles the two evaluation domains the ring proof needs: the
// core domain of size N (where columns live) and its radix-4 refinement
// of size 4N (where constraints are checked to avoid aliasing before
// division by Z_H).
type Domain struct {
	N      int
	Omega  field.Fp // primitive N-th root of unity
	Omega4 field.Fp // primitive 4N-th root of unity; Omega4^4 == Omega
}

// ToCoeffs converts an evaluation-form column (length N, evaluated at
// powers of Omega) to coefficient form via inverse NTT.
func (d Domain) ToCoeffs(evals []field.Fp) (poly.Polynomial, error) {
	coeffs, err := poly.INTT(evals, d.N, d.Omega)
	if err != nil {
		return poly.Polynomial{}, err
	}
	return poly.New(coeffs), nil
}

// ToRadix4Evals zero-pads p's coefficients to 4N and evaluates on the
// radix-4 domain via NTT at Omega4.
func (d Domain) ToRadix4Evals(p poly.Polynomial) ([]field.Fp, error) {
	padded := make([]field.Fp, 4*d.N)
	copy(padded, p.Coeffs)
	return poly.NTT(padded, 4*d.N, d.Omega4)
}

// Shift4 rotates a radix-4-domain evaluation vector by 4 positions,
// equivalent to shifting the underlying column's index by one position in
// the core domain (i.e. multiplying its argument by Omega).
func Shift4(v []field.Fp) []field.Fp {
	n := len(v)
	out := make([]field.Fp, n)
	for i := range v {
		out[i] = v[(i+4)%n]
	}
	return out
}

// notLast4 evaluates (X - Omega^(N-4)) pointwise on the radix-4 domain.
func (d Domain) notLast4() []field.Fp {
	target := d.pow(d.Omega, d.N-PaddingRows)
	out := make([]field.Fp, 4*d.N)
	var x field.Fp
	x.SetOne()
	for i := range out {
		out[i].Sub(&x, &target)
		x.Mul(&x, &d.Omega4)
	}
	return out
}

// lagrangeBasisAt evaluates L_k (the Lagrange basis polynomial that is 1
// at Omega^k and 0 at every other N-th root of unity) pointwise on the
// radix-4 domain, using the closed form
//
//	L_k(X) = (Omega^k / N) * (X^N - 1) / (X - Omega^k)
func (d Domain) lagrangeBasisAt(k int) []field.Fp {
	root := d.pow(d.Omega, k)
	var nInv field.Fp
	nInv.SetUint64(uint64(d.N))
	nInv.Inverse(&nInv)
	var scale field.Fp
	scale.Mul(&root, &nInv)

	out := make([]field.Fp, 4*d.N)
	var x field.Fp
	x.SetOne()
	for i := range out {
		xn := d.pow(x, d.N)
		var one field.Fp
		one.SetOne()
		var num field.Fp
		num.Sub(&xn, &one)

		var den field.Fp
		den.Sub(&x, &root)
		if den.IsZero() {
			// x == root: L_k(root) = 1 by definition; the closed form has
			// a removable singularity here.
			out[i] = one
		} else {
			var denInv field.Fp
			denInv.Inverse(&den)
			var ratio field.Fp
			ratio.Mul(&num, &denInv)
			out[i].Mul(&ratio, &scale)
		}
		x.Mul(&x, &d.Omega4)
	}
	return out
}

// pow computes base^e by square-and-multiply for non-negative e.
func (d Domain) pow(base field.Fp, e int) field.Fp {
	var out field.Fp
	out.SetOne()
	if e < 0 {
		e = 0
	}
	b := base
	for e > 0 {
		if e&1 == 1 {
			out.Mul(&out, &b)
		}
		b.Mul(&b, &b)
		e >>= 1
	}
	return out
}
