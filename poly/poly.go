// Package poly implements univariate polynomial arithmetic over
// Bandersnatch's base field: evaluation, interpolation, NTT/INTT, and the
// synthetic-division helpers the ring prover uses to build its quotient
// and linearization polynomials.
package poly

import (
	"fmt"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// Polynomial holds coefficients in increasing degree order: Coeffs[0] is
// the constant term. A nil or empty Polynomial represents the zero
// polynomial.
type Polynomial struct {
	Coeffs []field.Fp
}

// New returns a polynomial with the given coefficients, trimmed of
// trailing zero terms.
func New(coeffs []field.Fp) Polynomial {
	return Polynomial{Coeffs: trim(coeffs)}
}

func trim(c []field.Fp) []field.Fp {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p Polynomial) Degree() int { return len(p.Coeffs) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p.Coeffs) == 0 }

// Eval evaluates p at x using Horner's method.
func (p Polynomial) Eval(x field.Fp) field.Fp {
	var acc field.Fp
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &p.Coeffs[i])
	}
	return acc
}

// Add returns p + q.
func Add(p, q Polynomial) Polynomial {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	out := make([]field.Fp, n)
	for i := 0; i < n; i++ {
		var a, b field.Fp
		if i < len(p.Coeffs) {
			a = p.Coeffs[i]
		}
		if i < len(q.Coeffs) {
			b = q.Coeffs[i]
		}
		out[i].Add(&a, &b)
	}
	return New(out)
}

// Sub returns p - q.
func Sub(p, q Polynomial) Polynomial {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	out := make([]field.Fp, n)
	for i := 0; i < n; i++ {
		var a, b field.Fp
		if i < len(p.Coeffs) {
			a = p.Coeffs[i]
		}
		if i < len(q.Coeffs) {
			b = q.Coeffs[i]
		}
		out[i].Sub(&a, &b)
	}
	return New(out)
}

// ScalarMul returns c * p.
func ScalarMul(c field.Fp, p Polynomial) Polynomial {
	out := make([]field.Fp, len(p.Coeffs))
	for i, a := range p.Coeffs {
		out[i].Mul(&a, &c)
	}
	return New(out)
}

// Mul returns the ordinary (schoolbook) product p*q. The ring prover only
// ever multiplies by the fixed degree-3 masking factor, so the O(deg(p)*deg(q))
// cost here is not on any asymptotically hot path.
func Mul(p, q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Polynomial{}
	}
	out := make([]field.Fp, len(p.Coeffs)+len(q.Coeffs)-1)
	for i, a := range p.Coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.Coeffs {
			var term field.Fp
			term.Mul(&a, &b)
			out[i+j].Add(&out[i+j], &term)
		}
	}
	return New(out)
}

// MulLinear multiplies p by the monic linear factor (X - root).
func MulLinear(p Polynomial, root field.Fp) Polynomial {
	n := len(p.Coeffs)
	if n == 0 {
		return Polynomial{}
	}
	out := make([]field.Fp, n+1)
	var negRoot field.Fp
	negRoot.Neg(&root)
	for i, a := range p.Coeffs {
		var term field.Fp
		term.Mul(&a, &negRoot)
		out[i].Add(&out[i], &term)
		out[i+1].Add(&out[i+1], &a)
	}
	return New(out)
}

// DivByLinear divides p by the monic linear factor (X - z) using synthetic
// division, returning the quotient. It returns ErrInternalConsistency if
// the division has a non-zero remainder, i.e. p(z) != 0.
func DivByLinear(p Polynomial, z field.Fp) (Polynomial, error) {
	n := len(p.Coeffs)
	if n == 0 {
		return Polynomial{}, nil
	}
	q := make([]field.Fp, n-1)
	carry := p.Coeffs[n-1]
	for i := n - 2; i >= 0; i-- {
		if i < n-1 {
			q[i] = carry
		}
		var term field.Fp
		term.Mul(&carry, &z)
		carry.Add(&p.Coeffs[i], &term)
	}
	if !carry.IsZero() {
		return Polynomial{}, fmt.Errorf("synthetic division remainder nonzero: %w", ringerr.ErrInternalConsistency)
	}
	return New(q), nil
}

// DivByVanishing divides p by Z_H(X) = X^n - 1, the vanishing polynomial
// of a multiplicative subgroup of order n. It returns
// ErrInternalConsistency if the division is inexact, i.e. p does not
// vanish on H.
func DivByVanishing(p Polynomial, n int) (Polynomial, error) {
	if len(p.Coeffs) <= n {
		for _, c := range p.Coeffs {
			if !c.IsZero() {
				return Polynomial{}, fmt.Errorf("vanishing-polynomial division remainder nonzero: %w", ringerr.ErrInternalConsistency)
			}
		}
		return Polynomial{}, nil
	}

	coeffs := append([]field.Fp{}, p.Coeffs...)
	out := make([]field.Fp, len(coeffs)-n)
	for i := len(coeffs) - 1; i >= n; i-- {
		c := coeffs[i]
		if c.IsZero() {
			continue
		}
		out[i-n] = c
		coeffs[i-n].Add(&coeffs[i-n], &c)
		coeffs[i] = field.Fp{}
	}
	for i := 0; i < n; i++ {
		if !coeffs[i].IsZero() {
			return Polynomial{}, fmt.Errorf("vanishing-polynomial division remainder nonzero: %w", ringerr.ErrInternalConsistency)
		}
	}
	return New(out), nil
}

// LagrangeInterpolate returns the unique polynomial of degree < len(xs)
// passing through each (xs[i], ys[i]).
func LagrangeInterpolate(xs, ys []field.Fp) (Polynomial, error) {
	if len(xs) != len(ys) {
		return Polynomial{}, fmt.Errorf("mismatched point count: %w", ringerr.ErrInternalConsistency)
	}
	result := Polynomial{}
	for i := range xs {
		term := New([]field.Fp{ys[i]})
		var denom, one field.Fp
		denom.SetOne()
		one.SetOne()
		basis := New([]field.Fp{one})
		for j := range xs {
			if i == j {
				continue
			}
			basis = MulLinear(basis, xs[j])
			var diff field.Fp
			diff.Sub(&xs[i], &xs[j])
			denom.Mul(&denom, &diff)
		}
		if denom.IsZero() {
			return Polynomial{}, fmt.Errorf("duplicate interpolation point: %w", ringerr.ErrInternalConsistency)
		}
		var denomInv field.Fp
		denomInv.Inverse(&denom)
		scaled := ScalarMul(denomInv, basis)
		scaled = ScalarMul(term.Coeffs[0], scaled)
		result = Add(result, scaled)
	}
	return result, nil
}
