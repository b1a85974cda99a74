// Package field implements the two prime fields Bandersnatch is built from:
// Fr, the prime order of its own prime-order subgroup, and Fp, its base
// field (which is exactly the BLS12-381 scalar field). Fp arithmetic is
// delegated to gnark-crypto's bls12-381/fr package, the way the rest of
// this module's domain stack leans on gnark-crypto for BLS12-381-adjacent
// arithmetic; Fr has no equivalent off-the-shelf Go type, so it is
// implemented directly on math/big.
package field

import (
	"fmt"
	"math/big"

	"github.com/chainscore-labs/ringvrf/ringerr"
)

// FrModulus is the prime order of Bandersnatch's prime-order subgroup.
var FrModulus, _ = new(big.Int).SetString(
	"1cfb69d4ca675f520cce760202687600ff8f87007419047174fd06b52876e7e1", 16)

// Fr is an element of Bandersnatch's scalar field, reduced modulo FrModulus.
type Fr struct {
	v big.Int
}

// NewFr reduces x modulo FrModulus and returns the corresponding element.
func NewFr(x *big.Int) Fr {
	var f Fr
	f.v.Mod(x, FrModulus)
	return f
}

// FrFromUint64 returns the Fr element with the given small value.
func FrFromUint64(x uint64) Fr {
	return NewFr(new(big.Int).SetUint64(x))
}

// FrZero returns the additive identity.
func FrZero() Fr { return Fr{} }

// FrOne returns the multiplicative identity.
func FrOne() Fr { return FrFromUint64(1) }

// BigInt returns the canonical representative of f as a big.Int. The
// returned value must not be mutated by the caller.
func (f Fr) BigInt() *big.Int { return new(big.Int).Set(&f.v) }

// IsZero reports whether f is the additive identity.
func (f Fr) IsZero() bool { return f.v.Sign() == 0 }

// Equal reports whether f and g represent the same residue.
func (f Fr) Equal(g Fr) bool { return f.v.Cmp(&g.v) == 0 }

// Add returns f + g mod r.
func (f Fr) Add(g Fr) Fr {
	var out big.Int
	out.Add(&f.v, &g.v)
	out.Mod(&out, FrModulus)
	return Fr{out}
}

// Sub returns f - g mod r.
func (f Fr) Sub(g Fr) Fr {
	var out big.Int
	out.Sub(&f.v, &g.v)
	out.Mod(&out, FrModulus)
	return Fr{out}
}

// Neg returns -f mod r.
func (f Fr) Neg() Fr {
	var out big.Int
	out.Neg(&f.v)
	out.Mod(&out, FrModulus)
	return Fr{out}
}

// Mul returns f * g mod r.
func (f Fr) Mul(g Fr) Fr {
	var out big.Int
	out.Mul(&f.v, &g.v)
	out.Mod(&out, FrModulus)
	return Fr{out}
}

// Inv returns the multiplicative inverse of f. It returns an error only
// when f is zero, per the contract that inversion fails only on zero input.
func (f Fr) Inv() (Fr, error) {
	if f.IsZero() {
		return Fr{}, fmt.Errorf("invert zero element: %w", ringerr.ErrInvalidScalar)
	}
	var out big.Int
	out.ModInverse(&f.v, FrModulus)
	return Fr{out}, nil
}

// Pow returns f^e mod r for a non-negative exponent e.
func (f Fr) Pow(e *big.Int) Fr {
	var out big.Int
	out.Exp(&f.v, e, FrModulus)
	return Fr{out}
}

// Legendre returns 1 if f is a non-zero quadratic residue, -1 if it is a
// non-residue, and 0 if f is zero.
func (f Fr) Legendre() int {
	if f.IsZero() {
		return 0
	}
	exp := new(big.Int).Rsh(new(big.Int).Sub(FrModulus, big.NewInt(1)), 1)
	var r big.Int
	r.Exp(&f.v, exp, FrModulus)
	if r.Cmp(big.NewInt(1)) == 0 {
		return 1
	}
	return -1
}

// Sqrt computes a square root of f via Tonelli-Shanks, falling back to the
// p ≡ 3 (mod 4) shortcut when it applies. It returns false if f has no
// square root.
func (f Fr) Sqrt() (Fr, bool) {
	if f.IsZero() {
		return Fr{}, true
	}
	if f.Legendre() != 1 {
		return Fr{}, false
	}

	p := FrModulus
	if new(big.Int).And(p, big.NewInt(3)).Cmp(big.NewInt(3)) == 0 {
		exp := new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2)
		var r big.Int
		r.Exp(&f.v, exp, p)
		return Fr{r}, true
	}

	// Factor p-1 = q * 2^s.
	q := new(big.Int).Sub(p, big.NewInt(1))
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	// Find a quadratic non-residue z.
	z := big.NewInt(2)
	for NewFr(z).Legendre() != -1 {
		z.Add(z, big.NewInt(1))
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(&f.v, q, p)
	qPlus1Half := new(big.Int).Rsh(new(big.Int).Add(q, big.NewInt(1)), 1)
	r := new(big.Int).Exp(&f.v, qPlus1Half, p)

	for {
		if t.Sign() == 0 {
			return Fr{*big.NewInt(0)}, true
		}
		if t.Cmp(big.NewInt(1)) == 0 {
			return Fr{*r}, true
		}
		i := 1
		t2i := new(big.Int).Exp(t, big.NewInt(2), p)
		for i < m && t2i.Cmp(big.NewInt(1)) != 0 {
			t2i.Exp(t2i, big.NewInt(2), p)
			i++
		}
		if i == m {
			return Fr{}, false
		}
		b := new(big.Int).Exp(c, new(big.Int).Lsh(big.NewInt(1), uint(m-i-1)), p)
		m = i
		c.Exp(b, big.NewInt(2), p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
}

// Bytes returns the 32-byte little-endian encoding of f.
func (f Fr) Bytes() []byte {
	out := make([]byte, 32)
	b := f.v.Bytes() // big-endian
	for i, bb := range b {
		out[len(b)-1-i] = bb
	}
	return out
}

// SetBytesFr parses a little-endian byte string of any length into Fr,
// reducing modulo the subgroup order. Callers that must reject
// out-of-range encodings instead of reducing perform their own range
// check first.
func SetBytesFr(b []byte) Fr {
	be := make([]byte, len(b))
	for i, bb := range b {
		be[len(b)-1-i] = bb
	}
	return NewFr(new(big.Int).SetBytes(be))
}
