package curve

import (
	"fmt"
	"math/big"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// fpHalf is (p-1)/2, the threshold the compressed encoding uses to pick
// x's sign bit: bit 7 of the last byte is 1 iff x >= (p-1)/2.
var fpHalf = new(big.Int).Rsh(new(big.Int).Sub(field.FpModulus, big.NewInt(1)), 1)

// xSignBit reports whether x's canonical representative is >= (p-1)/2.
func xSignBit(x *field.Fp) bool {
	return field.FpToBigInt(x).Cmp(fpHalf) >= 0
}

// Affine is a Bandersnatch point in affine Twisted Edwards coordinates.
// The identity element is (0, 1).
type Affine struct {
	X, Y field.Fp
}

// Identity returns the Twisted Edwards neutral element.
func Identity() Affine {
	var a Affine
	a.X.SetZero()
	a.Y.SetOne()
	return a
}

// IsIdentity reports whether p is the neutral element.
func (p Affine) IsIdentity() bool {
	return p.X.IsZero() && p.Y.IsOne()
}

// Equal reports whether p and q represent the same affine point.
func (p Affine) Equal(q Affine) bool {
	return p.X.Equal(&q.X) && p.Y.Equal(&q.Y)
}

// IsOnCurve reports whether p satisfies a·x² + y² = 1 + d·x²·y².
func (p Affine) IsOnCurve() bool {
	var x2, y2, lhs, rhs, dx2y2 field.Fp
	x2.Square(&p.X)
	y2.Square(&p.Y)

	lhs.Mul(&x2, &EdwardsA)
	lhs.Add(&lhs, &y2)

	dx2y2.Mul(&x2, &y2)
	dx2y2.Mul(&dx2y2, &EdwardsD)
	rhs.SetOne()
	rhs.Add(&rhs, &dx2y2)

	return lhs.Equal(&rhs)
}

// Add returns p + q using the unified Twisted Edwards addition law:
//
//	x3 = (x1*y2 + y1*x2) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 - a*x1*x2) / (1 - d*x1*x2*y1*y2)
func (p Affine) Add(q Affine) Affine {
	var x1x2, y1y2, x1y2, y1x2, dx1x2y1y2 field.Fp
	x1x2.Mul(&p.X, &q.X)
	y1y2.Mul(&p.Y, &q.Y)
	x1y2.Mul(&p.X, &q.Y)
	y1x2.Mul(&p.Y, &q.X)

	dx1x2y1y2.Mul(&x1x2, &y1y2)
	dx1x2y1y2.Mul(&dx1x2y1y2, &EdwardsD)

	var one, denomAdd, denomSub field.Fp
	one.SetOne()
	denomAdd.Add(&one, &dx1x2y1y2)
	denomSub.Sub(&one, &dx1x2y1y2)

	var invAdd, invSub field.Fp
	invAdd.Inverse(&denomAdd)
	invSub.Inverse(&denomSub)

	var numX, numY, aX1X2 field.Fp
	numX.Add(&x1y2, &y1x2)
	aX1X2.Mul(&x1x2, &EdwardsA)
	numY.Sub(&y1y2, &aX1X2)

	var out Affine
	out.X.Mul(&numX, &invAdd)
	out.Y.Mul(&numY, &invSub)
	return out
}

// Double returns p + p.
func (p Affine) Double() Affine { return p.Add(p) }

// Neg returns -p = (-x, y).
func (p Affine) Neg() Affine {
	var out Affine
	out.X.Neg(&p.X)
	out.Y = p.Y
	return out
}

// Sub returns p - q.
func (p Affine) Sub(q Affine) Affine { return p.Add(q.Neg()) }

// ScalarMul returns [k]p via a plain binary double-and-add chain over the
// bits of k, least significant bit first. Callers on the hot path (public-key and proof verification)
// should prefer GLVScalarMul; this is the straightforward fallback used
// when an endomorphism decomposition is not warranted (small scalars,
// one-off multiplications).
func (p Affine) ScalarMul(k field.Fr) Affine {
	acc := Identity()
	base := p
	bi := k.BigInt()
	for i := 0; i < bi.BitLen(); i++ {
		if bi.Bit(i) == 1 {
			acc = acc.Add(base)
		}
		base = base.Double()
	}
	return acc
}

// ClearCofactor returns [4]p, projecting an arbitrary curve point into the
// prime-order subgroup.
func (p Affine) ClearCofactor() Affine {
	return p.Double().Double()
}

// The 32-byte compressed point format is the little-endian encoding of
// y, with the curve equation used to recover x up to sign and bit 7 of
// the last byte set iff x >= (p-1)/2 choosing the root.

// Bytes returns the 32-byte compressed encoding of p: y in little-endian
// with the sign of x folded into the top bit.
func (p Affine) Bytes() []byte {
	out := field.FpBytesLE(&p.Y)
	if xSignBit(&p.X) {
		out[31] |= 0x80
	}
	return out
}

// DecodeAffine parses a 32-byte compressed point, recovering x from the
// curve equation and rejecting encodings that do not land on the curve.
func DecodeAffine(b []byte) (Affine, error) {
	if len(b) != 32 {
		return Affine{}, fmt.Errorf("point must be 32 bytes, got %d: %w", len(b), ringerr.ErrInvalidEncoding)
	}
	sign := b[31] & 0x80
	yb := make([]byte, 32)
	copy(yb, b)
	yb[31] &= 0x7f

	// Range-check the raw integer before it is reduced into the field.
	be := make([]byte, len(yb))
	for i, c := range yb {
		be[len(yb)-1-i] = c
	}
	yInt := new(big.Int).SetBytes(be)
	if yInt.Cmp(field.FpModulus) >= 0 {
		return Affine{}, fmt.Errorf("y out of range: %w", ringerr.ErrInvalidEncoding)
	}
	y := field.FpFromBigInt(yInt)

	x, err := recoverX(y, sign != 0)
	if err != nil {
		return Affine{}, err
	}
	p := Affine{X: x, Y: y}
	if !p.IsOnCurve() {
		return Affine{}, fmt.Errorf("decoded point not on curve: %w", ringerr.ErrInvalidPoint)
	}
	return p, nil
}

// recoverX solves a·x² + y² = 1 + d·x²·y² for x², takes its square root,
// and picks the root whose sign bit (x >= (p-1)/2) matches wantSignBit.
func recoverX(y field.Fp, wantSignBit bool) (field.Fp, error) {
	var y2, dy2, num, den field.Fp
	y2.Square(&y)
	dy2.Mul(&y2, &EdwardsD)

	var one field.Fp
	one.SetOne()
	num.Sub(&one, &y2)

	// a*x^2 - d*y^2*x^2 = 1 - y^2  =>  x^2*(a - d*y^2) = 1 - y^2
	den.Sub(&EdwardsA, &dy2)

	var denInv field.Fp
	if den.IsZero() {
		return field.Fp{}, fmt.Errorf("degenerate x^2 denominator: %w", ringerr.ErrInvalidPoint)
	}
	denInv.Inverse(&den)

	var x2 field.Fp
	x2.Mul(&num, &denInv)

	var x field.Fp
	if x.Sqrt(&x2) == nil {
		return field.Fp{}, fmt.Errorf("no square root for decoded x^2: %w", ringerr.ErrInvalidPoint)
	}

	if xSignBit(&x) != wantSignBit {
		x.Neg(&x)
	}
	return x, nil
}
