package ring

import (
	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/poly"
)

// RegisterEvals holds the seven register polynomials evaluated at the
// challenge point zeta.
type RegisterEvals struct {
	Px, Py, S, B, AccIP, AccX, AccY field.Fp
}

// linearizationCoeffs computes the scalar multipliers L1..L3 are scaled
// by, derived from the ζ-evaluated registers: c1 is linear in accIP's
// next row alone, c2 in accX's next row alone, c3 in accY's next row
// alone, each gated by notLast4(ζ).
func linearizationCoeffs(ev RegisterEvals, notLast4Zeta field.Fp) (c1, c2, c3 field.Fp) {
	var one field.Fp
	one.SetOne()

	c1 = notLast4Zeta

	var y1y2, x1x2, aX1X2, inner field.Fp
	y1y2.Mul(&ev.AccY, &ev.Py)
	x1x2.Mul(&ev.AccX, &ev.Px)
	aX1X2.Mul(&curve.EdwardsA, &x1x2)
	inner.Add(&y1y2, &aX1X2)

	var bInner, notB, notBTerm, gate2 field.Fp
	bInner.Mul(&ev.B, &inner)
	notB.Sub(&one, &ev.B)
	notBTerm = notB
	gate2.Add(&bInner, &notBTerm)
	c2.Mul(&gate2, &notLast4Zeta)

	var x1y2, x2y1, innerY, bInnerY, gate3 field.Fp
	x1y2.Mul(&ev.AccX, &ev.Py)
	x2y1.Mul(&ev.Px, &ev.AccY)
	innerY.Sub(&x1y2, &x2y1)
	bInnerY.Mul(&ev.B, &innerY)
	gate3.Add(&bInnerY, &notB)
	c3.Mul(&gate3, &notLast4Zeta)

	return c1, c2, c3
}

// Linearize builds L(X) = alpha1*L1(X) + alpha2*L2(X) + alpha3*L3(X),
// where L1/L2/L3 are the accIP/accX/accY coefficient-form polynomials
// scaled by the closed-form coefficients derived from the ζ-evaluated
// registers.
func Linearize(accIPPoly, accXPoly, accYPoly poly.Polynomial, alphas Alphas, ev RegisterEvals, notLast4Zeta field.Fp) poly.Polynomial {
	c1, c2, c3 := linearizationCoeffs(ev, notLast4Zeta)

	var s1, s2, s3 field.Fp
	s1.Mul(&alphas[0], &c1)
	s2.Mul(&alphas[1], &c2)
	s3.Mul(&alphas[2], &c3)

	l := poly.ScalarMul(s1, accIPPoly)
	l = poly.Add(l, poly.ScalarMul(s2, accXPoly))
	l = poly.Add(l, poly.ScalarMul(s3, accYPoly))
	return l
}
