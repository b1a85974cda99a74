package ring

import (
	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
)

// seedPointCoords returns the public accumulator seed's coordinates.
func seedPointCoords() (field.Fp, field.Fp) {
	s := curve.SeedPoint()
	return s.X, s.Y
}

// RadixColumns holds every register evaluated pointwise on the radix-4
// domain, the form the seven constraint polynomials are built from.
type RadixColumns struct {
	Px, Py, S, B, AccX, AccY, AccIP []field.Fp
}

// ToRadix lifts a Columns (core-domain eval form) into radix-4-domain
// evaluations, interpolating each register to coefficient form first.
func (d Domain) ToRadix(c *Columns) (*RadixColumns, error) {
	lift := func(evals []field.Fp) ([]field.Fp, error) {
		p, err := d.ToCoeffs(evals)
		if err != nil {
			return nil, err
		}
		return d.ToRadix4Evals(p)
	}

	var rc RadixColumns
	var err error
	if rc.Px, err = lift(c.Px); err != nil {
		return nil, err
	}
	if rc.Py, err = lift(c.Py); err != nil {
		return nil, err
	}
	if rc.S, err = lift(c.S); err != nil {
		return nil, err
	}
	if rc.B, err = lift(c.B); err != nil {
		return nil, err
	}
	if rc.AccX, err = lift(c.AccX); err != nil {
		return nil, err
	}
	if rc.AccY, err = lift(c.AccY); err != nil {
		return nil, err
	}
	if rc.AccIP, err = lift(c.AccIP); err != nil {
		return nil, err
	}
	return &rc, nil
}

// mulVec, addVec, subVec perform pointwise vector arithmetic over a
// shared-length evaluation domain.
func mulVec(a, b []field.Fp) []field.Fp {
	out := make([]field.Fp, len(a))
	for i := range a {
		out[i].Mul(&a[i], &b[i])
	}
	return out
}

func addVec(a, b []field.Fp) []field.Fp {
	out := make([]field.Fp, len(a))
	for i := range a {
		out[i].Add(&a[i], &b[i])
	}
	return out
}

func subVec(a, b []field.Fp) []field.Fp {
	out := make([]field.Fp, len(a))
	for i := range a {
		out[i].Sub(&a[i], &b[i])
	}
	return out
}

func oneMinus(a []field.Fp) []field.Fp {
	out := make([]field.Fp, len(a))
	var one field.Fp
	one.SetOne()
	for i := range a {
		out[i].Sub(&one, &a[i])
	}
	return out
}

// Constraints holds the seven constraint-polynomial evaluations on the
// radix-4 domain.
type Constraints struct {
	C1, C2, C3, C4, C5, C6, C7 []field.Fp
}

// Evaluate computes c1..c7 pointwise on the radix-4 domain from rc.
// result is SeedPoint + PK_k + t*B, the claimed boundary the accumulator
// must reach by row N-4.
func (d Domain) Evaluate(rc *RadixColumns, resultX, resultY field.Fp) *Constraints {
	notLast := d.notLast4()
	l0 := d.lagrangeBasisAt(0)
	lnm4 := d.lagrangeBasisAt(d.N - PaddingRows)

	shiftAccIP := Shift4(rc.AccIP)
	shiftAccX := Shift4(rc.AccX)
	shiftAccY := Shift4(rc.AccY)

	bs := mulVec(rc.B, rc.S)
	c1 := mulVec(subVec(subVec(shiftAccIP, rc.AccIP), bs), notLast)

	notB := oneMinus(rc.B)

	// c2 = ( b*(x3*(y1*y2 + a*x1*x2) - (x1*y1 + x2*y2)) + (1-b)*(x3-x1) ) * notLast4
	y1y2 := mulVec(rc.AccY, rc.Py)
	x1x2 := mulVec(rc.AccX, rc.Px)
	aX1X2 := make([]field.Fp, len(x1x2))
	for i := range x1x2 {
		aX1X2[i].Mul(&curve.EdwardsA, &x1x2[i])
	}
	inner := addVec(y1y2, aX1X2)
	x3Inner := mulVec(shiftAccX, inner)
	x1y1 := mulVec(rc.AccX, rc.AccY)
	x2y2 := mulVec(rc.Px, rc.Py)
	sumXY := addVec(x1y1, x2y2)
	bTerm2 := mulVec(rc.B, subVec(x3Inner, sumXY))
	notBTerm2 := mulVec(notB, subVec(shiftAccX, rc.AccX))
	c2 := mulVec(addVec(bTerm2, notBTerm2), notLast)

	// c3 = ( b*(y3*(x1*y2 - x2*y1) - (x1*y1 - x2*y2)) + (1-b)*(y3-y1) ) * notLast4
	x1y2 := mulVec(rc.AccX, rc.Py)
	x2y1 := mulVec(rc.Px, rc.AccY)
	innerY := subVec(x1y2, x2y1)
	y3Inner := mulVec(shiftAccY, innerY)
	diffXY := subVec(x1y1, x2y2)
	bTerm3 := mulVec(rc.B, subVec(y3Inner, diffXY))
	notBTerm3 := mulVec(notB, subVec(shiftAccY, rc.AccY))
	c3 := mulVec(addVec(bTerm3, notBTerm3), notLast)

	// c4 = b * (1 - b)
	c4 := mulVec(rc.B, notB)

	seedX, seedY := seedPointCoords()

	// c5 = (accX - seed_x)*L0 + (accX - result_x)*L_{n-4}
	c5 := addVec(
		mulVec(subVecScalar(rc.AccX, seedX), l0),
		mulVec(subVecScalar(rc.AccX, resultX), lnm4),
	)
	// c6 analogous on Y
	c6 := addVec(
		mulVec(subVecScalar(rc.AccY, seedY), l0),
		mulVec(subVecScalar(rc.AccY, resultY), lnm4),
	)
	// c7 = accIP*L0 + (accIP - 1)*L_{n-4}
	var one field.Fp
	one.SetOne()
	c7 := addVec(
		mulVec(rc.AccIP, l0),
		mulVec(subVecScalar(rc.AccIP, one), lnm4),
	)

	return &Constraints{C1: c1, C2: c2, C3: c3, C4: c4, C5: c5, C6: c6, C7: c7}
}

// subVecScalar subtracts a fixed scalar from every entry of a.
func subVecScalar(a []field.Fp, s field.Fp) []field.Fp {
	out := make([]field.Fp, len(a))
	for i := range a {
		out[i].Sub(&a[i], &s)
	}
	return out
}
