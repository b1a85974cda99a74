// Package ring implements the Ring VRF: a Pedersen VRF proof plus a
// zero-knowledge proof that the prover's blinded key corresponds to a
// member of a fixed public ring, built on a Plonk-like polynomial IOP
// with KZG commitments over BLS12-381.
package ring

import (
	"fmt"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// PaddingRows is the number of trailing rows reserved on every column
// for boundary constraints.
const PaddingRows = 4

// Columns holds one evaluation-form register: fixed columns (Px, Py, S)
// are shared by every proof over a given ring; witness columns (B, AccX,
// AccY, AccIP) are produced fresh per proof.
type Columns struct {
	N int // core domain size (power of two)

	Px, Py, S []field.Fp // fixed, length N

	B, AccX, AccY, AccIP []field.Fp // witness, length N
}

// BuildFixedColumns lays out a ring of public keys into the Px/Py/S
// fixed columns: the keys, padded with curve.PaddingPoint up to
// maxRing, then the power-of-two multiples of the blinding base
// (2^j * B at row maxRing+j, the rows the prover's blinding bits select
// against), and finally PaddingRows zero rows for the boundary
// constraints. The selector is 1 exactly on the key rows.
func BuildFixedColumns(ringKeys []curve.Affine, n, maxRing int) (*Columns, error) {
	if len(ringKeys) > maxRing {
		return nil, fmt.Errorf("ring size %d exceeds max ring %d: %w", len(ringKeys), maxRing, ringerr.ErrInvalidEncoding)
	}
	if n <= maxRing+PaddingRows {
		return nil, fmt.Errorf("domain size %d too small for max ring %d: %w", n, maxRing, ringerr.ErrInternalConsistency)
	}

	c := &Columns{N: n, Px: make([]field.Fp, n), Py: make([]field.Fp, n), S: make([]field.Fp, n)}

	pad := curve.PaddingPoint()
	for i := 0; i < maxRing; i++ {
		p := pad
		if i < len(ringKeys) {
			p = ringKeys[i]
		}
		c.Px[i] = p.X
		c.Py[i] = p.Y

		var one field.Fp
		one.SetOne()
		c.S[i] = one
	}
	h := curve.B()
	for i := maxRing; i < n-PaddingRows; i++ {
		c.Px[i] = h.X
		c.Py[i] = h.Y
		h = h.Double()
	}
	return c, nil
}

// BuildWitnessColumns fills in the B/AccX/AccY/AccIP witness columns
// for a prover at ring index proverIndex holding blinding scalar t.
// fixed must already hold Px/Py/S for the same ring/domain.
func BuildWitnessColumns(fixed *Columns, proverIndex int, maxRing int, t field.Fr) (*Columns, error) {
	n := fixed.N
	if proverIndex < 0 || proverIndex >= maxRing {
		return nil, fmt.Errorf("prover index %d out of range [0,%d): %w", proverIndex, maxRing, ringerr.ErrInvalidEncoding)
	}

	tBits := t.BigInt()
	if tBits.BitLen() > n-PaddingRows-maxRing {
		return nil, fmt.Errorf("blinding scalar needs %d bit rows, domain leaves %d: %w", tBits.BitLen(), n-PaddingRows-maxRing, ringerr.ErrInternalConsistency)
	}

	b := make([]field.Fp, n)
	var one field.Fp
	one.SetOne()
	b[proverIndex] = one
	for i := 0; i < tBits.BitLen(); i++ {
		if tBits.Bit(i) == 1 {
			b[maxRing+i] = one
		}
	}

	// The accumulators run through row n-4; the last PaddingRows-1 rows
	// stay zero, masked out of the constraint system by the degree-3
	// masking factor the quotient is multiplied by.
	accX := make([]field.Fp, n)
	accY := make([]field.Fp, n)
	accIP := make([]field.Fp, n)

	seed := curve.SeedPoint()
	accX[0] = seed.X
	accY[0] = seed.Y

	acc := seed
	var ipAcc field.Fp
	for i := 1; i <= n-PaddingRows; i++ {
		if !b[i-1].IsZero() {
			acc = acc.Add(curve.Affine{X: fixed.Px[i-1], Y: fixed.Py[i-1]})
		}

		var term field.Fp
		term.Mul(&b[i-1], &fixed.S[i-1])
		ipAcc.Add(&ipAcc, &term)

		accX[i] = acc.X
		accY[i] = acc.Y
		accIP[i] = ipAcc
	}

	return &Columns{N: n, B: b, AccX: accX, AccY: accY, AccIP: accIP}, nil
}

// Result returns the accumulator's claimed final value SeedPoint + PK_k +
// t*B, the boundary every honest proof's last non-padding row must
// equal.
func Result(pk curve.Affine, t field.Fr) curve.Affine {
	return curve.SeedPoint().Add(pk).Add(curve.B().GLVScalarMul(t))
}
