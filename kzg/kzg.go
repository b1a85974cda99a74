package kzg

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc"
	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/poly"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// Commitment is a KZG commitment: a single G1 point.
type Commitment struct {
	Point bls12381.G1Affine
}

// OpeningProof is a single KZG opening: the quotient commitment plus the
// claimed evaluation.
type OpeningProof struct {
	Quotient bls12381.G1Affine
	Value    field.Fp
}

// Commit returns [p(tau)]_1 via a multi-scalar multiplication over the
// SRS powers of tau.
func Commit(srs *SRS, p poly.Polynomial) (Commitment, error) {
	if p.Degree() > srs.Degree() {
		return Commitment{}, fmt.Errorf("polynomial degree %d exceeds SRS degree %d: %w", p.Degree(), srs.Degree(), ringerr.ErrInternalConsistency)
	}
	if p.IsZero() {
		var inf bls12381.G1Affine
		return Commitment{Point: inf}, nil
	}
	scalars := make([]bls12381fr.Element, len(p.Coeffs))
	for i, c := range p.Coeffs {
		scalars[i].Set(&c)
	}
	var result bls12381.G1Affine
	if _, err := result.MultiExp(srs.G1[:len(scalars)], scalars, ecc.MultiExpConfig{}); err != nil {
		return Commitment{}, fmt.Errorf("KZG commit MSM: %w", ringerr.ErrInternalConsistency)
	}
	return Commitment{Point: result}, nil
}

// Open produces an opening proof that p(z) = p.Eval(z), via the standard
// synthetic-division quotient (p(X) - p(z)) / (X - z) committed with
// Commit.
func Open(srs *SRS, p poly.Polynomial, z field.Fp) (OpeningProof, error) {
	value := p.Eval(z)

	var negValue field.Fp
	negValue.Neg(&value)
	shifted := poly.Add(p, poly.New([]field.Fp{negValue}))

	quotientPoly, err := poly.DivByLinear(shifted, z)
	if err != nil {
		return OpeningProof{}, fmt.Errorf("computing opening quotient: %w", err)
	}
	qc, err := Commit(srs, quotientPoly)
	if err != nil {
		return OpeningProof{}, err
	}
	return OpeningProof{Quotient: qc.Point, Value: value}, nil
}

// Verify checks commitment.Point = [p(tau)]_1 opens to proof.Value at z,
// via the single pairing equation:
//
//	e(C - [value]*G1, G2) == e(Quotient, tau*G2 - [z]*G2)
func Verify(srs *SRS, commitment Commitment, z field.Fp, proof OpeningProof) (bool, error) {
	var valueG1 bls12381.G1Affine
	valueScalar := field.FpToBigInt(&proof.Value)
	var g1Gen bls12381.G1Affine
	g1Gen.Set(&srs.G1[0])
	valueG1.ScalarMultiplication(&g1Gen, valueScalar)

	var lhsPoint bls12381.G1Affine
	lhsPoint.Sub(&commitment.Point, &valueG1)

	var zG2 bls12381.G2Affine
	zScalar := field.FpToBigInt(&z)
	var g2Gen bls12381.G2Affine
	g2Gen.Set(&srs.G2[0])
	zG2.ScalarMultiplication(&g2Gen, zScalar)

	var rhsG2 bls12381.G2Affine
	rhsG2.Sub(&srs.G2[1], &zG2)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{lhsPoint, proof.Quotient},
		[]bls12381.G2Affine{g2NegGenerator(srs.G2[0]), rhsG2},
	)
	if err != nil {
		return false, fmt.Errorf("pairing check: %w", ringerr.ErrInternalConsistency)
	}
	return ok, nil
}

// g2NegGenerator returns -g, used to fold e(lhs, G2) * e(quotient, rhs)^-1
// into a single product-equals-one PairingCheck call.
func g2NegGenerator(g bls12381.G2Affine) bls12381.G2Affine {
	var out bls12381.G2Affine
	out.Neg(&g)
	return out
}

// BatchVerify checks n independent openings at (possibly distinct)
// points with a single pairing check, combining them with powers of a
// freshly drawn random coefficient.
func BatchVerify(srs *SRS, commitments []Commitment, zs []field.Fp, proofs []OpeningProof) (bool, error) {
	if len(commitments) != len(zs) || len(zs) != len(proofs) {
		return false, fmt.Errorf("batch verify: mismatched input lengths: %w", ringerr.ErrInternalConsistency)
	}

	// The combiner only has to be unpredictable to the prover; it is not
	// part of the transcript, so it is drawn directly from the system RNG.
	var r bls12381fr.Element
	if _, err := r.SetRandom(); err != nil {
		return false, fmt.Errorf("batch verify: drawing combiner: %w", ringerr.ErrInternalConsistency)
	}

	var accC, accQ bls12381.G1Affine
	var g1Gen bls12381.G1Affine
	g1Gen.Set(&srs.G1[0])

	var ri bls12381fr.Element
	ri.SetOne()
	for i := range commitments {
		riBig := new(big.Int)
		ri.BigInt(riBig)

		// r^i * (C_i - value_i*G1 + z_i*Q_i)
		var open bls12381.G1Affine
		var valG1 bls12381.G1Affine
		valG1.ScalarMultiplication(&g1Gen, field.FpToBigInt(&proofs[i].Value))
		open.Sub(&commitments[i].Point, &valG1)
		var zq bls12381.G1Affine
		zq.ScalarMultiplication(&proofs[i].Quotient, field.FpToBigInt(&zs[i]))
		open.Add(&open, &zq)

		var term bls12381.G1Affine
		term.ScalarMultiplication(&open, riBig)
		accC.Add(&accC, &term)

		var qTerm bls12381.G1Affine
		qTerm.ScalarMultiplication(&proofs[i].Quotient, riBig)
		accQ.Add(&accQ, &qTerm)

		ri.Mul(&ri, &r)
	}

	var g2Gen bls12381.G2Affine
	g2Gen.Set(&srs.G2[0])

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{accC, accQ},
		[]bls12381.G2Affine{g2NegGenerator(g2Gen), srs.G2[1]},
	)
	if err != nil {
		return false, fmt.Errorf("batch pairing check: %w", ringerr.ErrInternalConsistency)
	}
	return ok, nil
}
