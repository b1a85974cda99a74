package kzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/chainscore-labs/ringvrf/field"
)

// AggregateCommitments returns sum(weights[i] * commitments[i].Point),
// the MSM the ring verifier uses to fold the register commitments into
// one under transcript-derived weights.
func AggregateCommitments(weights []field.Fp, commitments ...Commitment) Commitment {
	var acc bls12381.G1Affine
	for i, c := range commitments {
		var term bls12381.G1Affine
		term.ScalarMultiplication(&c.Point, field.FpToBigInt(&weights[i]))
		acc.Add(&acc, &term)
	}
	return Commitment{Point: acc}
}
