package ring

import (
	"fmt"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/poly"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// Alphas are the seven transcript-derived constraint-aggregation
// challenges.
type Alphas [7]field.Fp

// AggregateEvals combines c1..c7 pointwise on the radix-4 domain with the
// given challenges: C_agg = sum alpha_i * c_i.
func AggregateEvals(cs *Constraints, alphas Alphas) []field.Fp {
	all := [][]field.Fp{cs.C1, cs.C2, cs.C3, cs.C4, cs.C5, cs.C6, cs.C7}
	n := len(all[0])
	out := make([]field.Fp, n)
	for k, c := range all {
		for i := range c {
			var term field.Fp
			term.Mul(&c[i], &alphas[k])
			out[i].Add(&out[i], &term)
		}
	}
	return out
}

// maskingFactor returns the degree-3 polynomial prod_{k=1..3}(X -
// omega^(n-k)), which makes the aggregated constraint numerator exactly
// divisible by Z_H(X) = X^n - 1.
func (d Domain) maskingFactor() poly.Polynomial {
	p := poly.New([]field.Fp{oneFp()})
	for k := 1; k <= 3; k++ {
		root := d.pow(d.Omega, d.N-k)
		p = poly.MulLinear(p, root)
	}
	return p
}

func oneFp() field.Fp {
	var o field.Fp
	o.SetOne()
	return o
}

// WeightedSumPolys returns sum(weights[i] * polys[i]), the aggregated
// register polynomial the prover opens once at zeta and the verifier
// reconstructs via MSM over commitments.
func WeightedSumPolys(weights []field.Fp, polys ...poly.Polynomial) poly.Polynomial {
	out := poly.Polynomial{}
	for i, p := range polys {
		out = poly.Add(out, poly.ScalarMul(weights[i], p))
	}
	return out
}

// Quotient computes Q(X) = (C_agg(X) * maskingFactor(X)) / Z_H(X), given
// the pointwise aggregated constraint evaluations on the radix-4 domain.
func (d Domain) Quotient(aggEvals []field.Fp) (poly.Polynomial, error) {
	aggCoeffs, err := poly.INTT(aggEvals, 4*d.N, d.Omega4)
	if err != nil {
		return poly.Polynomial{}, fmt.Errorf("inverse NTT of aggregated constraints: %w", err)
	}
	aggPoly := poly.New(aggCoeffs)

	masked := poly.Mul(aggPoly, d.maskingFactor())

	q, err := poly.DivByVanishing(masked, d.N)
	if err != nil {
		return poly.Polynomial{}, fmt.Errorf("dividing by Z_H: %w", ringerr.ErrInternalConsistency)
	}
	return q, nil
}
