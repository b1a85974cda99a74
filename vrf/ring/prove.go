package ring

import (
	"fmt"
	"time"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/kzg"
	"github.com/chainscore-labs/ringvrf/metrics"
	"github.com/chainscore-labs/ringvrf/transcript"
	"github.com/chainscore-labs/ringvrf/vrf/pedersen"
)

// RootCommitments are the three KZG commitments to a ring's fixed
// columns, shared by every proof over that ring.
type RootCommitments struct {
	CPx, CPy, CS kzg.Commitment
}

// BuildRoot commits the fixed columns of a ring once; every subsequent
// proof over the same ring reuses these commitments.
func BuildRoot(d Domain, srs *kzg.SRS, fixed *Columns) (*RootCommitments, error) {
	pxPoly, err := d.ToCoeffs(fixed.Px)
	if err != nil {
		return nil, err
	}
	pyPoly, err := d.ToCoeffs(fixed.Py)
	if err != nil {
		return nil, err
	}
	sPoly, err := d.ToCoeffs(fixed.S)
	if err != nil {
		return nil, err
	}

	cPx, err := kzg.Commit(srs, pxPoly)
	if err != nil {
		return nil, err
	}
	cPy, err := kzg.Commit(srs, pyPoly)
	if err != nil {
		return nil, err
	}
	cS, err := kzg.Commit(srs, sPoly)
	if err != nil {
		return nil, err
	}
	return &RootCommitments{CPx: cPx, CPy: cPy, CS: cS}, nil
}

// Proof is a complete Ring VRF proof: the Pedersen proof it wraps, plus
// the ring-membership proof record.
type Proof struct {
	Pedersen pedersen.Proof

	CB, CAccIP, CAccX, CAccY kzg.Commitment
	Evals                    RegisterEvals
	CQ                       kzg.Commitment
	LZetaOmega               field.Fp
	PiAgg, PiLin             kzg.OpeningProof
}

// Prove builds a full Ring VRF proof: the underlying Pedersen proof plus a
// zero-knowledge certification that the blinded key corresponds to a
// member of the ring committed to by root.
func Prove(d Domain, srs *kzg.SRS, root *RootCommitments, fixed *Columns, proverIndex, maxRing int, sk field.Fr, pk curve.Affine, alpha, ad []byte) (*Proof, error) {
	start := time.Now()
	proof, err := prove(d, srs, root, fixed, proverIndex, maxRing, sk, pk, alpha, ad)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ProveOps.WithLabelValues("ring", outcome).Inc()
	metrics.ProveDuration.WithLabelValues("ring").Observe(time.Since(start).Seconds())
	return proof, err
}

func prove(d Domain, srs *kzg.SRS, root *RootCommitments, fixed *Columns, proverIndex, maxRing int, sk field.Fr, pk curve.Affine, alpha, ad []byte) (*Proof, error) {
	pedProof, t, err := pedersen.Prove(sk, pk, alpha, ad)
	if err != nil {
		return nil, fmt.Errorf("pedersen sub-proof: %w", err)
	}

	witness, err := BuildWitnessColumns(fixed, proverIndex, maxRing, t)
	if err != nil {
		return nil, err
	}

	bPoly, err := d.ToCoeffs(witness.B)
	if err != nil {
		return nil, err
	}
	accIPPoly, err := d.ToCoeffs(witness.AccIP)
	if err != nil {
		return nil, err
	}
	accXPoly, err := d.ToCoeffs(witness.AccX)
	if err != nil {
		return nil, err
	}
	accYPoly, err := d.ToCoeffs(witness.AccY)
	if err != nil {
		return nil, err
	}

	cB, err := kzg.Commit(srs, bPoly)
	if err != nil {
		return nil, err
	}
	cAccIP, err := kzg.Commit(srs, accIPPoly)
	if err != nil {
		return nil, err
	}
	cAccX, err := kzg.Commit(srs, accXPoly)
	if err != nil {
		return nil, err
	}
	cAccY, err := kzg.Commit(srs, accYPoly)
	if err != nil {
		return nil, err
	}

	tr := transcript.New(curve.SuiteString)
	tr.AppendBytes("vk", concatBytes(serializeG1(root.CPx), serializeG1(root.CPy), serializeG1(root.CS)))
	tr.AppendBytes("instance", serializeAffine(pedProof.BlindedPK))
	tr.AppendBytes("committed_cols", concatBytes(serializeG1(cB), serializeG1(cAccIP), serializeG1(cAccX), serializeG1(cAccY)))

	var alphas Alphas
	for i := range alphas {
		alphas[i] = tr.ChallengeFp("constraints_aggregation")
	}

	rc, err := d.ToRadix(&Columns{N: d.N, Px: fixed.Px, Py: fixed.Py, S: fixed.S, B: witness.B, AccX: witness.AccX, AccY: witness.AccY, AccIP: witness.AccIP})
	if err != nil {
		return nil, err
	}

	result := Result(pk, t)
	cs := d.Evaluate(rc, result.X, result.Y)
	aggEvals := AggregateEvals(cs, alphas)
	qPoly, err := d.Quotient(aggEvals)
	if err != nil {
		return nil, err
	}
	cQ, err := kzg.Commit(srs, qPoly)
	if err != nil {
		return nil, err
	}

	tr.AppendBytes("quotient", serializeG1(cQ))
	zeta := tr.ChallengeFp("evaluation_point")

	pxPoly, err := d.ToCoeffs(fixed.Px)
	if err != nil {
		return nil, err
	}
	pyPoly, err := d.ToCoeffs(fixed.Py)
	if err != nil {
		return nil, err
	}
	sPoly, err := d.ToCoeffs(fixed.S)
	if err != nil {
		return nil, err
	}

	ev := RegisterEvals{
		Px:    pxPoly.Eval(zeta),
		Py:    pyPoly.Eval(zeta),
		S:     sPoly.Eval(zeta),
		B:     bPoly.Eval(zeta),
		AccIP: accIPPoly.Eval(zeta),
		AccX:  accXPoly.Eval(zeta),
		AccY:  accYPoly.Eval(zeta),
	}

	tr.AppendBytes("register_evaluations", serializeFpSlice(ev.Px, ev.Py, ev.S, ev.B, ev.AccIP, ev.AccX, ev.AccY))

	omegaPowNm4 := d.pow(d.Omega, d.N-PaddingRows)
	var notLast4Zeta field.Fp
	notLast4Zeta.Sub(&zeta, &omegaPowNm4)

	lPoly := Linearize(accIPPoly, accXPoly, accYPoly, alphas, ev, notLast4Zeta)

	var zetaOmega field.Fp
	zetaOmega.Mul(&zeta, &d.Omega)
	lZetaOmega := lPoly.Eval(zetaOmega)

	tr.AppendFp("shifted_linearization_evaluation", lZetaOmega)

	var nus [8]field.Fp
	for i := range nus {
		nus[i] = tr.ChallengeFp("kzg_aggregation")
	}

	aggPoly := WeightedSumPolys(nus[:], pxPoly, pyPoly, sPoly, bPoly, accIPPoly, accXPoly, accYPoly, qPoly)

	piAgg, err := kzg.Open(srs, aggPoly, zeta)
	if err != nil {
		return nil, fmt.Errorf("opening aggregated register polynomial: %w", err)
	}
	piLin, err := kzg.Open(srs, lPoly, zetaOmega)
	if err != nil {
		return nil, fmt.Errorf("opening linearization polynomial: %w", err)
	}

	return &Proof{
		Pedersen:    pedProof,
		CB:          cB,
		CAccIP:      cAccIP,
		CAccX:       cAccX,
		CAccY:       cAccY,
		Evals:       ev,
		CQ:          cQ,
		LZetaOmega:  lZetaOmega,
		PiAgg:       piAgg,
		PiLin:       piLin,
	}, nil
}

