package ring

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/kzg"
	"github.com/chainscore-labs/ringvrf/ringerr"
	"github.com/chainscore-labs/ringvrf/vrf/pedersen"
)

// The wire layout uses 48-byte compressed G1 commitments and 32-byte
// base-field elements.
const (
	commitmentSize   = 48
	fieldElementSize = 32
)

// Bytes encodes a ring root as C_Px || C_Py || C_S, three compressed G1
// points.
func (rc *RootCommitments) Bytes() []byte {
	out := make([]byte, 0, 3*commitmentSize)
	for _, c := range []kzg.Commitment{rc.CPx, rc.CPy, rc.CS} {
		b := c.Point.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// ParseRootCommitments decodes a 144-byte ring root.
func ParseRootCommitments(b []byte) (*RootCommitments, error) {
	if len(b) != 3*commitmentSize {
		return nil, fmt.Errorf("ring root must be %d bytes, got %d: %w", 3*commitmentSize, len(b), ringerr.ErrInvalidEncoding)
	}
	var out RootCommitments
	for i, dst := range []*kzg.Commitment{&out.CPx, &out.CPy, &out.CS} {
		var pt bls12381.G1Affine
		if _, err := pt.SetBytes(b[i*commitmentSize : (i+1)*commitmentSize]); err != nil {
			return nil, fmt.Errorf("decoding ring root commitment %d: %w", i, ringerr.ErrInvalidEncoding)
		}
		dst.Point = pt
	}
	return &out, nil
}

// Bytes encodes the proof as the Pedersen proof it wraps, followed by
// C_b || C_accIP || C_accX || C_accY || p_x(z) || p_y(z) ||
// s(z) || b(z) || a_ip(z) || a_x(z) || a_y(z) || C_Q || L(z*w) || pi_agg
// || pi_lin. Opening proofs contribute only their quotient commitment:
// the claimed values they open to are already present earlier in the
// encoding (register_evaluations and the shifted linearization
// evaluation), so the verifier recomputes them rather than re-reading a
// redundant copy.
func (proof *Proof) Bytes() []byte {
	out := make([]byte, 0, 784)
	out = append(out, proof.Pedersen.Bytes()...)
	for _, c := range []kzg.Commitment{proof.CB, proof.CAccIP, proof.CAccX, proof.CAccY} {
		b := c.Point.Bytes()
		out = append(out, b[:]...)
	}
	ev := proof.Evals
	for _, v := range []field.Fp{ev.Px, ev.Py, ev.S, ev.B, ev.AccIP, ev.AccX, ev.AccY} {
		out = append(out, field.FpBytesLE(&v)...)
	}
	cq := proof.CQ.Point.Bytes()
	out = append(out, cq[:]...)
	out = append(out, field.FpBytesLE(&proof.LZetaOmega)...)
	piAgg := proof.PiAgg.Quotient.Bytes()
	out = append(out, piAgg[:]...)
	piLin := proof.PiLin.Quotient.Bytes()
	out = append(out, piLin[:]...)
	return out
}

// ParseProof decodes a Ring VRF proof from its fixed-width wire encoding.
// The opening proofs' claimed values are reconstructed by the verifier
// from the decoded register evaluations rather than carried on the wire
// (see Bytes); ParseProof leaves PiAgg.Value/PiLin.Value zero and Verify
// fills them in before the pairing check.
func ParseProof(b []byte) (*Proof, error) {
	const want = 192 + 4*commitmentSize + 7*fieldElementSize + commitmentSize + fieldElementSize + 2*commitmentSize
	if len(b) != want {
		return nil, fmt.Errorf("ring proof must be %d bytes, got %d: %w", want, len(b), ringerr.ErrInvalidEncoding)
	}

	off := 0
	pedProof, err := pedersen.ParseProof(b[off : off+192])
	if err != nil {
		return nil, fmt.Errorf("decoding pedersen sub-proof: %w", err)
	}
	off += 192

	readCommitment := func() (kzg.Commitment, error) {
		var p bls12381.G1Affine
		if _, err := p.SetBytes(b[off : off+commitmentSize]); err != nil {
			return kzg.Commitment{}, fmt.Errorf("decoding G1 commitment: %w", ringerr.ErrInvalidEncoding)
		}
		off += commitmentSize
		return kzg.Commitment{Point: p}, nil
	}
	readFp := func() field.Fp {
		v := field.FpSetBytesLE(b[off : off+fieldElementSize])
		off += fieldElementSize
		return v
	}

	cB, err := readCommitment()
	if err != nil {
		return nil, err
	}
	cAccIP, err := readCommitment()
	if err != nil {
		return nil, err
	}
	cAccX, err := readCommitment()
	if err != nil {
		return nil, err
	}
	cAccY, err := readCommitment()
	if err != nil {
		return nil, err
	}

	ev := RegisterEvals{
		Px:    readFp(),
		Py:    readFp(),
		S:     readFp(),
		B:     readFp(),
		AccIP: readFp(),
		AccX:  readFp(),
		AccY:  readFp(),
	}

	cQ, err := readCommitment()
	if err != nil {
		return nil, err
	}
	lZetaOmega := readFp()

	piAggQ, err := readCommitment()
	if err != nil {
		return nil, err
	}
	piLinQ, err := readCommitment()
	if err != nil {
		return nil, err
	}

	return &Proof{
		Pedersen:   pedProof,
		CB:         cB,
		CAccIP:     cAccIP,
		CAccX:      cAccX,
		CAccY:      cAccY,
		Evals:      ev,
		CQ:         cQ,
		LZetaOmega: lZetaOmega,
		PiAgg:      kzg.OpeningProof{Quotient: piAggQ.Point},
		PiLin:      kzg.OpeningProof{Quotient: piLinQ.Point},
	}, nil
}
