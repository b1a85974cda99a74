// Package ietf implements the IETF ECVRF construction (RFC 9381) over
// Bandersnatch with the SHA-512/Elligator-2 suite.
package ietf

import (
	"crypto/sha512"
	"fmt"
	"math/big"
	"time"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/metrics"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// Proof is an IETF ECVRF proof: the VRF output point, the challenge
// scalar, and the response scalar.
type Proof struct {
	Gamma     curve.Affine
	Challenge field.Fr
	Response  field.Fr
}

// Prove computes gamma = sk*H(alpha) and a Schnorr-style proof of
// knowledge of sk relating gamma to the public key, per RFC 9381 §5.1.
func Prove(sk field.Fr, pk curve.Affine, alpha, ad []byte) (Proof, error) {
	start := time.Now()
	proof, err := prove(sk, pk, alpha, ad)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ProveOps.WithLabelValues("ietf", outcome).Inc()
	metrics.ProveDuration.WithLabelValues("ietf").Observe(time.Since(start).Seconds())
	return proof, err
}

func prove(sk field.Fr, pk curve.Affine, alpha, ad []byte) (Proof, error) {
	h, err := curve.EncodeToCurve(alpha, nil, curve.VariantRO)
	if err != nil {
		return Proof{}, fmt.Errorf("encoding alpha to curve: %w", err)
	}
	gamma := h.GLVScalarMul(sk)

	k := deterministicNonce(sk, h)
	kB := curve.G().GLVScalarMul(k)
	kH := h.GLVScalarMul(k)

	c := challenge(pk, h, gamma, kB, kH, ad)
	s := k.Add(c.Mul(sk))

	return Proof{Gamma: gamma, Challenge: c, Response: s}, nil
}

// Verify recomputes U = s*G - c*PK and V = s*H - c*Gamma and checks the
// challenge derived from (PK, H, Gamma, U, V, ad) matches the proof's.
func Verify(pk curve.Affine, alpha, ad []byte, proof Proof) error {
	start := time.Now()
	err := verify(pk, alpha, ad, proof)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.VerifyOps.WithLabelValues("ietf", outcome).Inc()
	metrics.VerifyDuration.WithLabelValues("ietf").Observe(time.Since(start).Seconds())
	return err
}

func verify(pk curve.Affine, alpha, ad []byte, proof Proof) error {
	h, err := curve.EncodeToCurve(alpha, nil, curve.VariantRO)
	if err != nil {
		return fmt.Errorf("encoding alpha to curve: %w", err)
	}
	if !proof.Gamma.IsOnCurve() {
		return fmt.Errorf("proof gamma not on curve: %w", ringerr.ErrInvalidPoint)
	}

	sG := curve.G().GLVScalarMul(proof.Response)
	cPK := pk.GLVScalarMul(proof.Challenge)
	u := sG.Sub(cPK)

	sH := h.GLVScalarMul(proof.Response)
	cGamma := proof.Gamma.GLVScalarMul(proof.Challenge)
	v := sH.Sub(cGamma)

	expected := challenge(pk, h, proof.Gamma, u, v, ad)
	if !expected.Equal(proof.Challenge) {
		return fmt.Errorf("challenge mismatch: %w", ringerr.ErrVerificationFailed)
	}
	return nil
}

// ProofToHash converts a verified proof into its VRF output, optionally
// clearing the cofactor on Gamma first. The flag is an explicit opt-in
// the caller's suite profile decides, never silently enabled.
func ProofToHash(proof Proof, clearCofactor bool) []byte {
	gamma := proof.Gamma
	if clearCofactor {
		gamma = gamma.ClearCofactor()
	}
	h := sha512.New()
	h.Write([]byte(curve.SuiteString))
	h.Write([]byte{0x03}) // proof_to_hash domain separator, RFC 9381 §5.2
	h.Write(gamma.Bytes())
	h.Write([]byte{0x00})
	return h.Sum(nil)
}

// Bytes encodes the proof as point_to_string(Gamma) ||
// scalar_to_bytes(c, ChallengeLength) || scalar_to_bytes(s, 32),
// scalars little-endian.
func (proof Proof) Bytes() []byte {
	out := make([]byte, 0, 32+curve.ChallengeLength+32)
	out = append(out, proof.Gamma.Bytes()...)
	out = append(out, proof.Challenge.Bytes()...)
	out = append(out, proof.Response.Bytes()...)
	return out
}

// ParseProof decodes an IETF proof from its fixed-width encoding,
// rejecting malformed points and out-of-range scalars.
func ParseProof(b []byte) (Proof, error) {
	want := 32 + curve.ChallengeLength + 32
	if len(b) != want {
		return Proof{}, fmt.Errorf("IETF proof must be %d bytes, got %d: %w", want, len(b), ringerr.ErrInvalidEncoding)
	}
	gamma, err := curve.DecodeAffine(b[:32])
	if err != nil {
		return Proof{}, fmt.Errorf("decoding proof gamma: %w", err)
	}
	c, err := parseScalar(b[32 : 32+curve.ChallengeLength])
	if err != nil {
		return Proof{}, fmt.Errorf("decoding proof challenge: %w", err)
	}
	s, err := parseScalar(b[32+curve.ChallengeLength:])
	if err != nil {
		return Proof{}, fmt.Errorf("decoding proof response: %w", err)
	}
	return Proof{Gamma: gamma, Challenge: c, Response: s}, nil
}

// parseScalar reads a little-endian scalar, rejecting values at or above
// the subgroup order.
func parseScalar(b []byte) (field.Fr, error) {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	v := new(big.Int).SetBytes(be)
	if v.Cmp(field.FrModulus) >= 0 {
		return field.Fr{}, fmt.Errorf("scalar exceeds subgroup order: %w", ringerr.ErrInvalidScalar)
	}
	return field.NewFr(v), nil
}

// deterministicNonce derives the per-proof nonce k deterministically from
// sk and h, RFC 9381 §5.4.2.2's hashed approach generalized to
// Bandersnatch scalars: hash sk alone, keep the second half of that
// digest, concatenate with H's encoding, and hash again.
func deterministicNonce(sk field.Fr, h curve.Affine) field.Fr {
	skDigest := sha512.Sum512(sk.Bytes())
	skHalf := skDigest[32:64]

	hasher := sha512.New()
	hasher.Write(skHalf)
	hasher.Write(h.Bytes())
	digest := hasher.Sum(nil)
	return field.SetBytesFr(digest)
}

// challenge hashes the suite string, the five curve points, and
// associated data into a challenge scalar: the truncated digest is read
// as a big-endian integer and reduced mod r, RFC 9381 §5.4.3's
// challenge_generation.
func challenge(pk, h, gamma, u, v curve.Affine, ad []byte) field.Fr {
	hasher := sha512.New()
	hasher.Write([]byte(curve.SuiteString))
	hasher.Write([]byte{0x02}) // challenge_generation domain separator
	for _, p := range []curve.Affine{pk, h, gamma, u, v} {
		hasher.Write(p.Bytes())
	}
	hasher.Write(ad)
	hasher.Write([]byte{0x00})
	digest := hasher.Sum(nil)
	return field.NewFr(new(big.Int).SetBytes(digest[:curve.ChallengeLength]))
}
