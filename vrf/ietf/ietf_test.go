package ietf

import (
	"math/big"
	"testing"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
)

func testKeypair(seed int64) (field.Fr, curve.Affine) {
	sk := field.NewFr(big.NewInt(seed))
	pk := curve.G().GLVScalarMul(sk)
	return sk, pk
}

func TestProveVerifyRoundTrip(t *testing.T) {
	sk, pk := testKeypair(123456789)
	alpha := []byte("hello vrf")
	ad := []byte("associated data")

	proof, err := Prove(sk, pk, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(pk, alpha, ad, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestProveIsDeterministic(t *testing.T) {
	sk, pk := testKeypair(42)
	alpha := []byte("deterministic input")

	p1, err := Prove(sk, pk, alpha, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	p2, err := Prove(sk, pk, alpha, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !p1.Gamma.Equal(p2.Gamma) || p1.Response.BigInt().Cmp(p2.Response.BigInt()) != 0 {
		t.Fatal("two proofs over identical inputs diverged")
	}
}

func TestVerifyRejectsWrongPublicKey(t *testing.T) {
	sk, pk := testKeypair(7)
	_, otherPK := testKeypair(8)
	alpha := []byte("alpha")

	proof, err := Prove(sk, pk, alpha, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(otherPK, alpha, nil, proof); err == nil {
		t.Fatal("expected verification failure against the wrong public key")
	}
}

func TestVerifyRejectsTamperedAlpha(t *testing.T) {
	sk, pk := testKeypair(7)
	proof, err := Prove(sk, pk, []byte("alpha"), nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(pk, []byte("a1pha"), nil, proof); err == nil {
		t.Fatal("expected verification failure for tampered alpha")
	}
}

func TestBytesParseProofRoundTrip(t *testing.T) {
	sk, pk := testKeypair(99)
	proof, err := Prove(sk, pk, []byte("alpha"), []byte("ad"))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	encoded := proof.Bytes()
	decoded, err := ParseProof(encoded)
	if err != nil {
		t.Fatalf("ParseProof: %v", err)
	}
	if !decoded.Gamma.Equal(proof.Gamma) {
		t.Fatal("decoded gamma mismatch")
	}
	if decoded.Response.BigInt().Cmp(proof.Response.BigInt()) != 0 {
		t.Fatal("decoded response mismatch")
	}
	if err := Verify(pk, []byte("alpha"), []byte("ad"), decoded); err != nil {
		t.Fatalf("Verify(decoded): %v", err)
	}
}

func TestParseProofRejectsWrongLength(t *testing.T) {
	if _, err := ParseProof(make([]byte, 10)); err == nil {
		t.Fatal("expected error for malformed proof length")
	}
}

func TestProofToHashClearCofactorOptional(t *testing.T) {
	sk, pk := testKeypair(5)
	proof, err := Prove(sk, pk, []byte("alpha"), nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	h1 := ProofToHash(proof, false)
	h2 := ProofToHash(proof, true)
	if len(h1) != 64 || len(h2) != 64 {
		t.Fatalf("ProofToHash should return a 64-byte SHA-512 digest")
	}
}
