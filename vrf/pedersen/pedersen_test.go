package pedersen

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
	sk, pk := testKeypair(123)
	alpha := []byte("hello")
	ad := []byte("ad")

	proof, _, err := Prove(sk, pk, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(alpha, ad, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestProveDeterministic(t *testing.T) {
	sk, pk := testKeypair(123)
	alpha := []byte("hello")
	ad := []byte("ad")

	proof1, b1, err := Prove(sk, pk, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof2, b2, err := Prove(sk, pk, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !b1.Equal(b2) {
		t.Fatal("blinding factor is not deterministic in (sk, alpha, ad)")
	}
	if !proof1.BlindedPK.Equal(proof2.BlindedPK) || !proof1.Output.Equal(proof2.Output) {
		t.Fatal("proof is not deterministic in (sk, alpha, ad)")
	}
}

func TestVerifyRejectsWrongBlinding(t *testing.T) {
	sk, pk := testKeypair(123)
	alpha := []byte("hello")

	proof, _, err := Prove(sk, pk, alpha, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	// Corrupting the blinded key should break both Schnorr equalities.
	proof.BlindedPK = proof.BlindedPK.Add(curve.G())
	if err := Verify(alpha, nil, proof); err == nil {
		t.Fatal("expected verification failure for corrupted blinded key")
	}
}

func TestBytesParseProofRoundTrip(t *testing.T) {
	sk, pk := testKeypair(321)
	alpha := []byte("alpha")
	ad := []byte("ad")

	proof, _, err := Prove(sk, pk, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	encoded := proof.Bytes()
	if len(encoded) != 192 {
		t.Fatalf("Bytes: got %d bytes, want 192", len(encoded))
	}

	decoded, err := ParseProof(encoded)
	if err != nil {
		t.Fatalf("ParseProof: %v", err)
	}
	if err := Verify(alpha, ad, decoded); err != nil {
		t.Fatalf("Verify(decoded): %v", err)
	}
}

func TestParseProofRejectsWrongLength(t *testing.T) {
	if _, err := ParseProof(make([]byte, 10)); err == nil {
		t.Fatal("expected error for malformed proof length")
	}
}

func TestProofToHashLength(t *testing.T) {
	sk, pk := testKeypair(1)
	proof, _, err := Prove(sk, pk, []byte("a"), nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if got := len(ProofToHash(proof)); got != 64 {
		t.Fatalf("ProofToHash: got %d bytes, want 64", got)
	}
}
