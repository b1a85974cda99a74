package ietf

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
)

// TestKnownAnswerProveVerify exercises the fixed IETF end-to-end vector:
// the secret key must derive the listed public key, the proof over the
// empty input/associated-data pair must match the listed bytes exactly,
// and it must verify.
func TestKnownAnswerProveVerify(t *testing.T) {
	skHex := "3d6406500d4009fdf2604546093665911e753f2213570a29521fd88bc30ede18"
	wantPKHex := "a1b1da71cc4682e159b7da23050d8b6261eb11a3247c89b07ef56ccd002fd38b"
	wantGammaHex := "e7aa5154103450f0a0525a36a441f827296ee489ef30ed8787cff8df1bef22bf"
	wantCHex := "868d390e9511dc753680851b9f1428bb7c3211590540ee37601a5ab7543c8719"
	wantSHex := "05ea2936d98271385903d303d8c688deb4238eb20b004e1ce99d8f7dd9301d03"
	wantBetaHex := "0f3fd3892250bddc6aa4039bb1d4554c517ac2f8cf5316c9380fef7310f99b47" +
		"5325057186f000a673f3cd928b5a5ee91d082756cc9a7827a9ce7910d3859e5f"

	skBytes, err := hex.DecodeString(skHex)
	if err != nil {
		t.Fatalf("bad sk hex: %v", err)
	}
	sk := field.SetBytesFr(skBytes)
	pk := curve.G().GLVScalarMul(sk)

	if got := hex.EncodeToString(pk.Bytes()); got != wantPKHex {
		t.Fatalf("derived public key mismatch: got %s, want %s", got, wantPKHex)
	}

	proof, err := Prove(sk, pk, nil, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if got := hex.EncodeToString(proof.Gamma.Bytes()); got != wantGammaHex {
		t.Fatalf("gamma mismatch: got %s, want %s", got, wantGammaHex)
	}
	if got := hex.EncodeToString(proof.Challenge.Bytes()); got != wantCHex {
		t.Fatalf("challenge mismatch: got %s, want %s", got, wantCHex)
	}
	if got := hex.EncodeToString(proof.Response.Bytes()); got != wantSHex {
		t.Fatalf("response mismatch: got %s, want %s", got, wantSHex)
	}
	if got := hex.EncodeToString(ProofToHash(proof, false)); got != wantBetaHex {
		t.Fatalf("proof_to_hash mismatch: got %s, want %s", got, wantBetaHex)
	}

	if err := Verify(pk, nil, nil, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// TestKnownAnswerBitFlipRejection flips a bit in each byte of the proof
// encoding in turn; every corrupted proof must fail to parse or fail to
// verify.
func TestKnownAnswerBitFlipRejection(t *testing.T) {
	skBytes, _ := hex.DecodeString("3d6406500d4009fdf2604546093665911e753f2213570a29521fd88bc30ede18")
	sk := field.SetBytesFr(skBytes)
	pk := curve.G().GLVScalarMul(sk)

	proof, err := Prove(sk, pk, nil, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	encoded := proof.Bytes()

	for i := range encoded {
		tampered := bytes.Clone(encoded)
		tampered[i] ^= 0x40
		decoded, err := ParseProof(tampered)
		if err != nil {
			continue
		}
		if err := Verify(pk, nil, nil, decoded); err == nil {
			t.Fatalf("verification succeeded with byte %d corrupted", i)
		}
	}
}
