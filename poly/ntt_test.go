package poly

import (
	"math/big"
	"testing"

	"github.com/chainscore-labs/ringvrf/field"
)

// omega8 is a primitive 8th root of unity in the BLS12-381 scalar field
// (Bandersnatch's base field), derived from the field's canonical 2^32-th
// root of unity by raising it to the (2^32/8)th power.
func omega8() field.Fp {
	return field.FpFromBigInt(mustBig("23674694431658770659612952115660802947967373701506253797663184111817857449850"))
}

func mustBig(dec string) *big.Int {
	v, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("bad constant " + dec)
	}
	return v
}

func TestNTTINTTRoundTrip(t *testing.T) {
	omega := omega8()
	coeffs := make([]field.Fp, 8)
	for i := range coeffs {
		coeffs[i] = fp(int64(i + 1))
	}

	evals, err := NTT(coeffs, 8, omega)
	if err != nil {
		t.Fatalf("NTT: %v", err)
	}
	back, err := INTT(evals, 8, omega)
	if err != nil {
		t.Fatalf("INTT: %v", err)
	}
	for i := range coeffs {
		if !coeffs[i].Equal(&back[i]) {
			t.Fatalf("round trip mismatch at index %d", i)
		}
	}
}

func TestNTTAgreesWithDirectEval(t *testing.T) {
	omega := omega8()
	coeffs := make([]field.Fp, 8)
	for i := range coeffs {
		coeffs[i] = fp(int64(i + 1))
	}
	p := New(coeffs)

	evals, err := NTT(coeffs, 8, omega)
	if err != nil {
		t.Fatalf("NTT: %v", err)
	}

	var x field.Fp
	x.SetOne()
	for i := 0; i < 8; i++ {
		want := p.Eval(x)
		if !evals[i].Equal(&want) {
			t.Fatalf("NTT[%d] != p(omega^%d)", i, i)
		}
		x.Mul(&x, &omega)
	}
}

func TestNTTRejectsNonPowerOfTwo(t *testing.T) {
	omega := omega8()
	if _, err := NTT(make([]field.Fp, 3), 3, omega); err == nil {
		t.Fatal("expected error for non-power-of-two domain size")
	}
}
