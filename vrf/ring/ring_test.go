package ring

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/kzg"
)

// testDomain returns the 512-row evaluation domain (with its radix-4,
// 2048-row companion). 512 is the smallest domain that fits MaxRingSize
// key rows plus the ~253 blinding-bit rows and the 4 boundary rows, so
// the tests run the same layout production does.
func testDomain() Domain {
	omega := field.FpFromBigInt(mustBigDec(
		"4214636447306890335450803789410475782380792963881561516561680164772024173390"))
	omega4 := field.FpFromBigInt(mustBigDec(
		"49307615728544765012166121802278658070711169839041683575071795236746050763237"))
	return Domain{N: 512, Omega: omega, Omega4: omega4}
}

const testMaxRing = curve.MaxRingSize

func mustBigDec(dec string) *big.Int {
	v, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("bad constant " + dec)
	}
	return v
}

// testSRS builds a toy trusted setup from a known (and therefore
// insecure) toxic-waste tau; callers size it to the quotient polynomial's
// 3N degree bound.
func testSRS(t *testing.T, degree int, tau int64) *kzg.SRS {
	t.Helper()
	_, _, g1Gen, g2Gen := bls12381.Generators()

	tauFr := big.NewInt(tau)
	g1s := make([]bls12381.G1Affine, degree+1)
	acc := big.NewInt(1)
	modulus := field.FpModulus
	for i := 0; i <= degree; i++ {
		g1s[i].ScalarMultiplication(&g1Gen, acc)
		acc.Mul(acc, tauFr)
		acc.Mod(acc, modulus)
	}
	var g2Tau bls12381.G2Affine
	g2Tau.ScalarMultiplication(&g2Gen, tauFr)
	return &kzg.SRS{G1: g1s, G2: [2]bls12381.G2Affine{g2Gen, g2Tau}}
}

func keypair(seed int64) (field.Fr, curve.Affine) {
	sk := field.NewFr(big.NewInt(seed))
	return sk, curve.G().GLVScalarMul(sk)
}

func TestWitnessAccumulatorReachesResult(t *testing.T) {
	d := testDomain()
	sk, pk := keypair(7)
	_, pk2 := keypair(8)
	ringKeys := []curve.Affine{pk, pk2}

	fixed, err := BuildFixedColumns(ringKeys, d.N, testMaxRing)
	if err != nil {
		t.Fatalf("BuildFixedColumns: %v", err)
	}

	tBlind := field.NewFr(mustBigDec("123456789123456789123456789"))
	witness, err := BuildWitnessColumns(fixed, 0, testMaxRing, tBlind)
	if err != nil {
		t.Fatalf("BuildWitnessColumns: %v", err)
	}

	want := Result(pk, tBlind)
	got := curve.Affine{X: witness.AccX[d.N-PaddingRows], Y: witness.AccY[d.N-PaddingRows]}
	if !got.Equal(want) {
		t.Fatal("accumulator's last non-padding row does not equal SeedPoint + PK + t*B")
	}

	var one field.Fp
	one.SetOne()
	if !witness.AccIP[d.N-PaddingRows].Equal(&one) {
		t.Fatal("inner-product accumulator's last non-padding row is not 1")
	}
	_ = sk
}

func TestRingProveVerifyRoundTrip(t *testing.T) {
	d := testDomain()
	srs := testSRS(t, 3*d.N, 99991)

	sk1, pk1 := keypair(11)
	_, pk2 := keypair(22)
	ringKeys := []curve.Affine{pk1, pk2}

	fixed, err := BuildFixedColumns(ringKeys, d.N, testMaxRing)
	if err != nil {
		t.Fatalf("BuildFixedColumns: %v", err)
	}
	root, err := BuildRoot(d, srs, fixed)
	if err != nil {
		t.Fatalf("BuildRoot: %v", err)
	}

	alpha := []byte("ring vrf input")
	ad := []byte("ring associated data")

	proof, err := Prove(d, srs, root, fixed, 0, testMaxRing, sk1, pk1, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(d, srs, root, alpha, ad, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestRingVerifyRejectsForeignKey(t *testing.T) {
	d := testDomain()
	srs := testSRS(t, 3*d.N, 13131)

	_, pk1 := keypair(33)
	_, pk2 := keypair(44)
	ringKeys := []curve.Affine{pk1, pk2}

	fixed, err := BuildFixedColumns(ringKeys, d.N, testMaxRing)
	if err != nil {
		t.Fatalf("BuildFixedColumns: %v", err)
	}
	root, err := BuildRoot(d, srs, fixed)
	if err != nil {
		t.Fatalf("BuildRoot: %v", err)
	}

	alpha := []byte("ring vrf input")
	ad := []byte("ad")

	// The foreign prover builds a consistent proof over its own ring; it
	// must still fail against the root of the original ring.
	foreignSk, foreignPK := keypair(9999)
	outsideRingKeys := []curve.Affine{foreignPK, pk2}
	outsideFixed, err := BuildFixedColumns(outsideRingKeys, d.N, testMaxRing)
	if err != nil {
		t.Fatalf("BuildFixedColumns: %v", err)
	}

	proof, err := Prove(d, srs, root, outsideFixed, 0, testMaxRing, foreignSk, foreignPK, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(d, srs, root, alpha, ad, proof); err == nil {
		t.Fatal("expected verification failure: proof built against a ring root other than the one supplied")
	}
}

func TestBuildRootDeterministic(t *testing.T) {
	d := testDomain()
	srs := testSRS(t, 3*d.N, 2468)
	_, pk1 := keypair(1)
	_, pk2 := keypair(2)
	ringKeys := []curve.Affine{pk1, pk2}

	fixed, err := BuildFixedColumns(ringKeys, d.N, testMaxRing)
	if err != nil {
		t.Fatalf("BuildFixedColumns: %v", err)
	}
	root1, err := BuildRoot(d, srs, fixed)
	if err != nil {
		t.Fatalf("BuildRoot: %v", err)
	}
	root2, err := BuildRoot(d, srs, fixed)
	if err != nil {
		t.Fatalf("BuildRoot: %v", err)
	}
	if !root1.CPx.Point.Equal(&root2.CPx.Point) || !root1.CPy.Point.Equal(&root2.CPy.Point) || !root1.CS.Point.Equal(&root2.CS.Point) {
		t.Fatal("BuildRoot is not deterministic for identical fixed columns")
	}

	encoded := root1.Bytes()
	if len(encoded) != 144 {
		t.Fatalf("root Bytes: got %d bytes, want 144", len(encoded))
	}
	decoded, err := ParseRootCommitments(encoded)
	if err != nil {
		t.Fatalf("ParseRootCommitments: %v", err)
	}
	if !decoded.CPx.Point.Equal(&root1.CPx.Point) || !decoded.CS.Point.Equal(&root1.CS.Point) {
		t.Fatal("ring root round trip mismatch")
	}
}

func TestProofBytesParseRoundTrip(t *testing.T) {
	d := testDomain()
	srs := testSRS(t, 3*d.N, 54321)

	sk1, pk1 := keypair(101)
	_, pk2 := keypair(202)
	ringKeys := []curve.Affine{pk2, pk1}

	fixed, err := BuildFixedColumns(ringKeys, d.N, testMaxRing)
	if err != nil {
		t.Fatalf("BuildFixedColumns: %v", err)
	}
	root, err := BuildRoot(d, srs, fixed)
	if err != nil {
		t.Fatalf("BuildRoot: %v", err)
	}

	alpha := []byte("bytes round trip")
	ad := []byte("ad")

	proof, err := Prove(d, srs, root, fixed, 1, testMaxRing, sk1, pk1, alpha, ad)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	encoded := proof.Bytes()
	if len(encoded) != 784 {
		t.Fatalf("Bytes: got %d bytes, want 784", len(encoded))
	}
	decoded, err := ParseProof(encoded)
	if err != nil {
		t.Fatalf("ParseProof: %v", err)
	}
	if err := Verify(d, srs, root, alpha, ad, decoded); err != nil {
		t.Fatalf("Verify(decoded): %v", err)
	}
}
