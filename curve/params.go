// Package curve implements Bandersnatch, the Twisted Edwards curve
// embedded in the BLS12-381 scalar field that the Ring VRF is built
// over. Affine points carry the GLV endomorphism used to accelerate
// scalar multiplication.
package curve

import (
	"math/big"

	"github.com/chainscore-labs/ringvrf/field"
)

func mustBigInt(hex string) *big.Int {
	v, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic("curve: bad constant " + hex)
	}
	return v
}

func mustBigIntDec(dec string) *big.Int {
	v, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("curve: bad constant " + dec)
	}
	return v
}

var (
	// EdwardsA is the Twisted Edwards "a" coefficient: a·x² + y² = 1 + d·x²·y².
	EdwardsA = field.FpFromBigInt(big.NewInt(-5))

	// EdwardsD is the Twisted Edwards "d" coefficient.
	EdwardsD = field.FpFromBigInt(mustBigInt(
		"6389c12633c267cbc66e3bf86be3b6d8cb66677177e54f92b369f2f5188d58e7"))

	// Cofactor is the ratio between the full curve order and the
	// prime-order subgroup order.
	Cofactor = big.NewInt(4)

	// GeneratorX, GeneratorY are the affine coordinates of the distinguished
	// base point G of the prime-order subgroup.
	GeneratorX = field.FpFromBigInt(mustBigIntDec(
		"18886178867200960497001835917649091219057080094937609519140440539760939937304"))
	GeneratorY = field.FpFromBigInt(mustBigIntDec(
		"19188667384257783945677642223292697773471335439753913231509108946878080696678"))

	// GLVLambda is the eigenvalue of the GLV endomorphism φ on the
	// prime-order subgroup: φ(P) = λ·P.
	GLVLambda = field.NewFr(mustBigInt(
		"13b4f3dc4a39a493edf849562b38c72bcfc49db970a5056ed13d21408783df05"))

	// glvConstB, glvConstC parametrize the endomorphism's closed form.
	glvConstB = field.FpFromBigInt(mustBigInt(
		"52c9f28b828426a561f00d3a63511a882ea712770d9af4d6ee0f014d172510b4"))
	glvConstC = field.FpFromBigInt(mustBigInt(
		"6cc624cf865457c3a97c6efd6c17d1078456abcfff36f4e9515c806cdf650b3d"))

	// ElligatorZ is the non-square Z parameter used by the Elligator-2 map
	// over Bandersnatch's Montgomery model.
	ElligatorZ = field.FpFromBigInt(big.NewInt(5))

	// BlindingBaseX, BlindingBaseY are the affine coordinates of the
	// independent base point B used by the Pedersen VRF and as the Ring
	// VRF's blinding base.
	BlindingBaseX = field.FpFromBigInt(mustBigIntDec(
		"6150229251051246713677296363717454238956877613358614224171740096471278798312"))
	BlindingBaseY = field.FpFromBigInt(mustBigIntDec(
		"28442734166467795856797249030329035618871580593056783094884474814923353898473"))

	// SeedPointX, SeedPointY anchor the ring accumulator's starting
	// value, pinned by the boundary constraints.
	SeedPointX = field.FpFromBigInt(mustBigIntDec(
		"37805570861274048643170021838972902516980894313648523898085159469000338764576"))
	SeedPointY = field.FpFromBigInt(mustBigIntDec(
		"14738305321141000190236674389841754997202271418876976886494444739226156422510"))

	// PaddingPointX, PaddingPointY are the distinguished on-curve point
	// used to pad a ring up to MaxRingSize.
	PaddingPointX = field.FpFromBigInt(mustBigIntDec(
		"26287722405578650394504321825321286533153045350760430979437739593351290020913"))
	PaddingPointY = field.FpFromBigInt(mustBigIntDec(
		"19058981610000167534379068105702216971787064146691007947119244515951752366738"))
)

// Suite-level constants.
const (
	// MaxRingSize is the default profile's upper bound on ring membership.
	MaxRingSize = 255

	// ChallengeLength is the byte length an IETF/Pedersen challenge scalar
	// is truncated to before the final reduction mod r.
	ChallengeLength = 32

	// SuiteString is the Fiat-Shamir/ECVRF domain-separation string for
	// the Bandersnatch SHA-512 Elligator-2 suite.
	SuiteString = "Bandersnatch_SHA-512_ELL2"

	// DST is the hash-to-curve domain separation tag for this suite's
	// hash_to_field (RFC 9380 §3.1).
	DST = "ECVRF_Bandersnatch_XMD:SHA-512_ELL2_RO_Bandersnatch_SHA-512_ELL2"
)

// G is the generator point of Bandersnatch's prime-order subgroup.
func G() Affine { return Affine{X: GeneratorX, Y: GeneratorY} }

// B is the independent base point used for Pedersen blinding.
func B() Affine { return Affine{X: BlindingBaseX, Y: BlindingBaseY} }

// SeedPoint is the public accumulator seed used by the ring prover/verifier.
func SeedPoint() Affine { return Affine{X: SeedPointX, Y: SeedPointY} }

// PaddingPoint is the distinguished point used to pad a ring to MaxRingSize.
func PaddingPoint() Affine { return Affine{X: PaddingPointX, Y: PaddingPointY} }
