package curve

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// hashToFieldL is the pseudo-random byte length pulled per field element,
// sized for a 128-bit security margin against a ~255-bit prime per
// RFC 9380 §5.1 (ceil((ceil(log2(p)) + 128) / 8) for Bandersnatch's base
// field).
const hashToFieldL = 48

// zPadLen is the zero-pad length expand_message_xmd prepends to its
// first hash input. The Bandersnatch suite fixes this at 48 bytes (the
// suite's s_in_bytes parameter).
const zPadLen = 48

// expandMessageXMD implements RFC 9380 §5.3.1's expand_message_xmd using
// SHA-512, the hash this suite's "Bandersnatch_SHA-512_ELL2" name commits
// to for every XOF/PRF role outside the Fiat-Shamir transcript (which uses
// SHAKE-128 instead, see package transcript).
func expandMessageXMD(msg, dst []byte, outLen int) ([]byte, error) {
	const bInBytes = sha512.Size // 64
	ellBytes := (outLen + bInBytes - 1) / bInBytes
	if ellBytes > 255 || outLen > 65535 {
		return nil, fmt.Errorf("expand_message_xmd: output too long: %w", ringerr.ErrInvalidEncoding)
	}
	if len(dst) > 255 {
		return nil, fmt.Errorf("expand_message_xmd: DST too long: %w", ringerr.ErrInvalidEncoding)
	}
	dstPrime := append(append([]byte{}, dst...), byte(len(dst)))

	zPad := make([]byte, zPadLen)
	lenInBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lenInBytes, uint16(outLen))

	h0 := sha512.New()
	h0.Write(zPad)
	h0.Write(msg)
	h0.Write(lenInBytes)
	h0.Write([]byte{0})
	h0.Write(dstPrime)
	b0 := h0.Sum(nil)

	h1 := sha512.New()
	h1.Write(b0)
	h1.Write([]byte{1})
	h1.Write(dstPrime)
	bPrev := h1.Sum(nil)

	out := append([]byte{}, bPrev...)
	for i := 2; i <= ellBytes; i++ {
		xored := make([]byte, len(b0))
		for j := range xored {
			xored[j] = b0[j] ^ bPrev[j]
		}
		hi := sha512.New()
		hi.Write(xored)
		hi.Write([]byte{byte(i)})
		hi.Write(dstPrime)
		bPrev = hi.Sum(nil)
		out = append(out, bPrev...)
	}
	return out[:outLen], nil
}

// HashToField derives count base-field elements from msg, per RFC 9380
// §5.2 (hash_to_field with expand_message_xmd under the suite DST).
func HashToField(msg []byte, count int) ([]field.Fp, error) {
	bytes, err := expandMessageXMD(msg, []byte(DST), count*hashToFieldL)
	if err != nil {
		return nil, err
	}
	out := make([]field.Fp, count)
	for i := 0; i < count; i++ {
		chunk := bytes[i*hashToFieldL : (i+1)*hashToFieldL]
		v := new(big.Int).SetBytes(chunk)
		v.Mod(v, field.FpModulus)
		out[i] = field.FpFromBigInt(v)
	}
	return out, nil
}

// montJ, montK are the Montgomery-model parameters of the curve
// K·t² = s³ + J·s² + s birationally equivalent to the Twisted Edwards
// model: J = 2(a+d)/(a-d), K = 4/(a-d).
var montJ, montK = func() (field.Fp, field.Fp) {
	var sum, diff, diffInv field.Fp
	sum.Add(&EdwardsA, &EdwardsD)
	diff.Sub(&EdwardsA, &EdwardsD)
	diffInv.Inverse(&diff)

	var two, four field.Fp
	two.SetUint64(2)
	four.SetUint64(4)

	var j, k field.Fp
	j.Mul(&sum, &diffInv)
	j.Mul(&j, &two)
	k.Mul(&four, &diffInv)
	return j, k
}()

// MapToCurve applies the Elligator-2 map (RFC 9380 §6.7.1 over the
// Montgomery model M_{J,K} with the suite's Z) to a base-field element u,
// then carries the Montgomery point to Bandersnatch's Twisted Edwards
// model via the rational map (s, t) -> (s/t, (s-1)/(s+1)).
func MapToCurve(u field.Fp) Affine {
	var kInv field.Fp
	kInv.Inverse(&montK)

	// A = J/K, B = 1/K^2 put M_{J,K} in short Montgomery form
	// y^2 = x^3 + A*x^2 + B*x.
	var mA, mB field.Fp
	mA.Mul(&montJ, &kInv)
	mB.Square(&kInv)

	var one, tv1, u2 field.Fp
	one.SetOne()
	u2.Square(&u)
	tv1.Mul(&ElligatorZ, &u2)

	var negOne field.Fp
	negOne.Neg(&one)
	if tv1.Equal(&negOne) {
		// Z*u^2 == -1 is the exceptional case: the denominator is replaced
		// by 1, i.e. x1 = -A.
		tv1.SetZero()
	}

	var denom, denomInv, x1 field.Fp
	denom.Add(&one, &tv1)
	denomInv.Inverse(&denom)
	x1.Neg(&mA)
	x1.Mul(&x1, &denomInv)

	gx1 := montgomeryRHS(x1, mA, mB)

	var x, y field.Fp
	if field.FpLegendre(&gx1) >= 0 {
		x = x1
		y.Sqrt(&gx1)
		if field.FpBytesLE(&y)[0]&1 == 1 { // sgn0(y) must be 0
			y.Neg(&y)
		}
	} else {
		x.Neg(&x1)
		x.Sub(&x, &mA)
		gx2 := montgomeryRHS(x, mA, mB)
		y.Sqrt(&gx2)
		if field.FpBytesLE(&y)[0]&1 == 0 { // sgn0(y) must be 1
			y.Neg(&y)
		}
	}

	// Back onto M_{J,K}: (s, t) = (x*K, y*K).
	var s, t field.Fp
	s.Mul(&x, &montK)
	t.Mul(&y, &montK)

	// Rational map to Twisted Edwards; a zero denominator maps to the
	// identity, per the suite's exceptional-case rule.
	var sPlus1, st field.Fp
	sPlus1.Add(&s, &one)
	st.Mul(&sPlus1, &t)
	if st.IsZero() {
		return Identity()
	}
	var stInv field.Fp
	stInv.Inverse(&st)

	var out Affine
	out.X.Mul(&stInv, &sPlus1)
	out.X.Mul(&out.X, &s)
	var sMinus1 field.Fp
	sMinus1.Sub(&s, &one)
	out.Y.Mul(&stInv, &t)
	out.Y.Mul(&out.Y, &sMinus1)
	return out
}

// montgomeryRHS returns x^3 + A*x^2 + B*x.
func montgomeryRHS(x, mA, mB field.Fp) field.Fp {
	var x2, x3, ax2, bx, out field.Fp
	x2.Square(&x)
	x3.Mul(&x2, &x)
	ax2.Mul(&mA, &x2)
	bx.Mul(&mB, &x)
	out.Add(&x3, &ax2)
	out.Add(&out, &bx)
	return out
}

// HashVariant selects between the random-oracle and non-uniform
// encode_to_curve constructions. The Bandersnatch suite itself is RO.
type HashVariant int

const (
	// VariantRO combines two independent field samples for uniform output.
	VariantRO HashVariant = iota
	// VariantNU maps a single field sample directly (non-uniform but
	// cheaper, for suites whose profile demands it).
	VariantNU
)

// EncodeToCurve hashes salt || alpha onto a Bandersnatch point in the
// prime-order subgroup via Elligator-2 under the suite DST.
func EncodeToCurve(alpha, salt []byte, variant HashVariant) (Affine, error) {
	msg := append(append([]byte{}, salt...), alpha...)
	switch variant {
	case VariantNU:
		us, err := HashToField(msg, 1)
		if err != nil {
			return Affine{}, err
		}
		return MapToCurve(us[0]).ClearCofactor(), nil
	case VariantRO:
		us, err := HashToField(msg, 2)
		if err != nil {
			return Affine{}, err
		}
		p0 := MapToCurve(us[0])
		p1 := MapToCurve(us[1])
		return p0.Add(p1).ClearCofactor(), nil
	default:
		return Affine{}, fmt.Errorf("unknown hash-to-curve variant: %w", ringerr.ErrInvalidEncoding)
	}
}
