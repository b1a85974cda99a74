package field

import (
	"math/big"

	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Fp is Bandersnatch's base field. Per spec, Bandersnatch is embedded in
// BLS12-381's scalar field, so Fp is literally gnark-crypto's bls12-381/fr
// element type: there is no separate field library to reach for here, the
// same way giuliop-AlgoPlonk and parsdao-pars lean on gnark-crypto rather
// than a hand-rolled modular reduction for any field tied to BLS12-381.
type Fp = bls12381fr.Element

// FpModulus is the BLS12-381 scalar field prime (Bandersnatch's base field).
var FpModulus = bls12381fr.Modulus()

// FpFromBigInt reduces x modulo FpModulus.
func FpFromBigInt(x *big.Int) Fp {
	var z Fp
	z.SetBigInt(x)
	return z
}

// FpToBigInt returns the canonical big.Int representative of z.
func FpToBigInt(z *Fp) *big.Int {
	var out big.Int
	z.BigInt(&out)
	return &out
}

// FpLegendre returns the Legendre symbol of z: 1 for a non-zero residue,
// -1 for a non-residue, 0 for zero.
func FpLegendre(z *Fp) int {
	if z.IsZero() {
		return 0
	}
	if z.Legendre() == 1 {
		return 1
	}
	return -1
}

// FpBytesLE returns the 32-byte little-endian encoding of z.
func FpBytesLE(z *Fp) []byte {
	be := z.Bytes() // fixed-size [32]byte, big-endian
	out := make([]byte, len(be))
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// FpSetBytesLE parses a little-endian byte string into an Fp element. It
// does not itself range-check beyond what SetBytes already does (reduction
// modulo FpModulus via Montgomery form is not performed here: callers that
// need strict canonical-range rejection should compare against FpModulus
// first).
func FpSetBytesLE(b []byte) Fp {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	var z Fp
	z.SetBytes(be)
	return z
}
