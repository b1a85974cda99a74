package suites

import (
	"crypto/sha512"
	"math/big"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
)

// DeriveSecret deterministically derives a secret scalar from a seed:
// hash the seed with the suite hash, read the digest as a little-endian
// integer, and reduce modulo the subgroup order. A zero result (never
// observed in practice) is retried with a counter byte appended.
func DeriveSecret(seed []byte) field.Fr {
	for counter := 0; ; counter++ {
		h := sha512.New()
		h.Write(seed)
		if counter > 0 {
			h.Write([]byte{byte(counter)})
		}
		digest := h.Sum(nil)

		le := make([]byte, len(digest))
		for i, b := range digest {
			le[len(digest)-1-i] = b
		}
		sk := field.NewFr(new(big.Int).SetBytes(le))
		if !sk.IsZero() {
			return sk
		}
	}
}

// PublicKey returns the public key PK = sk*G for a secret scalar.
func PublicKey(sk field.Fr) curve.Affine {
	return curve.G().GLVScalarMul(sk)
}
