package ring

import (
	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/kzg"
)

// serializeG1 encodes a BLS12-381 G1 point for transcript absorption as
// its raw affine x and y coordinates, each a 48-byte big-endian field
// element, rather than a compressed point.
func serializeG1(c kzg.Commitment) []byte {
	xb := c.Point.X.Bytes()
	yb := c.Point.Y.Bytes()
	out := make([]byte, 0, len(xb)+len(yb))
	out = append(out, xb[:]...)
	out = append(out, yb[:]...)
	return out
}

// serializeAffine encodes a Bandersnatch point for transcript
// absorption as its raw x and y coordinates, each 32 bytes
// little-endian.
func serializeAffine(p curve.Affine) []byte {
	out := make([]byte, 0, 64)
	out = append(out, field.FpBytesLE(&p.X)...)
	out = append(out, field.FpBytesLE(&p.Y)...)
	return out
}

// serializeFpSlice concatenates each element's 32-byte little-endian
// encoding.
func serializeFpSlice(vals ...field.Fp) []byte {
	out := make([]byte, 0, 32*len(vals))
	for _, v := range vals {
		out = append(out, field.FpBytesLE(&v)...)
	}
	return out
}

// concatBytes concatenates the serializations of several logically
// grouped items into the single blob the transcript absorbs under one
// label (the ring root's commitments, a proof's witness-column
// commitments).
func concatBytes(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
