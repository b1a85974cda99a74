// Package kzg implements the KZG polynomial commitment scheme over
// BLS12-381 that backs the ring proof's column and quotient
// commitments.
package kzg

import (
	"encoding/binary"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// SRS is a structured reference string: powers of tau in G1 up to the
// domain's degree bound, plus [G2, tau*G2] in G2 for the pairing check.
type SRS struct {
	G1 []bls12381.G1Affine // [G1, tau*G1, tau^2*G1, ..., tau^(N-1)*G1]
	G2 [2]bls12381.G2Affine // [G2, tau*G2]
}

// The SRS file carries 96 bytes per uncompressed G1 point and 192 per
// uncompressed G2 point.
const (
	sizeG1Uncompressed = 96
	sizeG2Uncompressed = 192
)

// LoadSRS parses the opaque SRS byte format:
//
//	8-byte little-endian N, N*96-byte G1 points, 8-byte little-endian
//	count (always 2), 2*192-byte G2 points.
func LoadSRS(data []byte) (*SRS, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("SRS file too short: %w", ringerr.ErrInvalidEncoding)
	}
	n := binary.LittleEndian.Uint64(data[:8])
	off := uint64(8)

	wantG1 := n * sizeG1Uncompressed
	if uint64(len(data))-off < wantG1 {
		return nil, fmt.Errorf("SRS file truncated in G1 section: %w", ringerr.ErrInvalidEncoding)
	}
	g1s := make([]bls12381.G1Affine, n)
	for i := uint64(0); i < n; i++ {
		chunk := data[off+i*sizeG1Uncompressed : off+(i+1)*sizeG1Uncompressed]
		if _, err := g1s[i].SetBytes(chunk); err != nil {
			return nil, fmt.Errorf("decoding SRS G1 point %d: %w", i, ringerr.ErrInvalidEncoding)
		}
	}
	off += wantG1

	if uint64(len(data))-off < 8 {
		return nil, fmt.Errorf("SRS file truncated before G2 count: %w", ringerr.ErrInvalidEncoding)
	}
	g2Count := binary.LittleEndian.Uint64(data[off : off+8])
	off += 8
	if g2Count != 2 {
		return nil, fmt.Errorf("SRS G2 section must hold exactly 2 points, got %d: %w", g2Count, ringerr.ErrInvalidEncoding)
	}
	if uint64(len(data))-off < 2*sizeG2Uncompressed {
		return nil, fmt.Errorf("SRS file truncated in G2 section: %w", ringerr.ErrInvalidEncoding)
	}

	var out SRS
	out.G1 = g1s
	for i := 0; i < 2; i++ {
		chunk := data[off+uint64(i)*sizeG2Uncompressed : off+uint64(i+1)*sizeG2Uncompressed]
		if _, err := out.G2[i].SetBytes(chunk); err != nil {
			return nil, fmt.Errorf("decoding SRS G2 point %d: %w", i, ringerr.ErrInvalidEncoding)
		}
	}
	return &out, nil
}

// Degree returns the maximum polynomial degree this SRS can commit to.
func (s *SRS) Degree() int { return len(s.G1) - 1 }
