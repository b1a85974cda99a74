// Package suites bundles the cipher-suite surface of this module: a
// stable identifier and parameter set per suite, seed-based key
// derivation, and the ring-proof profile configuration.
package suites

import (
	"fmt"

	"github.com/chainscore-labs/ringvrf/curve"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// Id identifies a cipher suite as a stable small integer safe to
// persist.
type Id uint16

const (
	// BandersnatchSHA512ELL2 covers all three proof schemes: IETF,
	// Pedersen, and Ring VRF over Bandersnatch with SHA-512 and the
	// Elligator-2 hash-to-curve map.
	BandersnatchSHA512ELL2 Id = 1
)

// CipherSuite exposes everything a caller needs to construct and verify
// proofs under a given suite, generalizing crypto/suites.CipherSuite's
// single-VRF-slot shape to cover IETF, Pedersen, and Ring VRF consistently.
type CipherSuite interface {
	Id() Id
	Name() string
	ChallengeLength() int
	VrfProofSize() int
}

type bandersnatchSuite struct{}

func (bandersnatchSuite) Id() Id                 { return BandersnatchSHA512ELL2 }
func (bandersnatchSuite) Name() string           { return curve.SuiteString }
func (bandersnatchSuite) ChallengeLength() int    { return curve.ChallengeLength }
func (bandersnatchSuite) VrfProofSize() int       { return 32 + curve.ChallengeLength + 32 }

// Bandersnatch is the sole production suite this module ships.
var Bandersnatch CipherSuite = bandersnatchSuite{}

// ByID resolves a suite by its persisted identifier.
func ByID(id Id) (CipherSuite, error) {
	if id == BandersnatchSHA512ELL2 {
		return Bandersnatch, nil
	}
	return nil, fmt.Errorf("unknown cipher suite id %d: %w", id, ringerr.ErrInvalidEncoding)
}
