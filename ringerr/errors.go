// Package ringerr defines the error kinds shared by every layer of the VRF
// stack, from field arithmetic up through the ring verifier.
package ringerr

import "errors"

// Sentinel error kinds. Every public API wraps one of these with
// fmt.Errorf("...: %w", Kind) so callers can classify a failure with
// errors.Is without parsing strings.
var (
	// ErrInvalidEncoding is returned when a byte string does not have the
	// shape required by a parser: wrong length, malformed flags, etc.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrInvalidPoint is returned when a decoded point is not on the curve,
	// or not in the prime-order subgroup where that is required.
	ErrInvalidPoint = errors.New("invalid point")

	// ErrInvalidScalar is returned when a scalar is out of range for its
	// field, e.g. s >= r in an IETF proof.
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrVerificationFailed is returned when a cryptographic check (challenge
	// comparison, pairing equation, ring relation) does not hold. It carries
	// no information about which check failed to avoid oracle leakage.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrInternalConsistency marks a condition that should not occur under
	// honest execution: a non-zero synthetic-division remainder, a
	// commitment/SRS size mismatch, or a degree overflow against the SRS.
	ErrInternalConsistency = errors.New("internal consistency failure")
)
