// Package transcript implements the Fiat-Shamir transcript the Ring
// VRF's polynomial IOP derives its challenges from: a SHAKE-128 sponge
// absorbing length-footered labeled data and squeezing labeled
// challenges.
package transcript

import (
	"encoding/binary"
	"math/big"

	"github.com/chainscore-labs/ringvrf/field"
	"golang.org/x/crypto/sha3"
)

// Transcript absorbs labeled data via a length-footer framing: every run of
// writes between two separate() calls is closed by a 4-byte big-endian
// footer carrying the run's total length, rather than a length prefix.
type Transcript struct {
	state  sha3.ShakeHash
	length int // bytes absorbed since the last separate(); -1 means none pending
}

// New starts a transcript, absorbing label as its initial domain separator.
func New(label string) *Transcript {
	t := &Transcript{state: sha3.NewShake128(), length: -1}
	t.label([]byte(label))
	return t
}

// separate flushes the pending run's length footer, if any, and resets the
// run counter.
func (t *Transcript) separate() {
	if t.length >= 0 {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(t.length))
		t.state.Write(lenBuf[:])
	}
	t.length = -1
}

func (t *Transcript) write(data []byte) {
	if t.length < 0 {
		t.length = 0
	}
	t.state.Write(data)
	t.length += len(data)
}

// writeChunked absorbs data in <=2^31-1 byte runs, each closed by its
// own length footer, with the high bit of the footer flagging a
// continued payload.
func (t *Transcript) writeChunked(data []byte) {
	const high = 1 << 31
	idx := 0
	for idx < len(data) {
		if t.length < 0 {
			t.length = 0
		}
		remaining := (high - 1) - t.length
		toTake := len(data) - idx
		if remaining < toTake {
			toTake = remaining
		}
		t.write(data[idx : idx+toTake])
		idx += toTake
		if idx >= len(data) {
			return
		}
		t.length |= high
		t.separate()
	}
}

// label absorbs a domain-separation label, footered on both sides.
func (t *Transcript) label(lbl []byte) {
	t.separate()
	t.write(lbl)
	t.separate()
}

// append absorbs data under its own pair of separators: the body of a
// labeled item.
func (t *Transcript) append(data []byte) {
	t.separate()
	t.writeChunked(data)
	t.separate()
}

// AppendBytes absorbs a labeled byte string: label, then the string itself,
// each footered independently. Callers with several logically-grouped
// values under one label (the ring root's three commitments, the four
// witness-column commitments, the seven register evaluations) must
// concatenate them into a single data slice and call AppendBytes once;
// a group is one serialized blob, not separate labeled items.
func (t *Transcript) AppendBytes(label string, data []byte) {
	t.label([]byte(label))
	t.append(data)
}

// AppendFp absorbs a labeled base-field element.
func (t *Transcript) AppendFp(label string, x field.Fp) {
	t.AppendBytes(label, field.FpBytesLE(&x))
}

// challengeBytes absorbs label and the constant "challenge" tag, then
// squeezes n bytes from a cloned sponge state without disturbing the live
// one. The "challenge" tag's length footer is committed to the live state
// only after the squeeze.
func (t *Transcript) challengeBytes(label string, n int) []byte {
	t.label([]byte(label))
	t.write([]byte("challenge"))

	clone := t.state.Clone()
	out := make([]byte, n)
	clone.Read(out)

	t.separate()
	return out
}

// fpChallengeLen is ceil((log2(FpModulus) + 128) / 8): the read_reduce
// squeeze length for the proof system's scalar field (the base field the
// ring columns live in, which is also BLS12-381's scalar field).
var fpChallengeLen = (field.FpModulus.BitLen() + 128 + 7) / 8

// ChallengeFp derives a labeled challenge by squeezing fpChallengeLen
// bytes and reducing them, read as a big-endian integer, modulo the
// proof system's field order.
func (t *Transcript) ChallengeFp(label string) field.Fp {
	b := t.challengeBytes(label, fpChallengeLen)
	v := new(big.Int).SetBytes(b)
	v.Mod(v, field.FpModulus)
	return field.FpFromBigInt(v)
}
