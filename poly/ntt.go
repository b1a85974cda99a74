package poly

import (
	"fmt"
	"sync"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/ringerr"
)

// domainCacheKey identifies a memoized twiddle-factor/bit-reversal
// table by its domain size and generator. Entries are write-once; all
// keys are immutable.
type domainCacheKey struct {
	n     int
	omega string
}

type domainTables struct {
	twiddles   []field.Fp
	bitReverse []int
}

var (
	domainCacheMu sync.Mutex
	domainCache   = map[domainCacheKey]*domainTables{}
)

func getDomainTables(n int, omega field.Fp) *domainTables {
	key := domainCacheKey{n: n, omega: string(field.FpBytesLE(&omega))}

	domainCacheMu.Lock()
	defer domainCacheMu.Unlock()
	if t, ok := domainCache[key]; ok {
		return t
	}

	twiddles := make([]field.Fp, n)
	var acc field.Fp
	acc.SetOne()
	for i := 0; i < n; i++ {
		twiddles[i] = acc
		acc.Mul(&acc, &omega)
	}

	bitRev := make([]int, n)
	bits := 0
	for (1 << bits) < n {
		bits++
	}
	for i := 0; i < n; i++ {
		r := 0
		x := i
		for b := 0; b < bits; b++ {
			r = (r << 1) | (x & 1)
			x >>= 1
		}
		bitRev[i] = r
	}

	t := &domainTables{twiddles: twiddles, bitReverse: bitRev}
	domainCache[key] = t
	return t
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// NTT evaluates coeffs (padded/truncated to length n, a power of two) at
// every n-th root of unity generated by omega, in-place radix-2
// decimation-in-time order. It mutates a copy, never the input slice.
func NTT(coeffs []field.Fp, n int, omega field.Fp) ([]field.Fp, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("NTT domain size %d is not a power of two: %w", n, ringerr.ErrInternalConsistency)
	}
	a := make([]field.Fp, n)
	copy(a, coeffs)

	tables := getDomainTables(n, omega)
	out := make([]field.Fp, n)
	for i, r := range tables.bitReverse {
		out[i] = a[r]
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := n / size
		for start := 0; start < n; start += size {
			for j := 0; j < half; j++ {
				w := tables.twiddles[j*step]
				var t field.Fp
				t.Mul(&w, &out[start+j+half])
				var u field.Fp
				u = out[start+j]
				out[start+j].Add(&u, &t)
				out[start+j+half].Sub(&u, &t)
			}
		}
	}
	return out, nil
}

// INTT computes the inverse NTT: evaluations at the n-th roots of unity
// back to coefficient form, using omega^-1 and scaling by n^-1.
func INTT(evals []field.Fp, n int, omega field.Fp) ([]field.Fp, error) {
	var omegaInv field.Fp
	omegaInv.Inverse(&omega)

	coeffs, err := NTT(evals, n, omegaInv)
	if err != nil {
		return nil, err
	}

	var nInv field.Fp
	nInv.SetUint64(uint64(n))
	nInv.Inverse(&nInv)
	for i := range coeffs {
		coeffs[i].Mul(&coeffs[i], &nInv)
	}
	return coeffs, nil
}
