// Package pattern generates filler byte patterns for payload buffers.
//
// The cyclic pattern is a de Bruijn sequence: every length-4 window over the
// default lowercase alphabet appears exactly once, so the 4 bytes that land
// in a crashed register identify the exact offset they came from:
//
//	data, _ := pattern.Cyclic(200)
//	// ... crash with 0x61616163 in the instruction pointer ...
//	off := pattern.FindValue(0x61616163, pack.I386)  // 8
//
// The package also provides the filler policies a Buffer can be constructed
// with: cyclic (deterministic, the default), random (avoids accidental
// valid-pointer collisions) and zero.
package pattern

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"github.com/arloliu/payloadbuf/errs"
	"github.com/arloliu/payloadbuf/pack"
)

const (
	// DefaultAlphabet is the alphabet used by Cyclic and Find.
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

	// DefaultN is the unique-window length used by Cyclic and Find.
	DefaultN = 4
)

// Cyclic returns the first length bytes of the de Bruijn sequence over the
// default alphabet with unique windows of DefaultN bytes.
func Cyclic(length int) ([]byte, error) {
	return CyclicWith(DefaultAlphabet, DefaultN, length)
}

// CyclicWith returns the first length bytes of the de Bruijn sequence over
// the given alphabet with unique windows of n bytes.
//
// The sequence period is len(alphabet)^n; requesting more than that fails
// with errs.ErrPatternTooLong.
func CyclicWith(alphabet string, n, length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", errs.ErrInvalidLength, length)
	}

	period := 1
	for i := 0; i < n; i++ {
		period *= len(alphabet)
	}
	if length > period {
		return nil, fmt.Errorf("%w: %d > %d (alphabet %d, n %d)",
			errs.ErrPatternTooLong, length, period, len(alphabet), n)
	}

	return deBruijn([]byte(alphabet), n, length), nil
}

// deBruijn generates the first length bytes of the de Bruijn sequence
// B(len(alphabet), n) using the recursive FKM (Lyndon word concatenation)
// construction. The recursion stops as soon as enough bytes are produced.
func deBruijn(alphabet []byte, n, length int) []byte {
	k := len(alphabet)
	a := make([]byte, k*n)
	seq := make([]byte, 0, length)

	var db func(t, p int)
	db = func(t, p int) {
		if len(seq) >= length {
			return
		}
		if t > n {
			if n%p == 0 {
				for _, idx := range a[1 : p+1] {
					seq = append(seq, alphabet[idx])
					if len(seq) >= length {
						return
					}
				}
			}

			return
		}

		a[t] = a[t-p]
		db(t+1, p)
		for j := int(a[t-p]) + 1; j < k; j++ {
			if len(seq) >= length {
				return
			}
			a[t] = byte(j)
			db(t+1, t)
		}
	}
	db(1, 1)

	return seq
}

// Find returns the offset of sub within the default cyclic pattern, or -1 if
// sub never occurs.
func Find(sub []byte) int {
	return FindWith(DefaultAlphabet, DefaultN, sub)
}

// FindWith returns the offset of sub within the cyclic pattern over the
// given alphabet and window length, or -1 if sub never occurs.
func FindWith(alphabet string, n int, sub []byte) int {
	if len(sub) == 0 {
		return -1
	}

	period := 1
	for i := 0; i < n; i++ {
		period *= len(alphabet)
	}

	// n-1 extra bytes so windows wrapping the period boundary are searched.
	seq := deBruijn([]byte(alphabet), n, period+n-1)

	return bytes.Index(seq, sub)
}

// FindValue looks up the crash offset of a register value: the value is
// packed to a DefaultN-byte window in the context's byte order and located
// in the default cyclic pattern. Returns -1 if the window never occurs.
func FindValue(value uint64, ctx *pack.Context) int {
	return Find(ctx.P32(uint32(value)))
}

// CyclicFiller returns a filler producing the cyclic pattern. This is the
// default filler of a payload buffer: the deterministic pattern makes crash
// offsets in untouched regions identifiable.
func CyclicFiller() func(length int) ([]byte, error) {
	return Cyclic
}

// RandomFiller returns a filler producing random bytes, useful to avoid
// false valid-pointer collisions while fuzzing.
func RandomFiller() func(length int) ([]byte, error) {
	return func(length int) ([]byte, error) {
		if length < 0 {
			return nil, fmt.Errorf("%w: negative length %d", errs.ErrInvalidLength, length)
		}
		out := make([]byte, length)
		if _, err := rand.Read(out); err != nil {
			return nil, err
		}

		return out, nil
	}
}

// ZeroFiller returns a filler producing zero bytes.
func ZeroFiller() func(length int) ([]byte, error) {
	return func(length int) ([]byte, error) {
		if length < 0 {
			return nil, fmt.Errorf("%w: negative length %d", errs.ErrInvalidLength, length)
		}

		return make([]byte, length), nil
	}
}
