package pattern

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/payloadbuf/errs"
	"github.com/arloliu/payloadbuf/pack"
)

func TestCyclic_KnownPrefix(t *testing.T) {
	data, err := Cyclic(16)
	require.NoError(t, err)
	require.Equal(t, "aaaabaaacaaadaaa", string(data))
}

func TestCyclic_Lengths(t *testing.T) {
	for _, length := range []int{0, 1, 3, 4, 26, 100, 10000} {
		data, err := Cyclic(length)
		require.NoError(t, err)
		require.Len(t, data, length)
	}
}

func TestCyclic_UniqueWindows(t *testing.T) {
	data, err := Cyclic(4096)
	require.NoError(t, err)

	seen := make(map[string]int)
	for i := 0; i+DefaultN <= len(data); i++ {
		window := string(data[i : i+DefaultN])
		if prev, ok := seen[window]; ok {
			t.Fatalf("window %q at %d already seen at %d", window, i, prev)
		}
		seen[window] = i
	}
}

func TestCyclic_TooLong(t *testing.T) {
	_, err := CyclicWith("ab", 3, 9) // period 2^3 = 8
	require.ErrorIs(t, err, errs.ErrPatternTooLong)

	data, err := CyclicWith("ab", 3, 8)
	require.NoError(t, err)
	require.Len(t, data, 8)
}

func TestCyclic_NegativeLength(t *testing.T) {
	_, err := Cyclic(-1)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestFind(t *testing.T) {
	require.Equal(t, 0, Find([]byte("aaaa")))
	require.Equal(t, 4, Find([]byte("baaa")))
	require.Equal(t, 8, Find([]byte("caaa")))
	require.Equal(t, -1, Find([]byte("AAAA")))
	require.Equal(t, -1, Find(nil))
}

func TestFind_MatchesGeneratedPattern(t *testing.T) {
	data, err := Cyclic(2048)
	require.NoError(t, err)

	for _, off := range []int{0, 1, 500, 2044} {
		sub := data[off : off+DefaultN]
		require.Equal(t, off, Find(sub), "window %q", sub)
	}
}

func TestFindValue(t *testing.T) {
	// "caaa" read into a 32-bit little-endian register is 0x61616163.
	require.Equal(t, 8, FindValue(0x61616163, pack.I386))
	require.Equal(t, 0, FindValue(0x61616161, pack.I386))
}

func TestCyclicFiller(t *testing.T) {
	filler := CyclicFiller()
	data, err := filler(32)
	require.NoError(t, err)

	want, err := Cyclic(32)
	require.NoError(t, err)
	require.Equal(t, want, data)
}

func TestRandomFiller(t *testing.T) {
	filler := RandomFiller()
	a, err := filler(64)
	require.NoError(t, err)
	require.Len(t, a, 64)

	b, err := filler(64)
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, b), "two 64-byte random fills should differ")
}

func TestZeroFiller(t *testing.T) {
	filler := ZeroFiller()
	data, err := filler(16)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 16), data)
}
