package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// ColorIndex maps a tag to a stable palette slot in [0, n). The same tag
// always lands on the same slot, so fragment colors stay consistent across
// reports regardless of insertion order.
func ColorIndex(tag string, n int) int {
	if n <= 0 {
		return 0
	}

	return int(ID(tag) % uint64(n))
}
