// Package payloadbuf constructs byte-exact exploit payloads by placing
// named, tagged byte fragments at arbitrary offsets in a virtual buffer and
// materializing them into one contiguous byte sequence, with untouched gaps
// filled by a configurable pattern.
//
// # Core Features
//
//   - Sparse fragment buffer with offset-keyed, named, tagged fragments
//   - Nested buffer composition with offset translation for chained payloads
//   - Gap and collision analysis plus offset-range overlap queries
//   - Deterministic cyclic (de Bruijn) filler with crash-offset lookup
//   - Architecture-aware value packing (pointer width + byte order)
//   - Colorized text reports and terminal strip charts of the layout
//
// # Basic Usage
//
// Building and materializing a payload:
//
//	import "github.com/arloliu/payloadbuf"
//
//	pb, _ := payloadbuf.New(48)
//	_ = pb.Add(16, payloadbuf.Raw{Value: "ABCD"}, payloadbuf.WithName("ret address"))
//	_ = pb.Add(28, payloadbuf.Raw{Value: "EFGH"}, payloadbuf.WithName("pivot"), payloadbuf.WithTags("chain A"))
//
//	data, _ := pb.Materialize()
//	// data[16:20] == "ABCD", gaps hold the cyclic pattern
//
// Composing chained payloads from nested buffers:
//
//	chain, _ := payloadbuf.New(0, payloadbuf.WithContext(pack.I386))
//	_ = chain.Append(payloadbuf.Raw{Value: uint32(0x35363738)}, payloadbuf.WithTags("chain C"))
//	_ = pb.Append(chain) // lands at the occupied end, offsets translated
//
// Finding the crash offset after overflowing with the cyclic pattern:
//
//	off := payloadbuf.CyclicFind([]byte("caaa")) // 8
//
// # Package Structure
//
// This package provides convenient top-level wrappers and aliases around the
// buffer package. For fine-grained control use buffer, pack, pattern, report
// and viz directly.
package payloadbuf

import (
	"github.com/arloliu/payloadbuf/buffer"
	"github.com/arloliu/payloadbuf/pack"
	"github.com/arloliu/payloadbuf/pattern"
)

// Aliases for the core types, so simple callers only import this package.
type (
	Buffer    = buffer.Buffer
	Fragment  = buffer.Fragment
	Spec      = buffer.Spec
	Raw       = buffer.Raw
	OffsetMap = buffer.OffsetMap
	Entry     = buffer.Entry
	Seq       = buffer.Seq
	Item      = buffer.Item
	Gap       = buffer.Gap
	Collision = buffer.Collision
	Region    = buffer.Region
)

// New creates a payload buffer with the given declared length. A length of 0
// means the effective length is inferred from the fragments. Gaps fill with
// the cyclic pattern and values pack for the default context (amd64) unless
// overridden by options.
func New(length int, opts ...buffer.Option) (*Buffer, error) {
	return buffer.New(length, opts...)
}

// Construction options re-exported from the buffer package.
var (
	WithFiller       = buffer.WithFiller
	WithRandomFiller = buffer.WithRandomFiller
	WithZeroFiller   = buffer.WithZeroFiller
	WithPacker       = buffer.WithPacker
	WithContext      = buffer.WithContext

	WithName = buffer.WithName
	WithTags = buffer.WithTags
)

// Cyclic returns the first length bytes of the default cyclic pattern, the
// same bytes the default filler produces.
func Cyclic(length int) ([]byte, error) {
	return pattern.Cyclic(length)
}

// CyclicFind returns the offset of sub within the default cyclic pattern,
// or -1 if it never occurs.
func CyclicFind(sub []byte) int {
	return pattern.Find(sub)
}

// CyclicFindValue looks up the crash offset of a register value captured
// after overflowing with the cyclic pattern.
func CyclicFindValue(value uint64, ctx *pack.Context) int {
	return pattern.FindValue(value, ctx)
}
