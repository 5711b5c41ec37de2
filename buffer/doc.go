// Package buffer implements the sparse fragment buffer: named, tagged byte
// fragments placed at arbitrary offsets in a virtual buffer, materialized
// into one contiguous byte sequence with untouched gaps filled by an
// injected filler pattern.
//
// # Basic Usage
//
//	pb, _ := buffer.New(48)
//	_ = pb.Add(16, buffer.Raw{Value: "ABCD"}, buffer.WithName("ret address"))
//	data, _ := pb.Materialize()
//	// data[16:20] == "ABCD", everything else cyclic pattern
//
// Buffers compose: adding a buffer as a spec merges its fragments into the
// parent with their offsets translated by the anchor offset, which is how
// chained payloads are built up from reusable pieces.
//
//	chain, _ := buffer.New(0)
//	_ = chain.Append(buffer.Raw{Value: uint32(0x08041234)}, buffer.WithTags("chain A"))
//	_ = pb.Append(chain)
//
// Fragments may legitimately overlap; overlaps are reported by Analyze and
// resolved at materialization time by last-write-wins in insertion order.
//
// # Thread Safety
//
// A Buffer is not safe for concurrent use. It is designed to be privately
// owned by a single caller for its entire lifetime.
package buffer
