package buffer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/payloadbuf/errs"
	"github.com/arloliu/payloadbuf/pack"
	"github.com/arloliu/payloadbuf/pattern"
)

// Packer converts an arbitrary payload value into raw bytes. Failures must
// wrap errs.ErrPack (the buffer wraps them if not).
type Packer func(value any) ([]byte, error)

// Filler produces exactly length bytes used to fill unoccupied regions
// during materialization.
type Filler func(length int) ([]byte, error)

// Buffer is a sparse fragment buffer: a collection of fragments keyed by
// offset, materialized on demand into one contiguous byte sequence.
//
// The length fixed at construction is an upper bound enforced at insertion
// time; a length of 0 means "infer from fragments" and is fixed by the first
// Materialize call. Fragments may overlap; later insertions win the
// overlapping bytes.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	length    int
	filler    Filler
	packer    Packer
	fragments []Fragment
}

// A *Buffer is itself a Spec: adding it to another buffer merges its
// fragments with translated offsets.
func (*Buffer) isSpec() {}

// New creates a Buffer with the given declared length. A length of 0 means
// the effective length is inferred from the fragments. By default gaps fill
// with the cyclic pattern and values pack with pack.Default; both are
// overridable through options.
func New(length int, opts ...Option) (*Buffer, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidLength, length)
	}

	b := &Buffer{
		length: length,
		filler: pattern.CyclicFiller(),
		packer: pack.Default.Pack,
	}

	if err := applyOptions(b, opts); err != nil {
		return nil, err
	}

	return b, nil
}

// Add resolves spec into fragments anchored at offset and inserts them.
//
// The call is atomic: every resolved fragment is validated against the
// declared length before any of them is inserted, so a failing Add leaves
// the buffer untouched. WithName and WithTags apply to fragments produced
// from Raw values; composite specs carry their own names and tags.
//
// Overlap with existing fragments is allowed and not diagnosed here; see
// Analyze and Materialize.
func (b *Buffer) Add(offset int, spec Spec, opts ...AddOption) error {
	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	frags, err := b.resolve(offset, spec, cfg.name, cfg.tags)
	if err != nil {
		return err
	}

	for _, f := range frags {
		if err := b.checkBounds(f); err != nil {
			return err
		}
	}

	b.fragments = append(b.fragments, frags...)

	return nil
}

// Append adds spec at the current occupied end: the smallest size that
// accommodates all existing fragments, not the declared length. Repeated
// Append calls build up a payload contiguously even when the declared length
// leaves trailing room.
func (b *Buffer) Append(spec Spec, opts ...AddOption) error {
	return b.Add(b.OccupiedEnd(), spec, opts...)
}

// checkBounds rejects fragments outside [0, length) when a length was
// declared. The buffer is never silently grown or truncated.
func (b *Buffer) checkBounds(f Fragment) error {
	if f.offset < 0 {
		return fmt.Errorf("%w: %s has negative offset", errs.ErrOutOfBounds, f)
	}
	if b.length > 0 && f.End() > b.length {
		return fmt.Errorf("%w: %s exceeds length %#x", errs.ErrOutOfBounds, f, b.length)
	}

	return nil
}

// OccupiedEnd returns the smallest buffer size that accommodates all
// fragments, or 0 if there are none. This is distinct from Len, which
// prefers the declared length.
func (b *Buffer) OccupiedEnd() int {
	end := 0
	for _, f := range b.fragments {
		if f.End() > end {
			end = f.End()
		}
	}

	return end
}

// Len returns the buffer's effective length: the declared length if one was
// set, else the occupied end.
func (b *Buffer) Len() int {
	if b.length > 0 {
		return b.length
	}

	return b.OccupiedEnd()
}

// Materialize resolves the sparse fragment set into one contiguous byte
// sequence: the filler initializes the whole buffer, then fragments overlay
// their bytes in insertion order, so the latest insertion wins overlapping
// regions.
//
// If no length was declared, the first call fixes the length to the occupied
// end; subsequent calls (and bounds checks) use the now-fixed length. This
// is the only mutation outside Add/Append. Absent mutation in between, two
// calls return identical bytes as long as the filler is deterministic.
func (b *Buffer) Materialize() ([]byte, error) {
	if b.length == 0 {
		b.length = b.OccupiedEnd()
	}

	filled, err := b.filler(b.length)
	if err != nil {
		return nil, err
	}
	if len(filled) != b.length {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", errs.ErrFillerLength, b.length, len(filled))
	}

	result := make([]byte, b.length)
	copy(result, filled)
	for _, f := range b.fragments {
		copy(result[f.offset:f.End()], f.data)
	}

	return result, nil
}

// Fragments returns a snapshot of the fragment list in insertion order.
func (b *Buffer) Fragments() []Fragment {
	return slices.Clone(b.fragments)
}

// SortedFragments returns a snapshot of the fragment list in ascending
// offset order. The sort is stable: fragments at equal offsets keep their
// insertion order.
func (b *Buffer) SortedFragments() []Fragment {
	out := slices.Clone(b.fragments)
	slices.SortStableFunc(out, func(a, b Fragment) int {
		return cmp.Compare(a.offset, b.offset)
	})

	return out
}

// UniqueTags returns the sorted set of all tags across all fragments.
func (b *Buffer) UniqueTags() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range b.fragments {
		for _, tag := range f.tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				out = append(out, tag)
			}
		}
	}
	slices.Sort(out)

	return out
}

// MainTags returns the sorted set of main tags across all fragments.
func (b *Buffer) MainTags() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range b.fragments {
		if _, ok := seen[f.MainTag()]; !ok {
			seen[f.MainTag()] = struct{}{}
			out = append(out, f.MainTag())
		}
	}
	slices.Sort(out)

	return out
}

// TagGroup is a main tag with the fragments it groups, in insertion order.
type TagGroup struct {
	Tag       string
	Fragments []Fragment
}

// GroupByMainTag groups fragments by their main tag, groups sorted by tag.
func (b *Buffer) GroupByMainTag() []TagGroup {
	groups := make(map[string][]Fragment)
	for _, f := range b.fragments {
		groups[f.MainTag()] = append(groups[f.MainTag()], f)
	}

	out := make([]TagGroup, 0, len(groups))
	for _, tag := range b.MainTags() {
		out = append(out, TagGroup{Tag: tag, Fragments: groups[tag]})
	}

	return out
}

// String summarizes the buffer for debugging.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(len=%d, occupied=%d, fragments=%d)", b.Len(), b.OccupiedEnd(), len(b.fragments))
}
