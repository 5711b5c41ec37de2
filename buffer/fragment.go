package buffer

import "fmt"

// DefaultTag is the sentinel tag assigned to fragments added without tags.
const DefaultTag = "untagged"

// Fragment is a named, tagged run of bytes anchored at an absolute offset
// within its owning Buffer. A Fragment is immutable once built; accessors
// return internal state that must be treated as read-only.
//
// The first tag is the fragment's main tag, used for grouping and coloring
// in reports.
type Fragment struct {
	offset int
	data   []byte
	name   string
	tags   []string
}

// NewFragment builds a Fragment at the given offset. The data and tag slices
// are copied. A nil or empty tag list defaults to a single DefaultTag.
func NewFragment(offset int, data []byte, name string, tags []string) Fragment {
	return Fragment{
		offset: offset,
		data:   append([]byte(nil), data...),
		name:   name,
		tags:   copyTags(tags),
	}
}

// newFragment builds a Fragment taking ownership of data and tags without
// copying. Resolution paths that already own their slices use it to avoid
// double copies.
func newFragment(offset int, data []byte, name string, tags []string) Fragment {
	if len(tags) == 0 {
		tags = []string{DefaultTag}
	}

	return Fragment{offset: offset, data: data, name: name, tags: tags}
}

func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{DefaultTag}
	}

	return append([]string(nil), tags...)
}

// Offset returns the fragment's absolute offset in its owning buffer.
func (f Fragment) Offset() int { return f.offset }

// Data returns the fragment's payload bytes. Callers must not modify the
// returned slice.
func (f Fragment) Data() []byte { return f.data }

// Name returns the fragment's display label, which may be empty.
func (f Fragment) Name() string { return f.name }

// Tags returns the fragment's ordered tag list. It is never empty. Callers
// must not modify the returned slice.
func (f Fragment) Tags() []string { return f.tags }

// MainTag returns the first tag, used for grouping and coloring.
func (f Fragment) MainTag() string { return f.tags[0] }

// Len returns the payload length in bytes. A zero-length fragment occupies
// no interval: it never collides and never creates a gap.
func (f Fragment) Len() int { return len(f.data) }

// End returns the exclusive end offset, Offset()+Len().
func (f Fragment) End() int { return f.offset + len(f.data) }

// String formats the fragment for error messages and debugging.
func (f Fragment) String() string {
	return fmt.Sprintf("fragment %#x-%#x (%d bytes, name=%q, tags=%v)",
		f.offset, f.End(), len(f.data), f.name, f.tags)
}
