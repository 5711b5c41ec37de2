package buffer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arloliu/payloadbuf/errs"
)

// Spec is the closed set of argument shapes accepted by Add and Append.
//
// The variants are:
//   - Raw: a single packable value, packed via the buffer's packer
//   - *Buffer: a nested buffer, merged with offsets translated by the anchor
//   - OffsetMap: relative offset → Entry, each anchored at anchor+offset
//   - Seq: pre-shaped items carrying their own absolute offsets
type Spec interface {
	isSpec()
}

// Raw wraps a single packable value (byte slice, string or integer). It
// resolves to exactly one fragment at the anchor offset.
type Raw struct {
	Value any
}

func (Raw) isSpec() {}

// Entry is the per-offset specification inside an OffsetMap: a packable
// value (or a nested *Buffer) with an optional name and tags.
type Entry struct {
	Value any
	Name  string
	Tags  []string
}

// OffsetMap maps relative offsets to per-offset specifications. Each entry
// resolves at anchor+key. Entries resolve in ascending key order, so
// insertion order among them is deterministic.
type OffsetMap map[int]Entry

func (OffsetMap) isSpec() {}

// Item is one element of a Seq: a packable value (or a nested *Buffer) at an
// absolute offset with an optional name and tags.
type Item struct {
	Offset int
	Value  any
	Name   string
	Tags   []string
}

// Seq is an ordered sequence of items. Unlike the other composite shapes,
// the item offsets are absolute: they are NOT shifted by the anchor offset
// of the Add call.
type Seq []Item

func (Seq) isSpec() {}

// resolve flattens one Add call into zero or more absolute fragments. It
// never mutates the buffer; the caller commits the result after bounds
// checks so a failing call inserts nothing.
func (b *Buffer) resolve(offset int, spec Spec, name string, tags []string) ([]Fragment, error) {
	if err := validateTags(tags); err != nil {
		return nil, err
	}

	switch s := spec.(type) {
	case Raw:
		return b.resolveValue(offset, s.Value, name, tags)

	case *Buffer:
		if s == nil {
			return nil, fmt.Errorf("%w: nil buffer", errs.ErrUnsupportedSpec)
		}

		return translate(offset, s.fragments), nil

	case OffsetMap:
		keys := make([]int, 0, len(s))
		for rel := range s {
			keys = append(keys, rel)
		}
		slices.Sort(keys)

		var out []Fragment
		for _, rel := range keys {
			e := s[rel]
			if err := validateTags(e.Tags); err != nil {
				return nil, err
			}
			frags, err := b.resolveValue(offset+rel, e.Value, e.Name, e.Tags)
			if err != nil {
				return nil, err
			}
			out = append(out, frags...)
		}

		return out, nil

	case Seq:
		var out []Fragment
		for _, item := range s {
			if err := validateTags(item.Tags); err != nil {
				return nil, err
			}
			frags, err := b.resolveValue(item.Offset, item.Value, item.Name, item.Tags)
			if err != nil {
				return nil, err
			}
			out = append(out, frags...)
		}

		return out, nil

	case nil:
		return nil, fmt.Errorf("%w: nil spec", errs.ErrUnsupportedSpec)

	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedSpec, spec)
	}
}

// resolveValue resolves a single packable value (or nested buffer) anchored
// at an absolute offset.
func (b *Buffer) resolveValue(offset int, value any, name string, tags []string) ([]Fragment, error) {
	if nested, ok := value.(*Buffer); ok {
		if nested == nil {
			return nil, fmt.Errorf("%w: nil buffer", errs.ErrUnsupportedSpec)
		}

		return translate(offset, nested.fragments), nil
	}

	data, err := b.packer(value)
	if err != nil {
		if errors.Is(err, errs.ErrPack) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %v", errs.ErrPack, err)
	}

	return []Fragment{newFragment(offset, data, name, copyTags(tags))}, nil
}

// translate merges a nested buffer's fragments into the parent coordinate
// space: every fragment shifts by the anchor offset, keeping its data, name
// and tags. Only offsets translate; the nested buffer's declared length does
// not carry over.
func translate(offset int, fragments []Fragment) []Fragment {
	out := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, Fragment{
			offset: offset + f.offset,
			data:   f.data,
			name:   f.name,
			tags:   f.tags,
		})
	}

	return out
}

// validateTags rejects tag lists containing empty strings. A nil or empty
// list is valid and defaults to DefaultTag at fragment construction.
func validateTags(tags []string) error {
	for _, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%w: empty tag in %v", errs.ErrInvalidTags, tags)
		}
	}

	return nil
}
