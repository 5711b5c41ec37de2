package buffer

import "fmt"

// OverlappingAt returns the fragments overlapping the single offset k,
// equivalent to Overlapping(k, k+1).
func (b *Buffer) OverlappingAt(k int) []Fragment {
	return b.Overlapping(k, k+1)
}

// Overlapping returns the fragments whose intervals intersect the half-open
// interval [start, stop), in ascending offset order with insertion order
// breaking ties. Zero-length fragments never match. An empty result is a
// nil slice, not an error.
func (b *Buffer) Overlapping(start, stop int) []Fragment {
	var results []Fragment
	for _, f := range b.SortedFragments() {
		if f.End() <= start || f.Len() == 0 {
			// not there yet
			continue
		}
		if f.offset >= stop {
			// sorted by offset: no overlaps possible past this point
			break
		}

		results = append(results, f)
	}

	return results
}

// Region is one finding of Analyze: either a Gap or a Collision.
type Region interface {
	isRegion()
}

// Gap is a maximal half-open interval [Start, Stop) covered by no fragment.
type Gap struct {
	Start int
	Stop  int
}

func (Gap) isRegion() {}

// Len returns the gap length in bytes.
func (g Gap) Len() int { return g.Stop - g.Start }

func (g Gap) String() string {
	return fmt.Sprintf("gap %#x-%#x (%d bytes)", g.Start, g.Stop, g.Len())
}

// Collision is a pair of fragments whose byte intervals overlap. First
// precedes Second in offset order (insertion order at equal offsets).
// Collisions are a reportable condition, not an error: Materialize resolves
// them by last-write-wins in insertion order.
type Collision struct {
	First  Fragment
	Second Fragment
}

func (Collision) isRegion() {}

func (c Collision) String() string {
	return fmt.Sprintf("collision %#x-%#x overlaps %#x-%#x", c.First.Offset(), c.First.End(), c.Second.Offset(), c.Second.End())
}

// Analyze scans the fragments in offset order and reports gaps and
// collisions, interleaved in scan order. An empty buffer yields an empty
// result.
//
// A gap before the first fragment is reported, but a trailing gap past the
// last fragment is not, even when the declared length leaves room after it.
// Callers relying on gap reports must account for that asymmetry.
func (b *Buffer) Analyze() []Region {
	frags := make([]Fragment, 0, len(b.fragments))
	for _, f := range b.SortedFragments() {
		// zero-length fragments occupy no interval
		if f.Len() > 0 {
			frags = append(frags, f)
		}
	}
	if len(frags) == 0 {
		return nil
	}

	var regions []Region

	if first := frags[0]; first.offset != 0 {
		regions = append(regions, Gap{Start: 0, Stop: first.offset})
	}

	for i := 0; i < len(frags)-1; i++ {
		// A fragment can collide with several subsequent fragments. They are
		// offset-sorted, so the first non-colliding one ends the scan.
		for j := i + 1; j < len(frags); j++ {
			if frags[i].End() <= frags[j].offset {
				break
			}
			regions = append(regions, Collision{First: frags[i], Second: frags[j]})
		}

		if gap := frags[i+1].offset - frags[i].End(); gap > 0 {
			regions = append(regions, Gap{Start: frags[i].End(), Stop: frags[i+1].offset})
		}
	}

	return regions
}
