// Package report renders text reports of a payload buffer's fragment layout:
// an offset-sorted fragment table and a gap/collision listing. Output is
// optionally colorized, with every tag assigned a stable color.
package report

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/arloliu/payloadbuf/buffer"
	"github.com/arloliu/payloadbuf/internal/hash"
)

// palette holds the colors tags are mapped onto. The assignment is by tag
// hash, so a tag keeps its color across buffers and runs.
var palette = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
	color.New(color.FgHiRed),
	color.New(color.FgHiGreen),
	color.New(color.FgHiYellow),
	color.New(color.FgHiBlue),
	color.New(color.FgHiMagenta),
	color.New(color.FgHiCyan),
}

func tagColor(tag string) *color.Color {
	return palette[hash.ColorIndex(tag, len(palette))]
}

// dumpBytes is how many leading payload bytes the fragment table shows.
const dumpBytes = 4

// Fragments renders one line per fragment in offset order:
//
//	10-14 ( 4): 41424344 ret address (untagged)
//
// Offsets are hex, padded to the width of the occupied end. The dump shows
// the first four payload bytes. When colorized, each line takes its main
// tag's color and each tag in the trailing list its own.
//
// An empty buffer renders an empty string.
func Fragments(b *buffer.Buffer, colorized bool) string {
	frags := b.SortedFragments()
	if len(frags) == 0 {
		return ""
	}

	w := hexWidth(b.OccupiedEnd())
	nameW := 0
	for _, f := range frags {
		nameW = max(nameW, len(f.Name()))
	}

	lines := make([]string, 0, len(frags))
	for _, f := range frags {
		dump := f.Data()
		if len(dump) > dumpBytes {
			dump = dump[:dumpBytes]
		}

		txt := fmt.Sprintf("%0*x-%0*x (%*x): %s %-*s",
			w, f.Offset(), w, f.End(), w, f.Len(),
			hex.EncodeToString(dump), nameW+1, f.Name())

		var tags string
		if colorized {
			txt = tagColor(f.MainTag()).Sprint(txt)
			colored := make([]string, 0, len(f.Tags()))
			for _, tag := range f.Tags() {
				colored = append(colored, tagColor(tag).Sprint(tag))
			}
			tags = " (" + strings.Join(colored, ", ") + ")"
		} else {
			tags = " (" + strings.Join(f.Tags(), ", ") + ")"
		}

		lines = append(lines, txt+tags)
	}

	return strings.Join(lines, "\n")
}

// Regions renders the buffer's gap and collision analysis, one line per
// region in scan order:
//
//	 0-10 (10)
//	Collision at 10-18 ( 8) overlaps 14-1c for  8 bytes
//
// A gap before the first fragment is reported; a trailing gap past the last
// fragment is not (see buffer.Analyze). When colorized, collision lines are
// red. An empty buffer renders an empty string.
func Regions(b *buffer.Buffer, colorized bool) string {
	regions := b.Analyze()
	if len(regions) == 0 {
		return ""
	}

	w := hexWidth(b.OccupiedEnd())
	lines := make([]string, 0, len(regions))
	for _, region := range regions {
		switch r := region.(type) {
		case buffer.Gap:
			lines = append(lines, fmt.Sprintf("%*x-%*x (%*x)", w, r.Start, w, r.Stop, w, r.Len()))
		case buffer.Collision:
			txt := fmt.Sprintf("Collision at %0*x-%0*x (%*x) overlaps %0*x-%0*x for %*x bytes",
				w, r.First.Offset(), w, r.First.End(), w, r.First.Len(),
				w, r.Second.Offset(), w, r.Second.End(), w, r.Second.Len())
			if colorized {
				txt = color.New(color.FgRed).Sprint(txt)
			}
			lines = append(lines, txt)
		}
	}

	return strings.Join(lines, "\n")
}

// hexWidth returns the number of hex digits used to format offsets up to
// end.
func hexWidth(end int) int {
	if end <= 1 {
		return 1
	}

	return int(math.Ceil(math.Log(float64(end)) / math.Log(16)))
}
