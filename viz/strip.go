// Package viz renders visual charts of a payload buffer's fragment layout:
// a 1-D strip scaled to a terminal width, a 2-D wrapped-row byte view, and
// an interactive viewer with per-fragment tooltips.
//
// Fragments are colored by their main tag; the tag→color assignment is
// stable across runs. Regions owned by no fragment render as dimmed filler
// cells. Where fragments overlap, the later insertion is drawn on top,
// matching what Materialize produces.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arloliu/payloadbuf/buffer"
	"github.com/arloliu/payloadbuf/internal/hash"
)

// palette holds the ANSI colors main tags are mapped onto, by tag hash.
var palette = []lipgloss.Color{
	"1", "2", "3", "4", "5", "6",
	"9", "10", "11", "12", "13", "14",
}

var fillerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

func tagStyle(tag string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette[hash.ColorIndex(tag, len(palette))])
}

const (
	fragmentCell = "█"
	fillerCell   = "·"
)

// Strip renders the buffer as a single row of width cells, each cell colored
// by the main tag of the fragment owning it, followed by a main-tag legend.
// An empty buffer renders an empty string.
func Strip(b *buffer.Buffer, width int) string {
	if b.Len() == 0 || width <= 0 {
		return ""
	}

	return renderStrip(b, width, -1) + "\n" + Legend(b)
}

// renderStrip draws the strip row. When selected is a valid insertion index,
// that fragment's cells render reversed to highlight it.
func renderStrip(b *buffer.Buffer, width, selected int) string {
	length := b.Len()
	owners := cellOwners(b, width)
	frags := b.Fragments()

	var sb strings.Builder
	for cell := 0; cell < width; cell++ {
		idx := owners[cell]
		if idx < 0 {
			sb.WriteString(fillerStyle.Render(fillerCell))

			continue
		}

		style := tagStyle(frags[idx].MainTag())
		if idx == selected {
			style = style.Reverse(true)
		}
		sb.WriteString(style.Render(fragmentCell))
	}
	fmt.Fprintf(&sb, "  0x0-%#x", length)

	return sb.String()
}

// cellOwners scales the buffer onto width cells and returns, per cell, the
// insertion index of the fragment drawn there, or -1 for filler. Fragments
// paint in insertion order so the latest insertion owns contested cells,
// and every non-empty fragment claims at least one cell.
func cellOwners(b *buffer.Buffer, width int) []int {
	length := b.Len()
	owners := make([]int, width)
	for i := range owners {
		owners[i] = -1
	}
	if length == 0 {
		return owners
	}

	for idx, f := range b.Fragments() {
		if f.Len() == 0 || f.Offset() >= length {
			continue
		}
		start := f.Offset() * width / length
		stop := max(f.End()*width/length, start+1)
		for cell := start; cell < stop && cell < width; cell++ {
			owners[cell] = idx
		}
	}

	return owners
}

// Legend renders one swatch per main tag, in tag order.
func Legend(b *buffer.Buffer) string {
	tags := b.MainTags()
	if len(tags) == 0 {
		return ""
	}

	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, tagStyle(tag).Render("■")+" "+tag)
	}

	return strings.Join(parts, "  ")
}

// Wrapped renders the buffer as rows of perRow byte cells with a hex offset
// gutter, one cell per byte:
//
//	00 │ ····████████████
//	10 │ ████············
//
// An empty buffer renders an empty string.
func Wrapped(b *buffer.Buffer, perRow int) string {
	length := b.Len()
	if length == 0 || perRow <= 0 {
		return ""
	}

	owners := byteOwners(b)
	frags := b.Fragments()
	gutterW := len(fmt.Sprintf("%x", length-1))

	var lines []string
	for rowStart := 0; rowStart < length; rowStart += perRow {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%0*x │ ", gutterW, rowStart)
		for off := rowStart; off < min(rowStart+perRow, length); off++ {
			if idx := owners[off]; idx >= 0 {
				sb.WriteString(tagStyle(frags[idx].MainTag()).Render(fragmentCell))
			} else {
				sb.WriteString(fillerStyle.Render(fillerCell))
			}
		}
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n") + "\n" + Legend(b)
}

// byteOwners returns, per byte of the effective length, the insertion index
// of the fragment whose data lands there after materialization, or -1 for
// filler bytes.
func byteOwners(b *buffer.Buffer) []int {
	length := b.Len()
	owners := make([]int, length)
	for i := range owners {
		owners[i] = -1
	}

	for idx, f := range b.Fragments() {
		for off := f.Offset(); off < f.End() && off < length; off++ {
			owners[off] = idx
		}
	}

	return owners
}
