package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/payloadbuf/buffer"
)

func TestMain(m *testing.M) {
	// Render without ANSI sequences so assertions see plain cells.
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func stripBuffer(t *testing.T) *buffer.Buffer {
	t.Helper()
	pb, err := buffer.New(32)
	require.NoError(t, err)
	require.NoError(t, pb.Add(0, buffer.Raw{Value: "AAAAAAAA"}, buffer.WithTags("chain A")))
	require.NoError(t, pb.Add(16, buffer.Raw{Value: "BBBBBBBB"}, buffer.WithTags("chain B")))

	return pb
}

func TestStrip(t *testing.T) {
	out := Strip(stripBuffer(t), 32)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	cells := strings.Repeat(fragmentCell, 8) + strings.Repeat(fillerCell, 8) +
		strings.Repeat(fragmentCell, 8) + strings.Repeat(fillerCell, 8)
	require.Equal(t, cells+"  0x0-0x20", lines[0])

	require.Contains(t, lines[1], "■ chain A")
	require.Contains(t, lines[1], "■ chain B")
}

func TestStrip_Empty(t *testing.T) {
	pb, err := buffer.New(0)
	require.NoError(t, err)
	require.Empty(t, Strip(pb, 64))
}

func TestCellOwners_LastInsertionWins(t *testing.T) {
	pb, err := buffer.New(8)
	require.NoError(t, err)
	require.NoError(t, pb.Add(0, buffer.Raw{Value: "AAAA"}))
	require.NoError(t, pb.Add(2, buffer.Raw{Value: "BBBB"}))

	owners := cellOwners(pb, 8)
	require.Equal(t, []int{0, 0, 1, 1, 1, 1, -1, -1}, owners)
}

func TestCellOwners_SmallFragmentClaimsACell(t *testing.T) {
	pb, err := buffer.New(1024)
	require.NoError(t, err)
	require.NoError(t, pb.Add(512, buffer.Raw{Value: "A"}))

	owners := cellOwners(pb, 16)
	require.Equal(t, 0, owners[8])
}

func TestWrapped(t *testing.T) {
	out := Wrapped(stripBuffer(t), 16)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	require.Equal(t, "00 │ "+strings.Repeat(fragmentCell, 8)+strings.Repeat(fillerCell, 8), lines[0])
	require.Equal(t, "10 │ "+strings.Repeat(fragmentCell, 8)+strings.Repeat(fillerCell, 8), lines[1])
	require.Contains(t, lines[2], "chain A")
}

func TestWrapped_Empty(t *testing.T) {
	pb, err := buffer.New(0)
	require.NoError(t, err)
	require.Empty(t, Wrapped(pb, 16))
}
