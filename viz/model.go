package viz

import (
	"cmp"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/arloliu/payloadbuf/buffer"
)

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Help, k.Quit}}
}

var defaultKeys = keyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous fragment"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next fragment"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	tooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is a Bubble Tea model browsing a buffer's fragments on the strip
// chart: left/right move the selection in offset order and a tooltip shows
// the selected fragment's offset, size, leading bytes, name and tags.
type Model struct {
	buf   *buffer.Buffer
	frags []buffer.Fragment // insertion order, as painted on the strip
	order []int             // insertion indexes in offset order
	keys  keyMap
	help  help.Model
	width int

	// cursor indexes into order; -1 when the buffer has no fragments.
	cursor int
}

// NewModel builds a viewer for the buffer. The buffer must not be mutated
// while the viewer runs.
func NewModel(b *buffer.Buffer) Model {
	frags := b.Fragments()

	// Navigation follows offset order; the stable sort keeps equal-offset
	// fragments in insertion order.
	order := make([]int, len(frags))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(frags[a].Offset(), frags[b].Offset())
	})

	cursor := 0
	if len(order) == 0 {
		cursor = -1
	}

	return Model{
		buf:    b,
		frags:  frags,
		order:  order,
		keys:   defaultKeys,
		help:   help.New(),
		width:  80,
		cursor: cursor,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Next):
			if m.cursor >= 0 && m.cursor < len(m.order)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.help.Width = msg.Width
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Fragments"))
	sb.WriteString("\n\n")

	stripWidth := min(m.width-12, m.buf.Len())
	if stripWidth < 8 {
		stripWidth = 8
	}

	selected := -1
	if m.cursor >= 0 {
		selected = m.order[m.cursor]
	}
	sb.WriteString(renderStrip(m.buf, stripWidth, selected))
	sb.WriteString("\n")
	sb.WriteString(Legend(m.buf))
	sb.WriteString("\n\n")

	if selected >= 0 {
		sb.WriteString(m.tooltip(m.frags[selected]))
		sb.WriteString("\n")
	} else {
		sb.WriteString("(no fragments)\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

// tooltip renders the selected fragment's details, mirroring the hover
// tooltip of the chart: offset, size, leading byte dump, name and tags.
func (m Model) tooltip(f buffer.Fragment) string {
	dump := f.Data()
	if len(dump) > 8 {
		dump = dump[:8]
	}

	name := f.Name()
	if name == "" {
		name = "(unnamed)"
	}
	name = runewidth.Truncate(name, max(m.width-24, 12), "…")

	rows := []string{
		labelStyle.Render("name   ") + name,
		labelStyle.Render("offset ") + fmt.Sprintf("%#x", f.Offset()),
		labelStyle.Render("size   ") + fmt.Sprintf("%d", f.Len()),
		labelStyle.Render("dump   ") + hex.EncodeToString(dump),
		labelStyle.Render("tags   ") + strings.Join(f.Tags(), ", "),
	}

	return tooltipStyle.Render(strings.Join(rows, "\n"))
}

// Run shows the interactive viewer for the buffer and blocks until the user
// quits.
func Run(b *buffer.Buffer) error {
	_, err := tea.NewProgram(NewModel(b)).Run()

	return err
}
