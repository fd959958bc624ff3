// Package helpbindings provides a scrollable panel listing the keybindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/ui"
	"github.com/llehouerou/wavestream/internal/ui/render"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{"playback", "playlist", "global"}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "General",
	"playback": "Playback",
	"playlist": "Playlist",
}

// chrome is the title, separator and footer lines inside the border.
const chrome = 3

// Model holds the state for the help panel.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help panel listing every binding.
func New() Model {
	var m Model
	for _, ctx := range categoryOrder {
		m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
	}
	return m
}

// Update scrolls on movement keys. It reports whether msg closes the panel.
func (m *Model) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "?", "esc", "q":
		return true
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	case "g", "home":
		m.scrollOffset = 0
	case "G", "end":
		m.scrollOffset = m.maxScroll()
	}
	return false
}

// Reset scrolls back to the top.
func (m *Model) Reset() {
	m.scrollOffset = 0
}

// View renders the panel at its full size.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	innerWidth := max(m.Width()-2, 0)

	lines := m.buildContent()
	visible := m.visibleHeight()
	start := min(m.scrollOffset, len(lines))
	end := min(start+visible, len(lines))

	out := make([]string, 0, visible+chrome)
	out = append(out, s.Title.Render("Help"), s.Subtle.Render(render.Separator(innerWidth)))
	for _, line := range lines[start:end] {
		out = append(out, ansi.Truncate(line, innerWidth, "…"))
	}
	for len(out) < visible+2 {
		out = append(out, "")
	}
	out = append(out, s.Subtle.Render(m.buildFooter()))

	return s.PanelOn.Width(innerWidth).Render(strings.Join(out, "\n"))
}

func (m Model) buildContent() []string {
	t := styles.T()
	s := t.S()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	// Find max key width for alignment
	keyWidth := 0
	keys := make([]string, len(m.bindings))
	for i, b := range m.bindings {
		display := make([]string, len(b.Keys))
		for j, k := range b.Keys {
			display[j] = keymap.DisplayKey(k)
		}
		keys[i] = strings.Join(display, ", ")
		keyWidth = max(keyWidth, lipgloss.Width(keys[i]))
	}

	var lines []string
	current := ""
	for i, b := range m.bindings {
		if b.Context != current {
			if current != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines, s.Paused.Render(label))
			current = b.Context
		}
		lines = append(lines, keyStyle.Render(render.Pad(keys[i], keyWidth))+"  "+s.Base.Render(b.Description))
	}
	return lines
}

func (m Model) buildFooter() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	return max(m.ListHeight(ui.BorderHeight+chrome), 1)
}

func (m Model) maxScroll() int {
	return max(len(m.buildContent())-m.visibleHeight(), 0)
}
