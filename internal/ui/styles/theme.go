// Package styles holds the TUI color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles.
type Theme struct {
	Primary   lipgloss.Color // playing track, focused borders
	Secondary lipgloss.Color // paused and buffering states

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Base      lipgloss.Style
	Muted     lipgloss.Style
	Subtle    lipgloss.Style
	Title     lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Cursor    lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	PanelOn   lipgloss.Style
	ProgressA lipgloss.Style // elapsed part of a progress bar
	ProgressB lipgloss.Style // remaining part
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	panel := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder())

	return &Styles{
		Base:      base,
		Muted:     lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:    lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:     base.Bold(true),
		Playing:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(t.Secondary),
		Cursor:    lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Error:     lipgloss.NewStyle().Foreground(t.Error),
		Panel:     panel.BorderForeground(t.Border),
		PanelOn:   panel.BorderForeground(t.BorderFocus),
		ProgressA: lipgloss.NewStyle().Foreground(t.Primary),
		ProgressB: lipgloss.NewStyle().Foreground(t.FgSubtle),
	}
}
