package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Detailed view with source and state
)

const (
	playSymbol   = "▶"
	pauseSymbol  = "⏸"
	bufferSymbol = "…"
	errorSymbol  = "✗"
	stopSymbol   = "■"
)

// State holds everything needed to render the player bar.
type State struct {
	Phase       playback.State
	Title       string
	Artist      string
	Source      string
	Index       int // zero-based, -1 when unknown
	Total       int
	Position    time.Duration
	Duration    time.Duration // zero for live streams
	Volume      float64
	Muted       bool
	ShowVolume  bool
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 6 // 4 content rows + 2 border rows
	}
	return 3 // top border + content + bottom border
}

// Live reports whether the track has no known length.
func (s State) Live() bool {
	return s.Duration <= 0
}

func (s State) symbol() string {
	switch s.Phase {
	case playback.StateStarted:
		return playSymbol
	case playback.StatePaused:
		return pauseSymbol
	case playback.StateInitialized, playback.StatePreparing, playback.StatePrepared:
		return bufferSymbol
	case playback.StateError:
		return errorSymbol
	default:
		return stopSymbol
	}
}

// Render returns the player bar string for the given width.
// Returns empty string when no track is loaded.
func Render(s State, width int) string {
	if s.Title == "" {
		return ""
	}

	if s.DisplayMode == ModeExpanded {
		return RenderExpanded(s, width)
	}

	return renderCompact(s, width)
}

func renderCompact(s State, width int) string {
	innerWidth := max(width-6, 0)

	status := statusStyle(s).Render(s.symbol())

	var trackNum string
	if s.Index >= 0 && s.Total > 0 {
		trackNum = fmt.Sprintf("%d/%d", s.Index+1, s.Total)
	}

	timeStr := timeLabel(s)
	vol := ""
	if s.ShowVolume {
		vol = RenderVolume(s.Volume, s.Muted)
	}

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	fixed := lipgloss.Width(status) + 2 + sepWidth*2 + lipgloss.Width(timeStr)
	if trackNum != "" {
		fixed += lipgloss.Width(trackNum) + sepWidth
	}
	if vol != "" {
		fixed += lipgloss.Width(vol) + sepWidth
	}

	minBarWidth := 10
	available := innerWidth - fixed - minBarWidth

	title := s.Title
	titleWidth := lipgloss.Width(title)
	artistWidth := lipgloss.Width(s.Artist)

	var styledTitle, styledArtist string
	var used int

	switch {
	case s.Artist != "" && titleWidth+sepWidth+artistWidth <= available:
		styledTitle = titleStyle().Render(title)
		styledArtist = artistStyle().Render(s.Artist)
		used = titleWidth + sepWidth + artistWidth
	case s.Artist != "" && titleWidth+sepWidth < available:
		maxArtist := available - titleWidth - sepWidth
		styledTitle = titleStyle().Render(title)
		styledArtist = artistStyle().Render(render.Truncate(s.Artist, maxArtist))
		used = titleWidth + sepWidth + maxArtist
	default:
		maxTitle := max(available, 10)
		styledTitle = titleStyle().Render(render.Truncate(title, maxTitle))
		used = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-used-fixed, 5)

	var content strings.Builder
	content.WriteString(styledTitle)
	if styledArtist != "" {
		content.WriteString(separator)
		content.WriteString(styledArtist)
	}
	if trackNum != "" {
		content.WriteString(separator)
		content.WriteString(metaStyle().Render(trackNum))
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(lineBar(s, barWidth))
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(timeStr))
	if vol != "" {
		content.WriteString(separator)
		content.WriteString(vol)
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

func timeLabel(s State) string {
	if s.Live() {
		return render.Duration(s.Position) + " · LIVE"
	}
	return render.Duration(s.Position) + " / " + render.Duration(s.Duration)
}

// lineBar renders a thin progress line. Live streams have no end so the
// line stays empty.
func lineBar(s State, width int) string {
	var ratio float64
	if !s.Live() {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := max(min(int(float64(width)*ratio), width), 0)
	return filledStyle().Render(strings.Repeat("━", filled)) +
		emptyStyle().Render(strings.Repeat("─", width-filled))
}

// RenderVolume renders the volume indicator, e.g. "vol  80%" or "mute  80%".
func RenderVolume(volume float64, muted bool) string {
	label := "vol"
	if muted {
		label = "mute"
	}
	return timeStyle().Render(fmt.Sprintf("%s %3d%%", label, int(volume*100+0.5)))
}
