package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/ui/render"
)

const contentRows = 4 // Must match Height(ModeExpanded) - 2 for borders

// RenderExpanded renders the detailed view: title, artist, source and
// engine state, then a block progress bar.
func RenderExpanded(s State, width int) string {
	innerWidth := max(width-6, 0)
	if innerWidth < 34 {
		// Too narrow, fall back to compact
		return renderCompact(s, width)
	}

	status := statusStyle(s).Render(fmt.Sprintf("%s %s (%d)", s.symbol(), s.Phase, s.Phase.Code()))
	titleWidth := min(innerWidth*2/3, innerWidth-lipgloss.Width(status)-1)
	titleLine := render.Row(
		titleStyle().Render(render.Truncate(s.Title, max(titleWidth, 0))),
		status,
		innerWidth,
	)

	artist := s.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}
	right := ""
	if s.Index >= 0 && s.Total > 0 {
		right = metaStyle().Render(fmt.Sprintf("track %d of %d", s.Index+1, s.Total))
	}
	artistLine := render.Row(
		artistStyle().Render(render.Truncate(artist, min(innerWidth*2/3, innerWidth-lipgloss.Width(right)-1))),
		right,
		innerWidth,
	)

	sourceLine := metaStyle().Render(render.Truncate(s.Source, innerWidth))

	barWidth := innerWidth
	vol := ""
	if s.ShowVolume {
		vol = RenderVolume(s.Volume, s.Muted)
		barWidth -= lipgloss.Width(vol) + 3
	}
	progress := RenderProgressBar(s.Position, s.Duration, barWidth)
	if vol != "" {
		progress += "   " + vol
	}

	lines := []string{titleLine, artistLine, sourceLine, timeStyle().Render(progress)}
	return barStyle().Padding(0, 2).Width(width - 2).Render(strings.Join(lines[:contentRows], "\n"))
}
