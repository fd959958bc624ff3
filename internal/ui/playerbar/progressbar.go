package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/ui/render"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: 1:23  ▓▓▓▓▓░░░░░  4:56
// A zero duration is treated as a live stream: 1:23  ░░░░░░░░░░  LIVE
func RenderProgressBar(position, duration time.Duration, width int) string {
	posStr := render.Duration(position)
	durStr := "LIVE"
	if duration > 0 {
		durStr = render.Duration(duration)
	}

	fixedWidth := lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := max(min(int(float64(barWidth)*ratio), barWidth), 0)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)

	return posStr + "  " + bar + "  " + durStr
}
