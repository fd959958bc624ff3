// Package headerbar renders the single-line title bar with the transport
// status.
package headerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/ui/render"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Title is the application name shown on the left.
const Title = "wavestream"

// State is what the header shows on the right.
type State struct {
	Status  playback.Status
	HasPrev bool
	HasNext bool
}

// Render returns the header bar string for the given width.
// Below 20 columns only the title is drawn.
func Render(st State, width int) string {
	t := styles.T()
	s := t.S()

	title := " " + styles.Gradient(Title, t.Primary, t.Secondary, true)
	if width < 20 {
		return render.Row(title, "", width)
	}

	prev, next := s.Subtle, s.Subtle
	if st.HasPrev {
		prev = s.Base
	}
	if st.HasNext {
		next = s.Base
	}

	var statusStyle lipgloss.Style
	switch st.Status {
	case playback.StatusPlaying:
		statusStyle = s.Playing
	case playback.StatusPaused:
		statusStyle = s.Paused
	default:
		statusStyle = s.Muted
	}

	right := prev.Render("⏮") + " " + statusStyle.Render(st.Status.String()) + " " + next.Render("⏭") + " "
	return render.Row(title, right, width)
}
