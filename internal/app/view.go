package app

import (
	"strings"

	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/ui/headerbar"
	"github.com/llehouerou/wavestream/internal/ui/playerbar"
	"github.com/llehouerou/wavestream/internal/ui/render"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

const footerHeight = 1

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	parts := []string{m.renderHeader()}
	if m.ShowHelp {
		parts = append(parts, m.Help.View())
	} else {
		parts = append(parts, m.Playlist.View())
	}
	if bar := playerbar.Render(m.PlayerState(), m.width); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.renderFooter())

	return strings.Join(parts, "\n")
}

func (m Model) renderHeader() string {
	return headerbar.Render(headerbar.State{
		Status:  m.state.Status(),
		HasPrev: m.hasPrev,
		HasNext: m.hasNext,
	}, m.width)
}

func (m Model) renderFooter() string {
	s := styles.T().S()
	switch {
	case m.ErrorMsg != "":
		return s.Error.Render(render.Truncate(" "+m.ErrorMsg, m.width))
	case m.StderrMsg != "":
		return s.Subtle.Render(render.Truncate(" "+m.StderrMsg, m.width))
	}

	hints := make([]string, 0, 8)
	for _, b := range keymap.ByContext("playback") {
		hints = append(hints, keymap.Hint(b))
	}
	hints = append(hints, "? help")
	return s.Muted.Render(render.Truncate(" "+strings.Join(hints, " · "), m.width))
}
