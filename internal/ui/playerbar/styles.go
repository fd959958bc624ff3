package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

func barStyle() lipgloss.Style    { return styles.T().S().Panel }
func titleStyle() lipgloss.Style  { return styles.T().S().Title }
func artistStyle() lipgloss.Style { return styles.T().S().Muted }
func metaStyle() lipgloss.Style   { return styles.T().S().Subtle }
func timeStyle() lipgloss.Style   { return styles.T().S().Muted }
func filledStyle() lipgloss.Style { return styles.T().S().ProgressA }
func emptyStyle() lipgloss.Style  { return styles.T().S().ProgressB }

func statusStyle(s State) lipgloss.Style {
	switch s.Phase {
	case playback.StateStarted:
		return styles.T().S().Playing
	case playback.StateError:
		return styles.T().S().Error
	default:
		return styles.T().S().Paused
	}
}
