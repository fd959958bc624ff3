package headerbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/wavestream/internal/playback"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		expect string
	}{
		{"stopped", State{Status: playback.StatusStopped}, "Stopped"},
		{"playing", State{Status: playback.StatusPlaying, HasNext: true}, "Playing"},
		{"paused", State{Status: playback.StatusPaused, HasPrev: true}, "Paused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.state, 60)
			plain := ansi.Strip(out)
			assert.Contains(t, plain, Title)
			assert.Contains(t, plain, tt.expect)
			assert.Contains(t, plain, "⏮")
			assert.Contains(t, plain, "⏭")
			assert.Equal(t, 60, lipgloss.Width(out))
		})
	}
}

func TestRender_Narrow(t *testing.T) {
	plain := ansi.Strip(Render(State{Status: playback.StatusPlaying}, 15))
	assert.Contains(t, plain, Title)
	assert.NotContains(t, plain, "Playing")
}
