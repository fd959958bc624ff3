package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/stderr"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents waits for the next playlist or error event on the
// subscription. Status and track changes arrive through Client instead.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.PlaylistChanged:
			return PlaylistChangedMsg{Tracks: e.Tracks, Index: e.Index}
		case e := <-sub.Error:
			return PlaybackErrorMsg{Event: e}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchStderr waits for a line captured from C libraries.
func WatchStderr() tea.Cmd {
	return func() tea.Msg {
		return StderrMsg(<-stderr.Messages)
	}
}
