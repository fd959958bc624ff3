// Package app is the terminal front end: a Bubble Tea model that drives the
// playback controller and observes it as a client.
package app

import (
	"time"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
)

// PlaybackMessage is implemented by messages that originate from the
// playback controller.
type PlaybackMessage interface {
	playbackMessage()
}

// TickMsg is sent periodically to refresh the position while playing.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// StatusChangedMsg is sent when the coarse status changes.
type StatusChangedMsg struct{}

func (StatusChangedMsg) playbackMessage() {}

// PrevNextChangedMsg is sent when previous/next availability may have changed.
type PrevNextChangedMsg struct{}

func (PrevNextChangedMsg) playbackMessage() {}

// TrackChangedMsg is sent when the current track changes.
type TrackChangedMsg struct{}

func (TrackChangedMsg) playbackMessage() {}

// StateChangedMsg carries the engine-level state code.
type StateChangedMsg struct {
	State playback.State
}

func (StateChangedMsg) playbackMessage() {}

// PlaylistChangedMsg is sent when the playlist is replaced or extended.
type PlaylistChangedMsg struct {
	Tracks []*playlist.Track
	Index  int
}

func (PlaylistChangedMsg) playbackMessage() {}

// PlaybackErrorMsg reports a failed source, prepare or engine error.
type PlaybackErrorMsg struct {
	Event playback.ErrorEvent
}

func (PlaybackErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the controller shuts down.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// StderrMsg carries a line captured from C audio libraries.
type StderrMsg string
