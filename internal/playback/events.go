package playback

import (
	"time"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// StateChange is emitted on every state transition.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when Play switches the current track.
//
// Emitted by:
//   - Play
//   - Next/Previous: when an adjacent track exists
//   - completion: when the finished track is followed by another
//
// NOT emitted when Next/Previous hit a playlist boundary.
type TrackChange struct {
	Previous      *playlist.Track
	Current       *playlist.Track
	PreviousIndex int
	Index         int
}

// PlaylistChange is emitted when the playlist contents change.
type PlaylistChange struct {
	Tracks []*playlist.Track
	Index  int
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when the engine fails.
type ErrorEvent struct {
	Operation string // "source", "prepare" or "engine"
	Track     *playlist.Track
	Err       error
}
