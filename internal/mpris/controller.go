// Package mpris publishes the playback controller on the session bus as an
// MPRIS media player, and lets a second process drive a running daemon.
package mpris

import (
	"time"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
)

// Controller is the part of the playback controller exposed over MPRIS.
type Controller interface {
	Play(track *playlist.Track)
	Pause()
	Resume()
	Stop()
	Next()
	Previous()
	Seek(position time.Duration)
	AddTrack(track *playlist.Track)

	Status() playback.Status
	IsPrepared() bool
	CurrentTrack() *playlist.Track
	Playlist() []*playlist.Track
	HasNext() bool
	HasPrevious() bool
	Position() time.Duration
	Duration() time.Duration
	Subscribe() *playback.Subscription
}

// Info is a snapshot of a running player.
type Info struct {
	Status   string
	Title    string
	Artist   string
	Position time.Duration
	Length   time.Duration
}
