package playback

import "github.com/llehouerou/wavestream/internal/playlist"

// Notifier renders the persistent control surface for the current track.
// Notify is called from the control loop and must not block.
type Notifier interface {
	Notify(track *playlist.Track, action Action)
}

// Session is the system-level media session handle.
type Session interface {
	SetActive(active bool)
}

// Client observes the controller. Callbacks are delivered in order on a
// dedicated goroutine; a client may call controller queries from them.
type Client interface {
	OnStatusChanged()
	OnHasPrevNextChanged()
	OnCurrentTrackChanged()
	OnInternalStatusChanged(code int)
}

type nopNotifier struct{}

func (nopNotifier) Notify(*playlist.Track, Action) {}

type nopSession struct{}

func (nopSession) SetActive(bool) {}
