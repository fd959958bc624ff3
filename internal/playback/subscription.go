package playback

import (
	"sync"
	"time"
)

// eventBufferSize is the per-channel buffer. Events beyond it are dropped
// until the subscriber catches up.
const eventBufferSize = 16

// Subscription delivers controller events to one consumer. Read from the
// channels until Done is closed; nothing else is ever closed.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	PlaylistChanged <-chan PlaylistChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	state    chan StateChange
	track    chan TrackChange
	position chan PositionChange
	playlist chan PlaylistChange
	errs     chan ErrorEvent
	done     chan struct{}
	once     sync.Once
}

func newSubscription() *Subscription {
	s := &Subscription{
		state:    make(chan StateChange, eventBufferSize),
		track:    make(chan TrackChange, eventBufferSize),
		position: make(chan PositionChange, eventBufferSize),
		playlist: make(chan PlaylistChange, eventBufferSize),
		errs:     make(chan ErrorEvent, eventBufferSize),
		done:     make(chan struct{}),
	}
	s.StateChanged = s.state
	s.TrackChanged = s.track
	s.PositionChanged = s.position
	s.PlaylistChanged = s.playlist
	s.Error = s.errs
	s.Done = s.done
	return s
}

// close closes Done. Safe to call more than once.
func (s *Subscription) close() {
	s.once.Do(func() { close(s.done) })
}

// trySend delivers v unless the buffer is full.
func trySend[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)       { trySend(s.state, e) }
func (s *Subscription) sendTrack(e TrackChange)       { trySend(s.track, e) }
func (s *Subscription) sendPlaylist(e PlaylistChange) { trySend(s.playlist, e) }
func (s *Subscription) sendError(e ErrorEvent)        { trySend(s.errs, e) }

func (s *Subscription) sendPosition(pos time.Duration) {
	trySend(s.position, PositionChange{Position: pos})
}
