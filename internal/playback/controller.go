package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/player"
	"github.com/llehouerou/wavestream/internal/playlist"
)

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the control surface renderer.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithSession sets the media session handle.
func WithSession(s Session) Option {
	return func(c *Controller) {
		if s != nil {
			c.session = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the playlist, the current track and the engine lifecycle.
//
// Every command and query runs on a single control goroutine. Engine callbacks
// are posted to the same goroutine before they touch any state.
type Controller struct {
	engine   player.Interface
	notifier Notifier
	session  Session
	log      *zap.Logger

	reqs      chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// Owned by the control goroutine.
	state    State
	prepared bool
	current  *playlist.Track
	playlist *playlist.Playlist
	client   Client
	// cycle increases on every Play, Stop and Close; engine events of an
	// older cycle are dropped.
	cycle uint64

	dispatch *dispatcher

	subsMu sync.Mutex
	subs   []*Subscription
}

// New creates a controller driving engine and starts its control goroutine.
func New(engine player.Interface, opts ...Option) *Controller {
	c := &Controller{
		engine:   engine,
		notifier: nopNotifier{},
		session:  nopSession{},
		log:      zap.NewNop(),
		reqs:     make(chan func()),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    StateIdle,
		playlist: playlist.New(),
		dispatch: newDispatcher(),
	}
	for _, opt := range opts {
		opt(c)
	}
	engine.SetCallbacks(c.callbacks(c.cycle))
	go c.loop()
	return c
}

func (c *Controller) loop() {
	defer close(c.done)
	for {
		select {
		case fn := <-c.reqs:
			fn()
		case <-c.quit:
			return
		}
	}
}

// do runs fn on the control goroutine and waits for it.
// It reports false when the controller is closed.
func (c *Controller) do(fn func()) bool {
	finished := make(chan struct{})
	select {
	case c.reqs <- func() { fn(); close(finished) }:
	case <-c.done:
		return false
	}
	<-finished
	return true
}

// query runs fn on the control goroutine and returns its result,
// or the zero value once the controller is closed.
func query[T any](c *Controller, fn func() T) T {
	var v T
	c.do(func() { v = fn() })
	return v
}

// post queues fn on the control goroutine without waiting.
// Engine callbacks use it since they may fire from inside an engine call.
func (c *Controller) post(fn func()) {
	go func() {
		select {
		case c.reqs <- fn:
		case <-c.done:
		}
	}()
}

func (c *Controller) callbacks(cycle uint64) player.Callbacks {
	return player.Callbacks{
		OnPrepared:   func() { c.post(func() { c.handlePrepared(cycle) }) },
		OnError:      func(err *player.Error) { c.post(func() { c.handleError(cycle, err) }) },
		OnCompletion: func() { c.post(func() { c.handleCompletion(cycle) }) },
	}
}

// SetClient registers the observer. A nil client unregisters.
func (c *Controller) SetClient(cl Client) {
	c.do(func() { c.client = cl })
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	select {
	case <-c.done:
		sub.close()
	default:
		c.subs = append(c.subs, sub)
	}
	return sub
}

// Close releases the engine, moves to End and stops the goroutines.
// Commands issued afterwards are ignored.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.do(func() {
			c.cycle++
			c.prepared = false
			c.engine.Release()
			c.setState(StateEnd)
			c.session.SetActive(false)
		})
		close(c.quit)
		<-c.done
		c.dispatch.close()

		c.subsMu.Lock()
		for _, sub := range c.subs {
			sub.close()
		}
		c.subs = nil
		c.subsMu.Unlock()
	})
	return nil
}

// Queries

// State returns the lifecycle state.
func (c *Controller) State() State {
	return query(c, func() State { return c.state })
}

// Status returns the coarse playback status.
func (c *Controller) Status() Status {
	return query(c, func() Status { return c.state.Status() })
}

// IsPrepared reports whether the engine has prepared the current source.
func (c *Controller) IsPrepared() bool {
	return query(c, func() bool { return c.prepared })
}

// CurrentTrack returns the current track, or nil if none.
func (c *Controller) CurrentTrack() *playlist.Track {
	return query(c, func() *playlist.Track { return c.current })
}

// CurrentTrackIndex returns the playlist position of the current track, or -1.
func (c *Controller) CurrentTrackIndex() int {
	index := -1
	c.do(func() { index = c.index() })
	return index
}

// HasNext reports whether a track follows the current one.
func (c *Controller) HasNext() bool {
	return query(c, c.hasNext)
}

// HasPrevious reports whether a track precedes the current one.
func (c *Controller) HasPrevious() bool {
	return query(c, c.hasPrevious)
}

// Playlist returns a copy of the playlist.
func (c *Controller) Playlist() []*playlist.Track {
	return query(c, c.playlist.Tracks)
}

// Position returns the playback position, or 0 when not prepared.
func (c *Controller) Position() time.Duration {
	return query(c, func() time.Duration {
		if !c.prepared {
			return 0
		}
		return c.engine.Position()
	})
}

// Duration returns the current track length, or 0 when not prepared.
func (c *Controller) Duration() time.Duration {
	return query(c, func() time.Duration {
		if !c.prepared {
			return 0
		}
		return c.engine.Duration()
	})
}

func (c *Controller) index() int {
	return c.playlist.IndexOf(c.current)
}

func (c *Controller) hasNext() bool {
	i := c.index()
	return i > -1 && i < c.playlist.Len()-1
}

func (c *Controller) hasPrevious() bool {
	return c.index() > 0
}

// Observer fan-out. Called on the control goroutine only.

func (c *Controller) setState(s State) {
	prev := c.state
	if prev == s {
		return
	}
	c.state = s
	c.log.Debug("state changed", zap.Stringer("state", s), zap.Int("code", s.Code()))

	c.broadcast(func(sub *Subscription) { sub.sendState(StateChange{Previous: prev, Current: s}) })
	c.notifyClient(func(cl Client) { cl.OnInternalStatusChanged(s.Code()) })
	if prev.Status() != s.Status() {
		c.notifyClient(Client.OnStatusChanged)
	}
}

func (c *Controller) notifyClient(fn func(Client)) {
	cl := c.client
	if cl == nil {
		return
	}
	c.dispatch.post(func() { fn(cl) })
}

func (c *Controller) broadcast(fn func(*Subscription)) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

// render refreshes the control surface while a track is current.
func (c *Controller) render(action Action) {
	if c.current == nil {
		return
	}
	c.notifier.Notify(c.current, action)
}

// activeAction is the surface action matching the current state.
func (c *Controller) activeAction() Action {
	switch c.state {
	case StateInitialized, StatePreparing, StatePrepared, StateStarted:
		return ActionPause
	default:
		return ActionPlay
	}
}
