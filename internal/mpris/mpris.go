//go:build linux

package mpris

import (
	"errors"
	"sync"

	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/playback"
)

// emitter publishes PropertiesChanged signals.
type emitter interface {
	OnPlayPause() error
	OnTitle() error
	OnSeek(position types.Microseconds) error
	OnOptions() error
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithQuit sets the function run by the MPRIS Quit method. Without one,
// CanQuit is false.
func WithQuit(fn func()) Option {
	return func(a *Adapter) { a.root.quit = fn }
}

// WithOnStop sets a hook run after the MPRIS Stop method.
func WithOnStop(fn func()) Option {
	return func(a *Adapter) { a.player.onStop = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// Adapter connects the playback controller to MPRIS over D-Bus.
// It also serves as the controller's media session.
type Adapter struct {
	name   string
	server *server.Server
	emit   emitter
	root   *rootAdapter
	player *playerAdapter
	log    *zap.Logger

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates and starts a new MPRIS adapter published as
// org.mpris.MediaPlayer2.<name>. Call Bind to attach the controller.
func New(name string, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		name:   name,
		root:   &rootAdapter{identity: name},
		player: &playerAdapter{},
		log:    zap.NewNop(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.player.log = a.log

	a.server = server.NewServer(name, a.root, a.player)
	a.emit = events.NewEventHandler(a.server).Player

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn("mpris server stopped", zap.Error(err))
		}
	}()

	return a, nil
}

// Bind attaches the controller and starts relaying its changes as
// PropertiesChanged signals.
func (a *Adapter) Bind(ctrl Controller) {
	a.player.bind(ctrl)
	sub := ctrl.Subscribe()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		relay(sub, a.emit, a.done, a.log)
	}()
}

// SetActive implements playback.Session. It runs on the controller goroutine
// and only records the flag.
func (a *Adapter) SetActive(active bool) {
	a.player.active.Store(active)
}

// SetArtwork records the artwork file for a track and announces the new metadata.
func (a *Adapter) SetArtwork(trackID, artURL string) {
	a.player.setArtwork(trackID, artURL)
	if err := a.emit.OnTitle(); err != nil {
		a.log.Debug("emit metadata", zap.Error(err))
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.done)
		a.wg.Wait()
		err = a.server.Stop()
	})
	return err
}

// relay turns controller events into PropertiesChanged signals until sub or
// done is closed.
func relay(sub *playback.Subscription, emit emitter, done <-chan struct{}, log *zap.Logger) {
	check := func(what string, err error) {
		if err != nil {
			log.Debug("emit "+what, zap.Error(err))
		}
	}
	for {
		select {
		case <-done:
			return
		case <-sub.Done:
			return
		case <-sub.StateChanged:
			check("status", emit.OnPlayPause())
			check("options", emit.OnOptions())
		case <-sub.TrackChanged:
			check("metadata", emit.OnTitle())
			check("options", emit.OnOptions())
		case <-sub.PlaylistChanged:
			check("options", emit.OnOptions())
		case e := <-sub.PositionChanged:
			check("seek", emit.OnSeek(types.Microseconds(e.Position.Microseconds())))
		case <-sub.Error:
			check("status", emit.OnPlayPause())
		}
	}
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	identity string
	quit     func()
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	if r.quit != nil {
		r.quit()
	}
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return r.quit != nil, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil // Track list interface not implemented
}

func (r *rootAdapter) Identity() (string, error) {
	return r.identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// errNotBound is returned by player methods called before Bind.
var errNotBound = errors.New("mpris: no controller bound")
