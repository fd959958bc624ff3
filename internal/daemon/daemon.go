// Package daemon wires the playback controller to the audio engine and the
// remote control surfaces, then runs it until asked to quit.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/app"
	"github.com/llehouerou/wavestream/internal/artwork"
	"github.com/llehouerou/wavestream/internal/config"
	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/mpris"
	"github.com/llehouerou/wavestream/internal/notify"
	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/player"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/transport"
)

// Options selects what the daemon starts.
type Options struct {
	// Locations are a single playlist file, or track paths and URLs.
	// Empty falls back to the configured playlist.
	Locations []string
	TUI       bool
	NoMPRIS   bool
	NoNotify  bool

	// Engine replaces the audio engine. Used by tests.
	Engine player.Interface
	// Notifier replaces the desktop notification backend. Used by tests.
	Notifier notify.Notifier
}

// Daemon owns the running components.
type Daemon struct {
	cfg  *config.Config
	log  *zap.Logger
	opts Options

	engine   player.Interface
	ctrl     *playback.Controller
	surface  *notify.Surface
	session  *mpris.Adapter
	loadOpts playlist.LoadOptions

	quit      chan struct{}
	quitOnce  sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New builds the components. Desktop integrations that fail to start are
// logged and skipped.
func New(cfg *config.Config, log *zap.Logger, opts Options) (*Daemon, error) {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Daemon{
		cfg:  cfg,
		log:  log,
		opts: opts,
		quit: make(chan struct{}),
	}

	pc := cfg.GetPlayerConfig()
	ac := cfg.GetArtworkConfig()
	nc := cfg.GetNotifyConfig()
	mc := cfg.GetMPRISConfig()
	plc := cfg.GetPlaylistConfig()

	d.engine = opts.Engine
	if d.engine == nil {
		d.engine = player.New(
			player.WithLogger(log.Named("player")),
			player.WithSampleRate(pc.SampleRate),
			player.WithMaxSourceBytes(pc.MaxSourceBytes()),
			player.WithVolume(*pc.Volume),
		)
	}

	cache, err := artwork.NewCache(ac.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("artwork cache: %w", err)
	}
	fetcher := artwork.NewFetcher(cache,
		artwork.WithSize(ac.Size),
		artwork.WithTimeout(ac.Timeout),
		artwork.WithLogger(log.Named("artwork")),
	)

	d.loadOpts = playlist.LoadOptions{
		ReadTags:   *plc.ReadTags,
		ArtworkDir: filepath.Join(ac.CacheDir, "embedded"),
	}

	if *mc.Enabled && !opts.NoMPRIS {
		session, err := mpris.New(mc.Name,
			mpris.WithQuit(d.Quit),
			mpris.WithOnStop(d.withdraw),
			mpris.WithLogger(log.Named("mpris")),
		)
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			d.session = session
		}
	}

	surfaceOpts := []notify.SurfaceOption{
		notify.WithArtwork(fetcher),
		notify.WithTimeout(int32(*nc.TimeoutMS)),
		notify.WithLogger(log.Named("notify")),
	}
	if d.session != nil {
		surfaceOpts = append(surfaceOpts, notify.WithArtworkSink(d.session))
	}
	d.surface = notify.NewSurface(d.notifier(nc, opts), surfaceOpts...)

	ctrlOpts := []playback.Option{
		playback.WithNotifier(d.surface),
		playback.WithLogger(log.Named("playback")),
	}
	if d.session != nil {
		ctrlOpts = append(ctrlOpts, playback.WithSession(d.session))
	}
	d.ctrl = playback.New(d.engine, ctrlOpts...)

	if d.session != nil {
		d.session.Bind(d.ctrl)
	}
	d.surface.OnAction(func(a transport.Action) {
		d.log.Debug("notification action", zap.Stringer("action", a))
		if err := transport.Dispatch(d.ctrl, a, pc.SeekStep); err != nil {
			d.log.Warn("dispatch notification action", zap.Error(err))
		}
		if a == transport.Stop {
			d.withdraw()
		}
	})

	return d, nil
}

func (d *Daemon) notifier(nc config.NotifyConfig, opts Options) notify.Notifier {
	if opts.Notifier != nil {
		return opts.Notifier
	}
	if !*nc.Enabled || opts.NoNotify {
		return notify.Disabled()
	}
	n, err := notify.New(config.AppName)
	if err != nil {
		d.log.Warn(errmsg.Format(errmsg.OpNotifyStart, err))
		return notify.Disabled()
	}
	return n
}

// withdraw removes the notification after an explicit stop.
func (d *Daemon) withdraw() {
	if d.surface != nil {
		d.surface.Withdraw()
	}
}

// Controller returns the playback controller.
func (d *Daemon) Controller() *playback.Controller {
	return d.ctrl
}

// Quit asks Run to return. Safe to call more than once and from any goroutine.
func (d *Daemon) Quit() {
	d.quitOnce.Do(func() { close(d.quit) })
}

// Run loads the playlist and autoplays its first track when configured. It
// blocks until ctx is cancelled or Quit is called. In TUI mode it returns when
// the program exits.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	file, tracks, err := d.initialTracks()
	if err != nil {
		return err
	}
	d.ctrl.SetPlaylist(tracks)
	d.log.Info("playlist loaded", zap.String("file", file), zap.Int("tracks", len(tracks)))

	if *d.cfg.GetPlayerConfig().Autoplay && len(tracks) > 0 {
		d.ctrl.Play(tracks[0])
	}

	if file != "" && *d.cfg.GetPlaylistConfig().Watch {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			err := playlist.Watch(ctx, file, d.loadOpts, d.reload, d.log.Named("playlist"))
			if err != nil && !errors.Is(err, context.Canceled) {
				d.log.Warn(errmsg.FormatWith(errmsg.OpPlaylistWatch, file, err))
			}
		}()
	}

	if d.opts.TUI {
		return d.runTUI(ctx)
	}

	select {
	case <-ctx.Done():
	case <-d.quit:
	}
	return nil
}

// initialTracks resolves the startup playlist. file is set when the tracks
// come from a playlist file that can be watched.
func (d *Daemon) initialTracks() (file string, tracks []*playlist.Track, err error) {
	locs := d.opts.Locations
	switch {
	case len(locs) == 1 && playlist.IsPlaylistFile(locs[0]):
		file = locs[0]
	case len(locs) > 0:
		return "", playlist.FromLocations(locs, d.loadOpts), nil
	default:
		file = d.cfg.GetPlaylistConfig().File
	}
	if file == "" {
		return "", nil, nil
	}

	tracks, err = playlist.Load(file, d.loadOpts)
	if err != nil {
		return "", nil, errors.New(errmsg.FormatWith(errmsg.OpPlaylistLoad, file, err))
	}
	return file, tracks, nil
}

// reload applies an edited playlist file, keeping the identity of unchanged
// tracks so the current one stays current.
func (d *Daemon) reload(next []*playlist.Track) {
	tracks := playlist.Reconcile(d.ctrl.Playlist(), next)
	d.ctrl.SetPlaylist(tracks)
	d.log.Info("playlist reloaded", zap.Int("tracks", len(tracks)))
}

func (d *Daemon) runTUI(ctx context.Context) error {
	opts := []app.Option{app.WithSeekStep(d.cfg.GetPlayerConfig().SeekStep)}
	if v, ok := d.engine.(app.Volume); ok {
		opts = append(opts, app.WithVolume(v))
	}

	p := tea.NewProgram(app.New(d.ctrl, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	d.ctrl.SetClient(app.NewClient(p.Send))

	go func() {
		select {
		case <-d.quit:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Close stops playback and releases every component.
func (d *Daemon) Close() error {
	var errs []error
	d.closeOnce.Do(func() {
		d.Quit()
		errs = append(errs, d.ctrl.Close())
		d.wg.Wait()
		errs = append(errs, d.surface.Close())
		if d.session != nil {
			errs = append(errs, d.session.Close())
		}
	})
	return errors.Join(errs...)
}
