package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/ui/helpbindings"
	"github.com/llehouerou/wavestream/internal/ui/playerbar"
	"github.com/llehouerou/wavestream/internal/ui/playlistpanel"
)

// Controller is the part of the playback controller the TUI drives.
type Controller interface {
	Play(track *playlist.Track)
	Pause()
	Resume()
	Stop()
	Next()
	Previous()
	Seek(position time.Duration)

	State() playback.State
	IsPrepared() bool
	CurrentTrack() *playlist.Track
	CurrentTrackIndex() int
	Playlist() []*playlist.Track
	HasNext() bool
	HasPrevious() bool
	Position() time.Duration
	Duration() time.Duration
	Subscribe() *playback.Subscription
}

// Volume is the optional engine volume control.
type Volume interface {
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
}

const volumeStep = 0.05

// Model is the root TUI model.
type Model struct {
	ctrl     Controller
	volume   Volume
	sub      *playback.Subscription
	keys     *keymap.Resolver
	seekStep time.Duration

	Playlist playlistpanel.Model
	Mode     playerbar.DisplayMode
	Help     helpbindings.Model
	ShowHelp bool

	state    playback.State
	track    *playlist.Track
	index    int
	hasPrev  bool
	hasNext  bool
	position time.Duration
	duration time.Duration

	ErrorMsg  string
	StderrMsg string
	ticking   bool

	width, height int
}

// Option configures a Model.
type Option func(*Model)

// WithVolume enables the volume keys.
func WithVolume(v Volume) Option {
	return func(m *Model) { m.volume = v }
}

// WithSeekStep sets the rewind/fast-forward step.
func WithSeekStep(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.seekStep = d
		}
	}
}

// New creates the model. The controller must outlive the program.
func New(ctrl Controller, opts ...Option) Model {
	m := Model{
		ctrl:     ctrl,
		sub:      ctrl.Subscribe(),
		keys:     keymap.NewResolver(keymap.Bindings),
		seekStep: 10 * time.Second,
		Playlist: playlistpanel.New(),
		Help:     helpbindings.New(),
		index:    -1,
	}
	for _, o := range opts {
		o(&m)
	}
	m.refresh()
	m.Playlist.SetTracks(ctrl.Playlist(), m.index)
	return m
}

// Init starts listening for controller events.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{WatchServiceEvents(m.sub), WatchStderr()}
	if m.state == playback.StateStarted {
		cmds = append(cmds, TickCmd())
	}
	return tea.Batch(cmds...)
}

// refresh reloads the cached snapshot from the controller.
func (m *Model) refresh() {
	m.state = m.ctrl.State()
	m.track = m.ctrl.CurrentTrack()
	m.index = m.ctrl.CurrentTrackIndex()
	m.hasPrev = m.ctrl.HasPrevious()
	m.hasNext = m.ctrl.HasNext()
	m.position = m.ctrl.Position()
	m.duration = m.ctrl.Duration()
	m.Playlist.SetPlaying(m.index)
}

// PlayerState builds the player bar state from the cached snapshot.
func (m Model) PlayerState() playerbar.State {
	s := playerbar.State{
		Phase:       m.state,
		Index:       m.index,
		Total:       len(m.Playlist.Tracks()),
		Position:    m.position,
		Duration:    m.duration,
		DisplayMode: m.Mode,
	}
	if m.track != nil {
		s.Title = m.track.Name()
		s.Artist = m.track.Artist()
		s.Source = m.track.URL()
	}
	if m.volume != nil {
		s.ShowVolume = true
		s.Volume = m.volume.Volume()
		s.Muted = m.volume.Muted()
	}
	return s
}
