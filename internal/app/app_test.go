package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/ui/playerbar"
)

type fakeController struct {
	mu       sync.Mutex
	calls    []string
	state    playback.State
	tracks   []*playlist.Track
	index    int
	position time.Duration
	duration time.Duration
}

func (f *fakeController) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeController) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeController) Play(t *playlist.Track) {
	f.record("Play(" + t.Name() + ")")
	f.index = slicesIndex(f.tracks, t)
	f.state = playback.StatePreparing
}
func (f *fakeController) Pause()  { f.record("Pause"); f.state = playback.StatePaused }
func (f *fakeController) Resume() { f.record("Resume"); f.state = playback.StateStarted }
func (f *fakeController) Stop()   { f.record("Stop"); f.state = playback.StateIdle }
func (f *fakeController) Next()   { f.record("Next") }
func (f *fakeController) Previous() {
	f.record("Previous")
}
func (f *fakeController) Seek(p time.Duration) {
	f.record(fmt.Sprintf("Seek(%s)", p))
	f.position = p
}

func (f *fakeController) State() playback.State { return f.state }
func (f *fakeController) IsPrepared() bool {
	return f.state == playback.StateStarted || f.state == playback.StatePaused
}
func (f *fakeController) CurrentTrack() *playlist.Track {
	if f.index < 0 || f.index >= len(f.tracks) {
		return nil
	}
	return f.tracks[f.index]
}
func (f *fakeController) CurrentTrackIndex() int          { return f.index }
func (f *fakeController) Playlist() []*playlist.Track     { return f.tracks }
func (f *fakeController) HasNext() bool                   { return f.index >= 0 && f.index < len(f.tracks)-1 }
func (f *fakeController) HasPrevious() bool               { return f.index > 0 }
func (f *fakeController) Position() time.Duration         { return f.position }
func (f *fakeController) Duration() time.Duration         { return f.duration }
func (f *fakeController) Subscribe() *playback.Subscription { return nil }

func slicesIndex(tracks []*playlist.Track, t *playlist.Track) int {
	for i, x := range tracks {
		if x == t {
			return i
		}
	}
	return -1
}

type fakeVolume struct {
	level float64
	muted bool
}

func (v *fakeVolume) SetVolume(l float64) { v.level = l }
func (v *fakeVolume) Volume() float64     { return v.level }
func (v *fakeVolume) SetMuted(m bool)     { v.muted = m }
func (v *fakeVolume) Muted() bool         { return v.muted }

func newTestTracks() []*playlist.Track {
	return []*playlist.Track{
		playlist.NewTrack("a", "Alpha", "Station", "https://example.com/a.mp3", ""),
		playlist.NewTrack("b", "Bravo", "Station", "https://example.com/b.mp3", ""),
		playlist.NewTrack("c", "Charlie", "Station", "https://example.com/c.mp3", ""),
	}
}

func newTestModel(state playback.State, index int) (Model, *fakeController) {
	ctrl := &fakeController{state: state, tracks: newTestTracks(), index: index, duration: 3 * time.Minute}
	m := New(ctrl, WithSeekStep(15*time.Second))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), ctrl
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	result, ok := updated.(Model)
	require.True(t, ok, "Update should return Model")
	return result, cmd
}

func TestNew_TakesSnapshot(t *testing.T) {
	m, _ := newTestModel(playback.StateStarted, 1)

	assert.Equal(t, 1, m.index)
	assert.True(t, m.hasPrev)
	assert.True(t, m.hasNext)
	assert.Len(t, m.Playlist.Tracks(), 3)

	s := m.PlayerState()
	assert.Equal(t, "Bravo", s.Title)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 3, s.Total)
	assert.False(t, s.ShowVolume)
}

func TestSpace_PlaysSelectedWhenIdle(t *testing.T) {
	m, ctrl := newTestModel(playback.StateIdle, -1)

	m, _ = press(t, m, "down")
	_, _ = press(t, m, " ")

	assert.Equal(t, []string{"Play(Bravo)"}, ctrl.Calls())
}

func TestSpace_TogglesPause(t *testing.T) {
	m, ctrl := newTestModel(playback.StateStarted, 0)

	m, _ = press(t, m, " ")
	_, _ = press(t, m, " ")

	assert.Equal(t, []string{"Pause", "Resume"}, ctrl.Calls())
}

func TestSpace_IgnoredWhileBuffering(t *testing.T) {
	m, ctrl := newTestModel(playback.StatePreparing, 0)

	_, _ = press(t, m, " ")

	assert.Empty(t, ctrl.Calls())
}

func TestEnter_PlaysTrackUnderCursor(t *testing.T) {
	m, ctrl := newTestModel(playback.StateStarted, 0)

	m, _ = press(t, m, "G")
	_, _ = press(t, m, "enter")

	assert.Equal(t, []string{"Play(Charlie)"}, ctrl.Calls())
}

func TestTransportKeys(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"n", "Next"},
		{"p", "Previous"},
		{"s", "Stop"},
		{"right", "Seek(1m15s)"},
		{"left", "Seek(45s)"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, ctrl := newTestModel(playback.StateStarted, 1)
			ctrl.position = time.Minute

			_, _ = press(t, m, tt.key)

			assert.Equal(t, []string{tt.want}, ctrl.Calls())
		})
	}
}

func TestRewind_ClampsAtZero(t *testing.T) {
	m, ctrl := newTestModel(playback.StateStarted, 0)
	ctrl.position = 5 * time.Second

	_, _ = press(t, m, "left")

	assert.Equal(t, []string{"Seek(0s)"}, ctrl.Calls())
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(playback.StateIdle, -1)

	_, cmd := press(t, m, "q")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestVolumeKeys(t *testing.T) {
	ctrl := &fakeController{state: playback.StateStarted, tracks: newTestTracks(), index: 0}
	vol := &fakeVolume{level: 0.5}
	m := New(ctrl, WithVolume(vol))

	m, _ = press(t, m, "+")
	assert.InDelta(t, 0.55, vol.level, 1e-9)

	m, _ = press(t, m, "-")
	m, _ = press(t, m, "-")
	assert.InDelta(t, 0.45, vol.level, 1e-9)

	_, _ = press(t, m, "m")
	assert.True(t, vol.muted)

	vol.level = 0.99
	_, _ = press(t, m, "+")
	assert.InDelta(t, 1.0, vol.level, 1e-9)
}

func TestToggleDisplayMode(t *testing.T) {
	m, _ := newTestModel(playback.StateStarted, 0)

	m, _ = press(t, m, "v")
	assert.Equal(t, playerbar.ModeExpanded, m.Mode)

	m, _ = press(t, m, "v")
	assert.Equal(t, playerbar.ModeCompact, m.Mode)
}

func TestTickMsg_ContinuesWhenPlaying(t *testing.T) {
	m, ctrl := newTestModel(playback.StateStarted, 0)
	ctrl.position = 42 * time.Second

	updated, cmd := m.Update(TickMsg{})

	assert.NotNil(t, cmd, "expected tick command to continue")
	assert.Equal(t, 42*time.Second, updated.(Model).position)
}

func TestTickMsg_StopsWhenNotPlaying(t *testing.T) {
	m, _ := newTestModel(playback.StateIdle, -1)

	_, cmd := m.Update(TickMsg{})

	assert.Nil(t, cmd, "expected no tick command when stopped")
}

func TestStatusChanged_StartsSingleTicker(t *testing.T) {
	m, ctrl := newTestModel(playback.StateIdle, 0)
	ctrl.state = playback.StateStarted

	updated, cmd := m.Update(StatusChangedMsg{})
	assert.NotNil(t, cmd)

	_, cmd = updated.Update(StateChangedMsg{State: playback.StateStarted})
	assert.Nil(t, cmd, "a pending tick should not be duplicated")
}

func TestTrackChanged_RefreshesAndClearsError(t *testing.T) {
	m, ctrl := newTestModel(playback.StateStarted, 0)
	m.ErrorMsg = "old"
	ctrl.index = 2

	updated, _ := m.Update(TrackChangedMsg{})
	result := updated.(Model)

	assert.Empty(t, result.ErrorMsg)
	assert.Equal(t, "Charlie", result.PlayerState().Title)
	assert.False(t, result.hasNext)
}

func TestPlaylistChanged(t *testing.T) {
	m, _ := newTestModel(playback.StateIdle, -1)
	tracks := append(newTestTracks(), playlist.NewTrack("d", "Delta", "", "https://example.com/d.mp3", ""))

	updated, _ := m.Update(PlaylistChangedMsg{Tracks: tracks, Index: -1})

	assert.Len(t, updated.(Model).Playlist.Tracks(), 4)
}

func TestPlaybackError_ShownUntilKey(t *testing.T) {
	m, _ := newTestModel(playback.StateError, 0)

	updated, _ := m.Update(PlaybackErrorMsg{Event: playback.ErrorEvent{
		Operation: "source",
		Track:     m.ctrl.CurrentTrack(),
		Err:       errors.New("connection refused"),
	}})
	m = updated.(Model)

	assert.Equal(t, "Failed to open track 'Alpha': connection refused", m.ErrorMsg)
	assert.Contains(t, ansi.Strip(m.View()), "connection refused")

	m, _ = press(t, m, "j")
	assert.Empty(t, m.ErrorMsg)
}

func TestServiceClosed_Quits(t *testing.T) {
	m, _ := newTestModel(playback.StateIdle, -1)

	_, cmd := m.Update(ServiceClosedMsg{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m, _ := newTestModel(playback.StateStarted, 1)

	out := ansi.Strip(m.View())
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "wavestream")
	assert.Contains(t, lines[0], "Playing")
	assert.Contains(t, out, "Station - Charlie")
	assert.Contains(t, out, "space Play/pause")
	assert.Len(t, lines, 30)
}

func TestView_Help(t *testing.T) {
	m, _ := newTestModel(playback.StateIdle, -1)

	m, _ = press(t, m, "?")
	require.True(t, m.ShowHelp)
	assert.Contains(t, ansi.Strip(m.View()), "Fast forward")

	// Playback keys are swallowed while the help is open.
	m, cmd := press(t, m, "q")
	assert.Nil(t, cmd, "q closes the help instead of quitting")
	assert.False(t, m.ShowHelp)
	assert.Contains(t, ansi.Strip(m.View()), "Playlist")
}

func TestHelp_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(playback.StateIdle, -1)
	m, _ = press(t, m, "?")

	_, cmd := press(t, m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClient_SendsMessages(t *testing.T) {
	var got []tea.Msg
	c := NewClient(func(msg tea.Msg) { got = append(got, msg) })

	c.OnStatusChanged()
	c.OnHasPrevNextChanged()
	c.OnCurrentTrackChanged()
	c.OnInternalStatusChanged(playback.StatePaused.Code())
	c.OnInternalStatusChanged(42)

	assert.Equal(t, []tea.Msg{
		StatusChangedMsg{},
		PrevNextChangedMsg{},
		TrackChangedMsg{},
		StateChangedMsg{State: playback.StatePaused},
	}, got)
}
