package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/transport"
	"github.com/llehouerou/wavestream/internal/ui"
	"github.com/llehouerou/wavestream/internal/ui/headerbar"
	"github.com/llehouerou/wavestream/internal/ui/playerbar"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if m.handleKey(msg) {
			return m, tea.Quit
		}
		cmd = m.tickIfPlaying()
	case StderrMsg:
		m.StderrMsg = string(msg)
		cmd = WatchStderr()
	case PlaybackMessage:
		cmd = m.handlePlaybackMsg(msg)
	}
	m.layout()
	return m, cmd
}

// handlePlaybackMsg routes playback-related messages.
func (m *Model) handlePlaybackMsg(msg PlaybackMessage) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		m.ticking = false
		m.position = m.ctrl.Position()
		m.duration = m.ctrl.Duration()
		return m.tickIfPlaying()
	case TrackChangedMsg:
		m.ErrorMsg = ""
		m.refresh()
		return m.tickIfPlaying()
	case StatusChangedMsg, PrevNextChangedMsg, StateChangedMsg:
		// The controller may be ahead of the event; read the live snapshot.
		m.refresh()
		return m.tickIfPlaying()
	case PlaylistChangedMsg:
		m.index = msg.Index
		m.Playlist.SetTracks(msg.Tracks, msg.Index)
		m.hasPrev = m.ctrl.HasPrevious()
		m.hasNext = m.ctrl.HasNext()
		return WatchServiceEvents(m.sub)
	case PlaybackErrorMsg:
		name := ""
		if msg.Event.Track != nil {
			name = msg.Event.Track.Name()
		}
		m.ErrorMsg = errmsg.FormatWith(errmsg.ForPlaybackError(msg.Event.Operation), name, msg.Event.Err)
		return WatchServiceEvents(m.sub)
	case ServiceClosedMsg:
		return tea.Quit
	}
	return nil
}

// tickIfPlaying starts the position ticker unless one is already pending.
func (m *Model) tickIfPlaying() tea.Cmd {
	if m.state != playback.StateStarted || m.ticking {
		return nil
	}
	m.ticking = true
	return TickCmd()
}

// handleKey applies a key press. It reports whether the program should quit.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	m.ErrorMsg = ""

	if m.ShowHelp {
		if m.keys.Resolve(msg.String()) == keymap.ActionQuit && msg.String() != "q" {
			return true
		}
		if m.Help.Update(msg) {
			m.ShowHelp = false
		}
		return false
	}

	switch action := m.keys.Resolve(msg.String()); action {
	case keymap.ActionQuit:
		return true
	case keymap.ActionHelp:
		m.ShowHelp = true
		m.Help.Reset()
	case keymap.ActionPlayPause:
		m.playPause()
	case keymap.ActionStop:
		m.dispatch(transport.Stop)
	case keymap.ActionNextTrack:
		m.dispatch(transport.Next)
	case keymap.ActionPrevTrack:
		m.dispatch(transport.Previous)
	case keymap.ActionSeekForward:
		m.dispatch(transport.FastForward)
	case keymap.ActionSeekBack:
		m.dispatch(transport.Rewind)
	case keymap.ActionVolumeUp:
		m.adjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.adjustVolume(-volumeStep)
	case keymap.ActionToggleMute:
		if m.volume != nil {
			m.volume.SetMuted(!m.volume.Muted())
		}
	case keymap.ActionTogglePlayerDisplay:
		if m.Mode == playerbar.ModeCompact && m.width >= ui.MinExpandedWidth {
			m.Mode = playerbar.ModeExpanded
		} else {
			m.Mode = playerbar.ModeCompact
		}
	case keymap.ActionMoveUp:
		m.Playlist.Move(-1)
	case keymap.ActionMoveDown:
		m.Playlist.Move(1)
	case keymap.ActionJumpStart:
		m.Playlist.Jump(0)
	case keymap.ActionJumpEnd:
		m.Playlist.Jump(len(m.Playlist.Tracks()) - 1)
	case keymap.ActionJumpToNow:
		m.Playlist.JumpToPlaying()
	case keymap.ActionSelect:
		if t := m.Playlist.Selected(); t != nil {
			m.ctrl.Play(t)
		}
	}
	return false
}

// playPause toggles playback. From a stopped or failed state it starts the
// track under the cursor, falling back to the current track.
func (m *Model) playPause() {
	switch m.ctrl.State() {
	case playback.StateStarted:
		m.ctrl.Pause()
	case playback.StatePaused, playback.StatePrepared:
		m.ctrl.Resume()
	case playback.StateInitialized, playback.StatePreparing:
		// Buffering; the track starts on its own.
	default:
		t := m.Playlist.Selected()
		if t == nil {
			t = m.ctrl.CurrentTrack()
		}
		if t != nil {
			m.ctrl.Play(t)
		}
	}
}

func (m *Model) dispatch(a transport.Action) {
	if err := transport.Dispatch(m.ctrl, a, m.seekStep); err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpControlSend, err)
		return
	}
	m.position = m.ctrl.Position()
}

func (m *Model) adjustVolume(delta float64) {
	if m.volume == nil {
		return
	}
	m.volume.SetVolume(max(min(m.volume.Volume()+delta, 1), 0))
}

// layout sizes the playlist panel to the space left by the bars.
func (m *Model) layout() {
	if m.Mode == playerbar.ModeExpanded && m.width < ui.MinExpandedWidth {
		m.Mode = playerbar.ModeCompact
	}
	used := headerbar.Height + footerHeight
	if m.track != nil {
		used += playerbar.Height(m.Mode)
	}
	m.Playlist.SetSize(m.width, max(m.height-used, ui.PanelOverhead))
	m.Help.SetSize(m.Playlist.Width(), m.Playlist.Height())
	m.Playlist.SetTracks(m.Playlist.Tracks(), m.index)
}
