// Package playlistpanel renders the playlist with a scrolling cursor and a
// marker on the current track.
package playlistpanel

import (
	"fmt"
	"strings"

	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/ui"
	"github.com/llehouerou/wavestream/internal/ui/render"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

// Model is the playlist panel.
type Model struct {
	ui.Base
	tracks  []*playlist.Track
	playing int // index of the current track, -1 when none
	pos     int // cursor position
	offset  int // first visible row
}

// New returns an empty, focused panel.
func New() Model {
	m := Model{playing: -1}
	m.SetFocused(true)
	return m
}

// SetTracks replaces the listed tracks. The cursor stays on the same index
// when it still exists.
func (m *Model) SetTracks(tracks []*playlist.Track, playing int) {
	m.tracks = tracks
	m.playing = playing
	m.clamp()
}

// SetPlaying marks the current track.
func (m *Model) SetPlaying(index int) {
	m.playing = index
}

// Tracks returns the listed tracks.
func (m Model) Tracks() []*playlist.Track {
	return m.tracks
}

// Cursor returns the cursor position.
func (m Model) Cursor() int {
	return m.pos
}

// Selected returns the track under the cursor, or nil for an empty list.
func (m Model) Selected() *playlist.Track {
	if m.pos < 0 || m.pos >= len(m.tracks) {
		return nil
	}
	return m.tracks[m.pos]
}

func (m Model) rows() int {
	return m.ListHeight(ui.PanelOverhead)
}

// Move moves the cursor by delta rows.
func (m *Model) Move(delta int) {
	m.Jump(m.pos + delta)
}

// Jump places the cursor at index, clamped to the list.
func (m *Model) Jump(index int) {
	if len(m.tracks) == 0 {
		return
	}
	m.pos = max(min(index, len(m.tracks)-1), 0)
	m.ensureVisible()
}

// JumpToPlaying centers the cursor on the current track.
func (m *Model) JumpToPlaying() {
	if m.playing < 0 || m.playing >= len(m.tracks) {
		return
	}
	m.pos = m.playing
	m.offset = max(m.pos-m.rows()/2, 0)
	m.ensureVisible()
}

func (m *Model) clamp() {
	if len(m.tracks) == 0 {
		m.pos, m.offset = 0, 0
		return
	}
	m.pos = max(min(m.pos, len(m.tracks)-1), 0)
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	height := m.rows()
	if height <= 0 {
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)

	if m.pos < m.offset+margin {
		m.offset = max(m.pos-margin, 0)
	}
	if m.pos >= m.offset+height-margin {
		m.offset = m.pos - height + margin + 1
	}
	m.offset = max(min(m.offset, len(m.tracks)-height), 0)
}

// visibleRange returns the visible indices [start, end).
func (m Model) visibleRange() (int, int) {
	height := m.rows()
	if height <= 0 || len(m.tracks) == 0 {
		return 0, 0
	}
	return m.offset, min(m.offset+height, len(m.tracks))
}

// View renders the panel at its configured size.
func (m Model) View() string {
	s := styles.T().S()
	panel := s.Panel
	if m.IsFocused() {
		panel = s.PanelOn
	}

	innerWidth := max(m.Width()-2, 0)
	height := m.rows()

	header := render.Row(
		s.Title.Render("Playlist"),
		s.Muted.Render(fmt.Sprintf("%d tracks", len(m.tracks))),
		innerWidth,
	)
	lines := []string{header, s.Subtle.Render(render.Separator(innerWidth))}

	if len(m.tracks) == 0 {
		lines = append(lines, s.Muted.Render(render.TruncateAndPad("No tracks. Pass a playlist or URL on the command line.", innerWidth)))
	}

	start, end := m.visibleRange()
	numWidth := len(fmt.Sprint(len(m.tracks)))
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(i, numWidth, innerWidth))
	}

	for len(lines) < height+ui.HeaderHeight {
		lines = append(lines, "")
	}

	return panel.Width(innerWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(i, numWidth, width int) string {
	s := styles.T().S()
	t := m.tracks[i]

	marker := "  "
	if i == m.playing {
		marker = "▶ "
	}
	label := t.Name()
	if t.Artist() != "" {
		label = t.Artist() + " - " + label
	}
	prefix := fmt.Sprintf("%s%*d  ", marker, numWidth, i+1)
	row := prefix + render.TruncateAndPad(label, max(width-len([]rune(prefix)), 0))

	switch {
	case i == m.pos && m.IsFocused():
		return s.Cursor.Render(row)
	case i == m.playing:
		return s.Playing.Render(row)
	default:
		return s.Base.Render(row)
	}
}
