package playlistpanel

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/wavestream/internal/playlist"
)

func tracks(n int) []*playlist.Track {
	out := make([]*playlist.Track, n)
	for i := range out {
		out[i] = playlist.NewTrack(
			fmt.Sprintf("t%d", i),
			fmt.Sprintf("Track %d", i+1),
			"Artist",
			fmt.Sprintf("https://example.com/%d.mp3", i),
			"",
		)
	}
	return out
}

func newPanel(n, height int) Model {
	m := New()
	m.SetSize(60, height)
	m.SetTracks(tracks(n), -1)
	return m
}

func TestMove_ClampsToList(t *testing.T) {
	m := newPanel(3, 20)

	m.Move(-1)
	assert.Equal(t, 0, m.Cursor())

	m.Move(10)
	assert.Equal(t, 2, m.Cursor())
	assert.Equal(t, "Track 3", m.Selected().Name())
}

func TestMove_ScrollsWithMargin(t *testing.T) {
	// 14 rows minus 4 overhead leaves 10 visible rows.
	m := newPanel(50, 14)

	m.Jump(20)
	start, end := m.visibleRange()
	assert.Less(t, start, 20)
	assert.Greater(t, end, 20+2)
	assert.Equal(t, 10, end-start)

	m.Jump(49)
	_, end = m.visibleRange()
	assert.Equal(t, 50, end)
}

func TestSetTracks_ShrinkClampsCursor(t *testing.T) {
	m := newPanel(10, 20)
	m.Jump(9)

	m.SetTracks(tracks(4), 1)
	assert.Equal(t, 3, m.Cursor())

	m.SetTracks(nil, -1)
	assert.Equal(t, 0, m.Cursor())
	assert.Nil(t, m.Selected())
}

func TestJumpToPlaying(t *testing.T) {
	m := newPanel(50, 14)
	m.SetPlaying(30)

	m.JumpToPlaying()
	assert.Equal(t, 30, m.Cursor())
	start, end := m.visibleRange()
	assert.True(t, start <= 30 && 30 < end)

	m.SetPlaying(-1)
	m.Jump(0)
	m.JumpToPlaying()
	assert.Equal(t, 0, m.Cursor())
}

func TestView(t *testing.T) {
	m := newPanel(3, 10)
	m.SetPlaying(1)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Playlist")
	assert.Contains(t, out, "3 tracks")
	assert.Contains(t, out, "▶ 2  Artist - Track 2")
	assert.Equal(t, 10, lipgloss.Height(out))
	assert.LessOrEqual(t, lipgloss.Width(out), 60)
}

func TestView_Empty(t *testing.T) {
	m := newPanel(0, 10)
	assert.Contains(t, ansi.Strip(m.View()), "No tracks")
}
