package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavestream/internal/playback"
)

// Client forwards controller callbacks to a running program as messages.
// Register it with Controller.SetClient once the program exists.
type Client struct {
	send func(tea.Msg)
}

// NewClient returns a client delivering messages through send, usually
// (*tea.Program).Send.
func NewClient(send func(tea.Msg)) *Client {
	return &Client{send: send}
}

var _ playback.Client = (*Client)(nil)

func (c *Client) OnStatusChanged() { c.send(StatusChangedMsg{}) }

func (c *Client) OnHasPrevNextChanged() { c.send(PrevNextChangedMsg{}) }

func (c *Client) OnCurrentTrackChanged() { c.send(TrackChangedMsg{}) }

func (c *Client) OnInternalStatusChanged(code int) {
	if s, ok := playback.StateFromCode(code); ok {
		c.send(StateChangedMsg{State: s})
	}
}
