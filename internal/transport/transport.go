// Package transport maps named remote-control actions onto controller commands.
package transport

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownAction is returned by Parse for names that are not actions.
var ErrUnknownAction = errors.New("unknown action")

// Action is a named remote-control action.
type Action int

const (
	Play Action = iota + 1
	Pause
	Rewind
	FastForward
	Next
	Previous
	Stop
)

var names = map[Action]string{
	Play:        "play",
	Pause:       "pause",
	Rewind:      "rewind",
	FastForward: "fast-forward",
	Next:        "next",
	Previous:    "previous",
	Stop:        "stop",
}

// All returns every action in canonical order.
func All() []Action {
	return []Action{Play, Pause, Rewind, FastForward, Next, Previous, Stop}
}

// String returns the canonical action name.
func (a Action) String() string {
	if n, ok := names[a]; ok {
		return n
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Parse resolves an action name. Matching is case-insensitive, accepts the
// legacy "action_" prefix and treats '_' and '-' alike.
func Parse(s string) (Action, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "action_")
	key = strings.ReplaceAll(key, "_", "-")
	if key == "fastforward" {
		key = "fast-forward"
	}
	for _, a := range All() {
		if names[a] == key {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Commands is the subset of the playback controller that actions drive.
type Commands interface {
	Resume()
	Pause()
	Next()
	Previous()
	Stop()
	Seek(position time.Duration)
	Position() time.Duration
}

// Dispatch runs the command matching a. Rewind and fast-forward move the
// position by step.
func Dispatch(c Commands, a Action, step time.Duration) error {
	switch a {
	case Play:
		c.Resume()
	case Pause:
		c.Pause()
	case Next:
		c.Next()
	case Previous:
		c.Previous()
	case Stop:
		c.Stop()
	case Rewind:
		c.Seek(max(c.Position()-step, 0))
	case FastForward:
		c.Seek(c.Position() + step)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownAction, a)
	}
	return nil
}
