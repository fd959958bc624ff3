//go:build linux

package mpris

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/wavestream/internal/transport"
)

const (
	busPrefix   = "org.mpris.MediaPlayer2."
	objectPath  = "/org/mpris/MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"
)

// call describes the MPRIS method invocation for a transport action.
type call struct {
	method string
	args   []any
}

// callFor maps a transport action onto the MPRIS Player method that performs it.
func callFor(a transport.Action, step time.Duration) (call, error) {
	switch a {
	case transport.Play:
		return call{method: "Play"}, nil
	case transport.Pause:
		return call{method: "Pause"}, nil
	case transport.Next:
		return call{method: "Next"}, nil
	case transport.Previous:
		return call{method: "Previous"}, nil
	case transport.Stop:
		return call{method: "Stop"}, nil
	case transport.Rewind:
		return call{method: "Seek", args: []any{-step.Microseconds()}}, nil
	case transport.FastForward:
		return call{method: "Seek", args: []any{step.Microseconds()}}, nil
	}
	return call{}, fmt.Errorf("%w: %v", transport.ErrUnknownAction, a)
}

// Send performs action on the daemon published as org.mpris.MediaPlayer2.<name>.
func Send(ctx context.Context, name string, action transport.Action, step time.Duration) error {
	c, err := callFor(action, step)
	if err != nil {
		return err
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(busPrefix+name, objectPath)
	if err := obj.CallWithContext(ctx, playerIface+"."+c.method, 0, c.args...).Err; err != nil {
		return fmt.Errorf("%s %s: %w", busPrefix+name, c.method, err)
	}
	return nil
}

// Query reads the playback status and current metadata of a running daemon.
func Query(ctx context.Context, name string) (Info, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return Info{}, fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(busPrefix+name, objectPath)

	var props map[string]dbus.Variant
	err = obj.CallWithContext(ctx, "org.freedesktop.DBus.Properties.GetAll", 0, playerIface).Store(&props)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", busPrefix+name, err)
	}
	return infoFromProps(props), nil
}

func infoFromProps(props map[string]dbus.Variant) Info {
	var info Info
	if v, ok := props["PlaybackStatus"].Value().(string); ok {
		info.Status = v
	}
	if v, ok := props["Position"].Value().(int64); ok {
		info.Position = time.Duration(v) * time.Microsecond
	}
	meta, ok := props["Metadata"].Value().(map[string]dbus.Variant)
	if !ok {
		return info
	}
	if v, ok := meta["xesam:title"].Value().(string); ok {
		info.Title = v
	}
	if v, ok := meta["xesam:artist"].Value().([]string); ok && len(v) > 0 {
		info.Artist = v[0]
	}
	if v, ok := meta["mpris:length"].Value().(int64); ok {
		info.Length = time.Duration(v) * time.Microsecond
	}
	return info
}
