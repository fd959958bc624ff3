//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
)

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	mu   sync.RWMutex
	ctrl Controller

	active atomic.Bool
	onStop func()
	log    *zap.Logger

	artMu    sync.Mutex
	artTrack string
	artURL   string
}

func (p *playerAdapter) bind(ctrl Controller) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctrl = ctrl
}

func (p *playerAdapter) controller() (Controller, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.ctrl == nil {
		return nil, errNotBound
	}
	return p.ctrl, nil
}

func (p *playerAdapter) setArtwork(trackID, artURL string) {
	p.artMu.Lock()
	defer p.artMu.Unlock()
	p.artTrack, p.artURL = trackID, artURL
}

func (p *playerAdapter) artworkFor(trackID string) string {
	p.artMu.Lock()
	defer p.artMu.Unlock()
	if p.artTrack != trackID {
		return ""
	}
	return p.artURL
}

func (p *playerAdapter) Next() error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	c.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	c.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	c.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	if c.Status() == playback.StatusPlaying {
		c.Pause()
		return nil
	}
	return p.Play()
}

func (p *playerAdapter) Stop() error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	c.Stop()
	if p.onStop != nil {
		p.onStop()
	}
	return nil
}

// Play resumes the prepared track, or starts the current track or the
// first playlist entry when nothing is prepared.
func (p *playerAdapter) Play() error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	if c.IsPrepared() {
		c.Resume()
		return nil
	}
	if t := c.CurrentTrack(); t != nil {
		c.Play(t)
		return nil
	}
	if tracks := c.Playlist(); len(tracks) > 0 {
		c.Play(tracks[0])
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	c.Seek(c.Position() + time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	t := c.CurrentTrack()
	if t == nil || formatTrackID(t.ID()) != trackID {
		return nil // stale request for another track
	}
	c.Seek(time.Duration(position) * time.Microsecond)
	return nil
}

// OpenUri appends the location to the playlist and plays it.
//
//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(uri string) error {
	c, err := p.controller()
	if err != nil {
		return err
	}
	tracks := playlist.FromLocations([]string{uri}, playlist.LoadOptions{})
	if len(tracks) == 0 {
		return fmt.Errorf("mpris: cannot open %q", uri)
	}
	c.AddTrack(tracks[0])
	c.Play(tracks[0])
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	c, err := p.controller()
	if err != nil {
		return types.PlaybackStatusStopped, nil //nolint:nilerr // unbound reads as stopped
	}
	if !p.active.Load() {
		return types.PlaybackStatusStopped, nil
	}
	switch c.Status() {
	case playback.StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatusPaused:
		return types.PlaybackStatusPaused, nil
	case playback.StatusStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	c, err := p.controller()
	if err != nil {
		return types.Metadata{}, nil //nolint:nilerr // unbound has no metadata
	}
	track := c.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID())),
		Length:  types.Microseconds(c.Duration().Microseconds()),
		Title:   track.Name(),
		ArtUrl:  p.artworkFor(track.ID()),
	}
	if track.Artist() != "" {
		meta.Artist = []string{track.Artist()}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume control not exposed via the controller
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	c, err := p.controller()
	if err != nil {
		return 0, nil //nolint:nilerr // unbound is at zero
	}
	return c.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	c, err := p.controller()
	if err != nil {
		return false, nil //nolint:nilerr // unbound
	}
	return c.HasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	c, err := p.controller()
	if err != nil {
		return false, nil //nolint:nilerr // unbound
	}
	return c.HasPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	c, err := p.controller()
	if err != nil {
		return false, nil //nolint:nilerr // unbound
	}
	return c.CurrentTrack() != nil || len(c.Playlist()) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	c, err := p.controller()
	if err != nil {
		return false, nil //nolint:nilerr // unbound
	}
	return c.IsPrepared(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
