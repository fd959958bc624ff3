package playback

import (
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/player"
	"github.com/llehouerou/wavestream/internal/playlist"
)

// Play switches to track and starts preparing it. It returns immediately;
// audio starts once the engine reports the source prepared. Failures are
// logged and reported on the Error channel, never returned.
func (c *Controller) Play(track *playlist.Track) {
	c.do(func() { c.play(track) })
}

// Pause pauses playback. Ignored unless started.
func (c *Controller) Pause() {
	c.do(c.pause)
}

// Resume continues playback of the prepared source. Ignored unless prepared.
func (c *Controller) Resume() {
	c.do(c.resume)
}

// Stop halts playback and returns to Idle.
func (c *Controller) Stop() {
	c.do(c.stop)
}

// Next plays the following track, if any.
func (c *Controller) Next() {
	c.do(c.next)
}

// Previous plays the preceding track, if any.
func (c *Controller) Previous() {
	c.do(c.previous)
}

// Seek moves to position. Ignored unless prepared.
func (c *Controller) Seek(position time.Duration) {
	c.do(func() { c.seek(position) })
}

// SetPlaylist replaces the playlist. Playback and the current track are untouched.
func (c *Controller) SetPlaylist(tracks []*playlist.Track) {
	c.do(func() {
		c.playlist.Replace(tracks)
		c.playlistChanged()
	})
}

// AddTrack appends track to the playlist.
func (c *Controller) AddTrack(track *playlist.Track) {
	if track == nil {
		return
	}
	c.do(func() {
		c.playlist.Add(track)
		c.playlistChanged()
	})
}

func (c *Controller) play(track *playlist.Track) {
	if track == nil {
		return
	}

	c.cycle++
	c.engine.SetCallbacks(c.callbacks(c.cycle))
	if c.prepared {
		c.prepared = false
		c.engine.Stop()
	}
	c.engine.Reset()

	prev, prevIndex := c.current, c.index()
	c.current = track
	index := c.index()
	c.broadcast(func(sub *Subscription) {
		sub.sendTrack(TrackChange{Previous: prev, Current: track, PreviousIndex: prevIndex, Index: index})
	})
	c.notifyClient(Client.OnCurrentTrackChanged)
	c.notifyClient(Client.OnHasPrevNextChanged)

	c.setState(StateInitialized)
	if err := c.engine.SetSource(track.URL()); err != nil {
		c.log.Error("set source failed", zap.Stringer("track", track), zap.String("url", track.URL()), zap.Error(err))
		c.broadcast(func(sub *Subscription) { sub.sendError(ErrorEvent{Operation: "source", Track: track, Err: err}) })
		return
	}

	c.setState(StatePreparing)
	if err := c.engine.PrepareAsync(); err != nil {
		c.log.Error("prepare failed", zap.Stringer("track", track), zap.Error(err))
		c.broadcast(func(sub *Subscription) { sub.sendError(ErrorEvent{Operation: "prepare", Track: track, Err: err}) })
	}
}

func (c *Controller) handlePrepared(cycle uint64) {
	if cycle != c.cycle || c.state != StatePreparing {
		c.log.Debug("ignoring stale prepared event", zap.Stringer("state", c.state))
		return
	}
	c.prepared = true
	c.setState(StatePrepared)
	c.session.SetActive(true)
	c.engine.Start()
	c.setState(StateStarted)
	c.render(ActionPause)
}

func (c *Controller) handleError(cycle uint64, err *player.Error) {
	if cycle != c.cycle {
		return
	}
	c.prepared = false
	c.log.Error("engine error",
		zap.Stringer("code", err.Code),
		zap.NamedError("detail", err.Err),
		zap.Stringer("track", c.current))
	c.setState(StateError)
	track := c.current
	c.broadcast(func(sub *Subscription) { sub.sendError(ErrorEvent{Operation: "engine", Track: track, Err: err}) })
}

func (c *Controller) handleCompletion(cycle uint64) {
	if cycle != c.cycle || c.state != StateStarted {
		return
	}
	c.setState(StatePlaybackCompleted)
	c.next()
}

func (c *Controller) pause() {
	if c.state != StateStarted {
		return
	}
	c.engine.Pause()
	c.setState(StatePaused)
	c.render(ActionPlay)
}

func (c *Controller) resume() {
	if !c.prepared {
		return
	}
	if c.engine.IsPlaying() {
		c.engine.SeekTo(0)
	} else {
		c.engine.Start()
	}
	c.setState(StateStarted)
	c.render(ActionPause)
}

func (c *Controller) stop() {
	wasPrepared := c.prepared
	c.prepared = false
	c.cycle++
	c.engine.Stop()
	c.engine.Reset()
	if wasPrepared {
		c.setState(StateStopped)
	}
	c.setState(StateIdle)
	c.session.SetActive(false)
	c.render(ActionPlay)
}

func (c *Controller) next() {
	if c.hasNext() {
		c.play(c.playlist.At(c.index() + 1))
	} else {
		c.notifyClient(Client.OnHasPrevNextChanged)
	}
	c.render(c.activeAction())
}

func (c *Controller) previous() {
	if c.hasPrevious() {
		c.play(c.playlist.At(c.index() - 1))
	} else {
		c.notifyClient(Client.OnHasPrevNextChanged)
	}
	c.render(c.activeAction())
}

func (c *Controller) seek(position time.Duration) {
	if !c.prepared {
		return
	}
	position = max(position, 0)
	c.engine.SeekTo(position)
	c.broadcast(func(sub *Subscription) { sub.sendPosition(position) })
}

func (c *Controller) playlistChanged() {
	tracks := c.playlist.Tracks()
	index := c.index()
	c.broadcast(func(sub *Subscription) { sub.sendPlaylist(PlaylistChange{Tracks: tracks, Index: index}) })
	c.notifyClient(Client.OnHasPrevNextChanged)
}
