package notify

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/transport"
)

const musicCategory = "x-gnome.music"

// ArtworkFetcher resolves an artwork URL to a local image file.
type ArtworkFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ArtworkSink receives the artwork file shown for a track.
type ArtworkSink interface {
	SetArtwork(trackID, artURL string)
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithArtwork sets the artwork fetcher. Without one, notifications carry no image.
func WithArtwork(f ArtworkFetcher) SurfaceOption {
	return func(s *Surface) { s.artwork = f }
}

// WithArtworkSink forwards resolved artwork, typically to the media session.
func WithArtworkSink(sink ArtworkSink) SurfaceOption {
	return func(s *Surface) { s.sink = sink }
}

// WithTimeout sets the notification expiry in milliseconds (-1 = server default).
func WithTimeout(ms int32) SurfaceOption {
	return func(s *Surface) { s.timeout = ms }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) SurfaceOption {
	return func(s *Surface) { s.log = l }
}

// Surface is the persistent control surface: a resident notification showing
// the current track with previous, play/pause and next buttons.
//
// Notify never blocks. Each request is numbered; a render whose request has
// been superseded by a newer one is dropped, so slow artwork for an old track
// never replaces the current one.
type Surface struct {
	notifier Notifier
	artwork  ArtworkFetcher
	sink     ArtworkSink
	timeout  int32
	log      *zap.Logger

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	id       uint32
	onAction func(transport.Action)

	// renderMu serializes notifier calls so that ids stay consistent.
	renderMu sync.Mutex
}

// NewSurface creates a surface on top of n and starts listening for button presses.
func NewSurface(n Notifier, opts ...SurfaceOption) *Surface {
	s := &Surface{
		notifier: n,
		timeout:  -1,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.stop = context.WithCancel(context.Background())

	s.wg.Add(1)
	go s.listen()
	return s
}

// OnAction registers the handler for button presses.
func (s *Surface) OnAction(fn func(transport.Action)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAction = fn
}

type request struct {
	seq     uint64
	trackID string
	title   string
	artist  string
	artURL  string
	action  playback.Action
}

// Notify re-renders the surface for track with action as the primary button.
func (s *Surface) Notify(track *playlist.Track, action playback.Action) {
	if track == nil {
		return
	}

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	req := request{
		seq:     s.seq,
		trackID: track.ID(),
		title:   track.Name(),
		artist:  track.Artist(),
		artURL:  track.ArtworkURL(),
		action:  action,
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go s.render(ctx, req)
}

func (s *Surface) render(ctx context.Context, req request) {
	defer s.wg.Done()

	icon := s.resolveArtwork(ctx, req)

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	if req.seq != s.seq {
		s.mu.Unlock()
		s.log.Debug("dropping stale surface update", zap.String("track", req.trackID))
		return
	}
	replaces := s.id
	s.mu.Unlock()

	id, err := s.notifier.Notify(Notification{
		Title:      req.title,
		Body:       req.artist,
		Icon:       icon,
		Timeout:    s.timeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
		Buttons:    buttons(req.action),
		Resident:   true,
		Category:   musicCategory,
	})
	if err != nil {
		s.log.Warn("notification failed", zap.String("track", req.trackID), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()

	if s.sink != nil {
		artURL := ""
		if icon != "" {
			artURL = "file://" + icon
		}
		s.sink.SetArtwork(req.trackID, artURL)
	}
}

// resolveArtwork returns the local artwork file, or "" when there is none.
func (s *Surface) resolveArtwork(ctx context.Context, req request) string {
	if s.artwork == nil || req.artURL == "" {
		return ""
	}
	path, err := s.artwork.Fetch(ctx, req.artURL)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Debug("artwork unavailable", zap.String("url", req.artURL), zap.Error(err))
		}
		return ""
	}
	return path
}

func buttons(action playback.Action) []Button {
	return []Button{
		{Key: transport.Previous.String(), Label: "Previous"},
		{Key: action.Key(), Label: action.String()},
		{Key: transport.Next.String(), Label: "Next"},
	}
}

// listen routes button presses on our notification to the action handler.
func (s *Surface) listen() {
	defer s.wg.Done()

	invocations := s.notifier.Invocations()
	for {
		select {
		case <-s.ctx.Done():
			return
		case inv, ok := <-invocations:
			if !ok {
				return
			}
			s.invoke(inv)
		}
	}
}

func (s *Surface) invoke(inv Invocation) {
	s.mu.Lock()
	id, handler := s.id, s.onAction
	s.mu.Unlock()

	if id == 0 || inv.ID != id {
		return
	}
	action, err := transport.Parse(inv.Key)
	if err != nil {
		s.log.Debug("ignoring notification action", zap.String("key", inv.Key), zap.Error(err))
		return
	}
	if handler != nil {
		handler(action)
	}
}

// Withdraw removes the notification and drops any pending update.
func (s *Surface) Withdraw() {
	s.mu.Lock()
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	id := s.id
	s.id = 0
	s.mu.Unlock()

	if id == 0 {
		return
	}
	if err := s.notifier.Close(id); err != nil {
		s.log.Debug("close notification failed", zap.Error(err))
	}
}

// Close withdraws the notification and stops signal handling. Notify calls
// made during or after Close are dropped.
func (s *Surface) Close() error {
	s.mu.Lock()
	s.stop()
	s.mu.Unlock()

	s.Withdraw()
	s.wg.Wait()
	return s.notifier.Shutdown()
}
