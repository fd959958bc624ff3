package notify

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/transport"
)

type fakeNotifier struct {
	mu       sync.Mutex
	sent     []Notification
	closed   []uint32
	nextID   uint32
	shutdown bool
	inv      chan Invocation
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{inv: make(chan Invocation)}
}

func (n *fakeNotifier) Notify(notif Notification) (uint32, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notif)
	if notif.ReplacesID != 0 {
		return notif.ReplacesID, nil
	}
	n.nextID++
	return n.nextID, nil
}

func (n *fakeNotifier) Close(id uint32) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, id)
	return nil
}

func (n *fakeNotifier) Invocations() <-chan Invocation { return n.inv }

func (n *fakeNotifier) Shutdown() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shutdown = true
	return nil
}

func (n *fakeNotifier) closedIDs() []uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.closed)
}

func (n *fakeNotifier) isShutdown() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shutdown
}

func (n *fakeNotifier) notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.sent)
}

// gatedFetcher returns "/cache/<url>" once the gate for url is opened.
// URLs without a gate resolve immediately; "broken" fails.
type gatedFetcher struct {
	gates map[string]chan struct{}
}

func (f *gatedFetcher) Fetch(_ context.Context, url string) (string, error) {
	if url == "broken" {
		return "", errors.New("404")
	}
	if g, ok := f.gates[url]; ok {
		<-g
	}
	return "/cache/" + url, nil
}

type artworkRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *artworkRecorder) SetArtwork(trackID, artURL string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, trackID+"="+artURL)
}

func (r *artworkRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

func keys(buttons []Button) []string {
	out := make([]string, len(buttons))
	for i, b := range buttons {
		out[i] = b.Key
	}
	return out
}

func TestSurface_Render(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newFakeNotifier()
		sink := &artworkRecorder{}
		s := NewSurface(n, WithArtwork(&gatedFetcher{}), WithArtworkSink(sink), WithTimeout(5000))
		defer s.Close()

		track := playlist.NewTrack("id-a", "Song", "Band", "/a.mp3", "a.png")
		s.Notify(track, playback.ActionPause)
		synctest.Wait()

		sent := n.notifications()
		require.Len(t, sent, 1)
		got := sent[0]
		assert.Equal(t, "Song", got.Title)
		assert.Equal(t, "Band", got.Body)
		assert.Equal(t, "/cache/a.png", got.Icon)
		assert.Equal(t, int32(5000), got.Timeout)
		assert.True(t, got.Resident)
		assert.Equal(t, musicCategory, got.Category)
		assert.Equal(t, []string{"previous", "pause", "next"}, keys(got.Buttons))
		assert.Equal(t, []string{"id-a=file:///cache/a.png"}, sink.snapshot())

		s.Notify(track, playback.ActionPlay)
		synctest.Wait()

		sent = n.notifications()
		require.Len(t, sent, 2)
		assert.Equal(t, uint32(1), sent[1].ReplacesID, "updates replace the existing notification")
		assert.Equal(t, []string{"previous", "play", "next"}, keys(sent[1].Buttons))
	})
}

func TestSurface_StaleArtworkDiscarded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newFakeNotifier()
		gate := make(chan struct{})
		s := NewSurface(n, WithArtwork(&gatedFetcher{gates: map[string]chan struct{}{"slow.png": gate}}))
		defer s.Close()

		s.Notify(playlist.NewTrack("a", "A", "", "/a.mp3", "slow.png"), playback.ActionPause)
		s.Notify(playlist.NewTrack("b", "B", "", "/b.mp3", ""), playback.ActionPause)
		synctest.Wait()

		close(gate)
		synctest.Wait()

		sent := n.notifications()
		require.Len(t, sent, 1)
		assert.Equal(t, "B", sent[0].Title)
		assert.Empty(t, sent[0].Icon)
	})
}

func TestSurface_ArtworkFailureRendersWithoutImage(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newFakeNotifier()
		s := NewSurface(n, WithArtwork(&gatedFetcher{}))
		defer s.Close()

		s.Notify(playlist.NewTrack("a", "A", "", "/a.mp3", "broken"), playback.ActionPlay)
		synctest.Wait()

		sent := n.notifications()
		require.Len(t, sent, 1)
		assert.Empty(t, sent[0].Icon)
	})
}

func TestSurface_NilTrackIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newFakeNotifier()
		s := NewSurface(n)
		defer s.Close()

		s.Notify(nil, playback.ActionPlay)
		synctest.Wait()
		assert.Empty(t, n.notifications())
	})
}

func TestSurface_ActionRouting(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newFakeNotifier()
		s := NewSurface(n)
		defer s.Close()

		var mu sync.Mutex
		var got []transport.Action
		s.OnAction(func(a transport.Action) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, a)
		})

		// Nothing shown yet: presses are ignored.
		n.inv <- Invocation{ID: 1, Key: "next"}

		s.Notify(playlist.NewTrack("a", "A", "", "/a.mp3", ""), playback.ActionPause)
		synctest.Wait()

		n.inv <- Invocation{ID: 1, Key: "pause"}
		n.inv <- Invocation{ID: 2, Key: "next"}
		n.inv <- Invocation{ID: 1, Key: "bogus"}
		n.inv <- Invocation{ID: 1, Key: "action_next"}
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []transport.Action{transport.Pause, transport.Next}, got)
	})
}

func TestSurface_WithdrawAndClose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newFakeNotifier()
		s := NewSurface(n)

		s.Notify(playlist.NewTrack("a", "A", "", "/a.mp3", ""), playback.ActionPause)
		synctest.Wait()

		s.Withdraw()
		assert.Equal(t, []uint32{1}, n.closedIDs())

		s.Notify(playlist.NewTrack("b", "B", "", "/b.mp3", ""), playback.ActionPause)
		synctest.Wait()
		sent := n.notifications()
		require.Len(t, sent, 2)
		assert.Equal(t, uint32(0), sent[1].ReplacesID, "a withdrawn notification is not replaced")

		require.NoError(t, s.Close())
		assert.True(t, n.isShutdown())
		assert.Equal(t, []uint32{1, 2}, n.closedIDs())

		s.Notify(playlist.NewTrack("c", "C", "", "/c.mp3", ""), playback.ActionPause)
		synctest.Wait()
		assert.Len(t, n.notifications(), 2, "no renders after Close")
	})
}

func TestSurface_CloseConcurrentWithNotify(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		n := newFakeNotifier()
		s := NewSurface(n)

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				name := string(rune('a' + i))
				s.Notify(playlist.NewTrack(name, name, "", "/"+name+".mp3", ""), playback.ActionPause)
			}()
		}
		require.NoError(t, s.Close())
		wg.Wait()
		synctest.Wait()

		assert.True(t, n.isShutdown())
		rendered := len(n.notifications())

		s.Notify(playlist.NewTrack("late", "Late", "", "/late.mp3", ""), playback.ActionPause)
		synctest.Wait()
		assert.Len(t, n.notifications(), rendered, "no renders after Close")
	})
}
