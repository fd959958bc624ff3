package playlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "list.m3u")
	require.NoError(t, os.WriteFile(p, []byte("/a.mp3\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []*Track, 4)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, p, LoadOptions{}, func(tracks []*Track) { changes <- tracks }, nil)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("/a.mp3\n/b.mp3\n"), 0o600))

	select {
	case tracks := <-changes:
		require.Len(t, tracks, 2)
		assert.Equal(t, "/b.mp3", tracks[1].URL())
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "list.m3u")
	require.NoError(t, os.WriteFile(p, []byte("/a.mp3\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []*Track, 1)
	go func() {
		_ = Watch(ctx, p, LoadOptions{}, func(tracks []*Track) { changes <- tracks }, nil)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

	select {
	case <-changes:
		t.Fatal("unrelated file should not trigger a reload")
	case <-time.After(4 * watchDebounce):
	}
}
