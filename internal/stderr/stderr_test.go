//go:build !windows

package stderr

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRead_ForwardsNonEmptyLines(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	read(strings.NewReader("ALSA lib pcm.c: underrun\n\n   \n  second  \n"))

	entries := logs.FilterMessage("captured stderr").All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if got := entries[1].ContextMap()["line"]; got != "second" {
		t.Errorf("line = %v, want %q", got, "second")
	}

	var msgs []string
	for len(Messages) > 0 {
		msgs = append(msgs, <-Messages)
	}
	if len(msgs) != 2 || msgs[0] != "ALSA lib pcm.c: underrun" {
		t.Errorf("Messages = %q", msgs)
	}
}

func TestOriginal_WritesWithoutCapture(t *testing.T) {
	if _, err := Original().Write(nil); err != nil {
		t.Errorf("Original().Write() error = %v", err)
	}
}
