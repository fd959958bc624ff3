//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio libraries don't produce the same stderr noise as ALSA.
package stderr

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Messages never receives on Windows.
var Messages = make(chan string)

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// SetLogger is a no-op on Windows.
func SetLogger(*zap.Logger) {}

// Original returns os.Stderr.
func Original() io.Writer {
	return os.Stderr
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
