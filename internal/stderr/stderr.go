//go:build !windows

// Package stderr captures stderr output from C libraries (ALSA, oto)
// that write directly to file descriptor 2, bypassing Go's os.Stderr.
// Captured lines are forwarded to the logger so they neither corrupt the
// TUI layout nor get lost when running headless.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Messages receives stderr lines captured from C libraries.
// The TUI reads from this channel to show them in the status line.
var Messages = make(chan string, 100)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	logger     = zap.NewNop()
)

// Start begins capturing stderr output.
// Must be called early in main(), before any C library initialization.
// Returns an error if capture cannot be set up, but the program can continue
// without stderr capture (errors will just go to the original stderr).
func Start() error {
	mu.Lock()
	defer mu.Unlock()
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	started = true

	go read(r)

	return nil
}

func read(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		mu.Lock()
		log := logger
		mu.Unlock()
		log.Warn("captured stderr", zap.String("line", line))
		select {
		case Messages <- line:
		default:
			// Channel full, drop message to avoid blocking
		}
	}
}

// SetLogger sets the logger captured lines are forwarded to.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

type originalWriter struct{}

func (originalWriter) Write(p []byte) (int, error) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		return os.Stderr.Write(p)
	}
	return syscall.Write(fd, p)
}

// Original returns a writer to the real stderr, bypassing capture.
// Console log output must go through it to avoid feeding the capture pipe.
func Original() io.Writer {
	return originalWriter{}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible even if TUI is running.
func WriteOriginal(msg string) {
	_, _ = Original().Write([]byte(msg))
}

// Stop restores the original stderr. Should be called on program exit.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	pipeRead.Close()

	started = false
}
