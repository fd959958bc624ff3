// Package player provides the playback engine: a prepare/start lifecycle over
// beep decoders and speaker output, reporting asynchronous events through callbacks.
package player

import "time"

// Callbacks receive engine events. They are invoked from engine goroutines,
// never from inside an Interface method, and must not block.
//
// Per prepare cycle exactly one of OnPrepared or OnError fires. OnCompletion
// may follow a successful Start.
type Callbacks struct {
	OnPrepared   func()
	OnError      func(err *Error)
	OnCompletion func()
}

// Interface defines the engine contract for dependency injection and testing.
type Interface interface {
	SetCallbacks(cb Callbacks)
	// Reset returns the engine to idle, dropping the source and any
	// in-flight prepare. Stale callbacks from the dropped cycle are not delivered.
	Reset()
	SetSource(url string) error
	// PrepareAsync starts loading the source and returns immediately.
	PrepareAsync() error
	Start()
	Pause()
	Stop()
	SeekTo(position time.Duration)
	IsPlaying() bool
	Position() time.Duration
	Duration() time.Duration
	Release()
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
