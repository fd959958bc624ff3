// internal/player/mock.go
package player

import (
	"fmt"
	"sync"
	"time"
)

// Mock is a test double for the engine. Events are fired explicitly by the test
// with FirePrepared, FireError and FireCompletion.
type Mock struct {
	mu         sync.Mutex
	cb         Callbacks
	calls      []string
	source     string
	playing    bool
	position   time.Duration
	duration   time.Duration
	sourceErr  error
	prepareErr error
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) SetCallbacks(cb Callbacks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cb = cb
}

func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Reset")
	m.source = ""
	m.playing = false
}

func (m *Mock) SetSource(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetSource(" + url + ")")
	if m.sourceErr != nil {
		return m.sourceErr
	}
	m.source = url
	return nil
}

func (m *Mock) PrepareAsync() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("PrepareAsync")
	return m.prepareErr
}

func (m *Mock) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Start")
	m.playing = true
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Pause")
	m.playing = false
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop")
	m.playing = false
}

func (m *Mock) SeekTo(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(fmt.Sprintf("SeekTo(%s)", position))
	m.position = position
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Release")
	m.playing = false
}

// Test helpers

// Calls returns a copy of the recorded method calls.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// ClearCalls forgets the recorded calls.
func (m *Mock) ClearCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Source returns the last source set.
func (m *Mock) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *Mock) SetSourceError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sourceErr = err
}

func (m *Mock) SetPrepareError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepareErr = err
}

func (m *Mock) SetPlaying(playing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = playing
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// FirePrepared simulates the engine finishing a prepare.
func (m *Mock) FirePrepared() {
	m.mu.Lock()
	fn := m.cb.OnPrepared
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// FireError simulates an asynchronous engine failure.
func (m *Mock) FireError(err *Error) {
	m.mu.Lock()
	fn := m.cb.OnError
	m.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// FireCompletion simulates the end of the current source.
func (m *Mock) FireCompletion() {
	m.mu.Lock()
	m.playing = false
	fn := m.cb.OnCompletion
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
