//go:build !linux

package mpris

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/transport"
)

var errUnsupported = errors.New("mpris: only available on Linux")

// Option configures an Adapter.
type Option func(*Adapter)

// WithQuit is a no-op on non-Linux platforms.
func WithQuit(func()) Option { return func(*Adapter) {} }

// WithOnStop is a no-op on non-Linux platforms.
func WithOnStop(func()) Option { return func(*Adapter) {} }

// WithLogger is a no-op on non-Linux platforms.
func WithLogger(*zap.Logger) Option { return func(*Adapter) {} }

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ string, _ ...Option) (*Adapter, error) {
	return &Adapter{}, nil
}

// Bind is a no-op on non-Linux platforms.
func (a *Adapter) Bind(Controller) {}

// SetActive is a no-op on non-Linux platforms.
func (a *Adapter) SetActive(bool) {}

// SetArtwork is a no-op on non-Linux platforms.
func (a *Adapter) SetArtwork(string, string) {}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}

// Send is unsupported on non-Linux platforms.
func Send(context.Context, string, transport.Action, time.Duration) error {
	return errUnsupported
}

// Query is unsupported on non-Linux platforms.
func Query(context.Context, string) (Info, error) {
	return Info{}, errUnsupported
}
