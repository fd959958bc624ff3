package player

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

const (
	DefaultSampleRate     = 44100
	DefaultMaxSourceBytes = 256 << 20
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) { p.log = l }
}

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) { p.client = c }
}

// WithMaxSourceBytes caps how much of a source is buffered.
func WithMaxSourceBytes(n int64) Option {
	return func(p *Player) {
		if n > 0 {
			p.maxSourceBytes = n
		}
	}
}

// WithSampleRate sets the speaker rate used when output is first opened.
func WithSampleRate(rate int) Option {
	return func(p *Player) {
		if rate > 0 {
			p.sampleRate = beep.SampleRate(rate)
		}
	}
}

// WithVolume sets the initial volume level (0.0 to 1.0).
func WithVolume(level float64) Option {
	return func(p *Player) { p.volumeLevel = clampLevel(level) }
}

// Player is the beep-backed engine. Sources are buffered completely in
// memory during prepare so that seeking works on streamed sources.
type Player struct {
	mu  sync.Mutex
	cb  Callbacks
	log *zap.Logger

	client         *http.Client
	maxSourceBytes int64
	sampleRate     beep.SampleRate

	// gen identifies the current cycle; callbacks of older cycles are dropped.
	gen    uint64
	cancel context.CancelFunc
	source string

	streamer  beep.StreamSeekCloser
	format    beep.Format
	kind      Format
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	completed bool

	volumeLevel float64
	muted       bool
}

// New creates an idle engine.
func New(opts ...Option) *Player {
	p := &Player{
		log:            zap.NewNop(),
		client:         http.DefaultClient,
		maxSourceBytes: DefaultMaxSourceBytes,
		sampleRate:     DefaultSampleRate,
		volumeLevel:    1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetCallbacks registers the event callbacks.
func (p *Player) SetCallbacks(cb Callbacks) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cb = cb
}

// Reset stops output, releases the decoded stream and drops any pending prepare.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.clearCancelLocked()
	p.releaseLocked()
	p.source = ""
}

// SetSource sets the location to load on the next PrepareAsync.
func (p *Player) SetSource(src string) error {
	if err := checkSource(src); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = src
	return nil
}

// PrepareAsync loads and decodes the source in the background.
// OnPrepared or OnError reports the outcome.
func (p *Player) PrepareAsync() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == "" {
		return errors.New("no source set")
	}
	if p.cancel != nil {
		return errors.New("prepare already in progress")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.prepare(ctx, p.gen, p.source)
	return nil
}

func (p *Player) prepare(ctx context.Context, gen uint64, src string) {
	data, contentType, err := p.fetch(ctx, src)
	if err != nil {
		p.fail(gen, &Error{Code: ErrSourceUnavailable, Err: err})
		return
	}

	kind := DetectFormat(src, contentType, data)
	if kind == FormatUnknown {
		p.fail(gen, &Error{Code: ErrUnsupportedFormat, Err: errors.New(src)})
		return
	}

	streamer, format, err := decode(kind, data)
	if err != nil {
		p.fail(gen, &Error{Code: ErrDecode, Err: err})
		return
	}

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		_ = streamer.Close()
		return
	}
	p.clearCancelLocked()
	p.streamer = streamer
	p.format = format
	p.kind = kind
	p.completed = false
	onPrepared := p.cb.OnPrepared
	p.mu.Unlock()

	p.log.Debug("source prepared",
		zap.String("source", src),
		zap.Stringer("format", kind),
		zap.String("buffered", humanize.IBytes(uint64(len(data)))),
		zap.Duration("duration", format.SampleRate.D(streamer.Len())))

	if onPrepared != nil {
		onPrepared()
	}
}

// fail reports err unless the cycle it belongs to was reset meanwhile.
func (p *Player) fail(gen uint64, err *Error) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.clearCancelLocked()
	onError := p.cb.OnError
	p.mu.Unlock()

	p.log.Debug("engine error", zap.Stringer("code", err.Code), zap.Error(err.Err))
	if onError != nil {
		onError(err)
	}
}

func decode(kind Format, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := readSeekNopCloser{bytes.NewReader(data)}
	switch kind {
	case FormatMP3:
		return mp3.Decode(rc)
	case FormatFLAC:
		return flac.Decode(rc)
	case FormatVorbis:
		return vorbis.Decode(rc)
	case FormatWAV:
		return wav.Decode(rc)
	}
	return nil, beep.Format{}, errors.New("no decoder")
}

// Start begins or resumes output. After completion it restarts from the beginning.
func (p *Player) Start() {
	p.mu.Lock()

	if p.streamer == nil {
		p.mu.Unlock()
		return
	}

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.mu.Unlock()
		return
	}

	rate, err := openSpeaker(p.sampleRate)
	if err != nil {
		gen := p.gen
		p.mu.Unlock()
		go p.fail(gen, &Error{Code: ErrOutput, Err: err})
		return
	}

	if p.completed {
		_ = p.streamer.Seek(0)
		p.completed = false
	}

	var s beep.Streamer = p.streamer
	if p.format.SampleRate != rate {
		s = beep.Resample(4, p.format.SampleRate, rate, s)
	}
	p.ctrl = &beep.Ctrl{Streamer: s}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolumeLocked()

	gen := p.gen
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go p.finished(gen)
	})))
	p.mu.Unlock()
}

func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.ctrl == nil {
		p.mu.Unlock()
		return
	}
	p.ctrl = nil
	p.volume = nil
	p.completed = true
	onCompletion := p.cb.OnCompletion
	p.mu.Unlock()

	if onCompletion != nil {
		onCompletion()
	}
}

// Pause pauses output.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Stop halts output and releases the decoded stream. A new prepare is needed to play again.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.clearCancelLocked()
	p.releaseLocked()
}

func (p *Player) clearCancelLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Player) releaseLocked() {
	if p.ctrl != nil && speakerReady() {
		speaker.Clear()
	}
	p.ctrl = nil
	p.volume = nil
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	p.completed = false
	p.kind = FormatUnknown
}

// SeekTo moves the playback position, clamped to the stream bounds.
func (p *Player) SeekTo(position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return
	}

	n := p.format.SampleRate.N(position)
	n = max(n, 0)
	n = min(n, max(p.streamer.Len()-1, 0))

	speaker.Lock()
	err := p.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		p.log.Warn("seek failed", zap.Duration("position", position), zap.Error(err))
		return
	}
	p.completed = false
}

// IsPlaying reports whether audio is currently being output.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.ctrl.Paused
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration returns the length of the prepared source.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Format returns the format of the prepared source.
func (p *Player) Format() Format {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kind
}

// Release resets the engine and closes audio output.
func (p *Player) Release() {
	p.Reset()

	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		speaker.Close()
		speakerInitialized = false
	}
}

// openSpeaker is replaced in tests that need the output to fail.
var openSpeaker = initSpeaker

func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, err
	}
	speakerInitialized = true
	speakerSampleRate = rate
	return rate, nil
}

func speakerReady() bool {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	return speakerInitialized
}
