// Package artwork downloads cover art, scales it down and keeps it in a disk
// cache so that desktop surfaces can reference it by file path.
package artwork

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultSize    = 256
	DefaultTimeout = 10 * time.Second

	maxArtworkBytes = 16 << 20
)

// ErrNoArtwork is returned for tracks without an artwork URL.
var ErrNoArtwork = errors.New("no artwork")

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSize sets the long edge, in pixels, of cached images.
func WithSize(size int) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.size = size
		}
	}
}

// WithTimeout bounds each HTTP download.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// Fetcher resolves artwork URLs to cached local PNG files.
type Fetcher struct {
	cache   *Cache
	client  *http.Client
	size    int
	timeout time.Duration
	log     *zap.Logger
}

// NewFetcher creates a fetcher storing results in cache.
func NewFetcher(cache *Cache, opts ...Option) *Fetcher {
	f := &Fetcher{
		cache:   cache,
		client:  http.DefaultClient,
		size:    DefaultSize,
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the path of a cached PNG for the artwork at rawURL.
// Failures are not retried.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrNoArtwork
	}
	if path, ok := f.cache.Lookup(rawURL, f.size); ok {
		return path, nil
	}

	data, err := f.load(ctx, rawURL)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode artwork: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, f.scale(img)); err != nil {
		return "", fmt.Errorf("encode artwork: %w", err)
	}

	path, err := f.cache.Store(rawURL, f.size, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("cache artwork: %w", err)
	}

	f.log.Debug("artwork cached",
		zap.String("url", rawURL),
		zap.String("format", format),
		zap.String("size", humanize.IBytes(uint64(buf.Len()))), //nolint:gosec // length is non-negative
		zap.String("path", path))
	return path, nil
}

// scale shrinks img so that its long edge is f.size. Smaller images are kept.
func (f *Fetcher) scale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= f.size && h <= f.size {
		return img
	}
	if w >= h {
		return resize.Resize(uint(f.size), 0, img, resize.Lanczos3) //nolint:gosec // size is positive
	}
	return resize.Resize(0, uint(f.size), img, resize.Lanczos3) //nolint:gosec // size is positive
}

func (f *Fetcher) load(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse artwork url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.download(ctx, rawURL)
	case "file":
		return os.ReadFile(u.Path)
	case "":
		return os.ReadFile(rawURL)
	default:
		return nil, fmt.Errorf("unsupported artwork scheme %q", u.Scheme)
	}
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download artwork: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtworkBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download artwork: %w", err)
	}
	if len(data) > maxArtworkBytes {
		return nil, fmt.Errorf("artwork exceeds %s", humanize.IBytes(maxArtworkBytes))
	}
	return data, nil
}
