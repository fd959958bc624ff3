package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/dustin/go-humanize"
)

// readSeekNopCloser lets decoders seek inside a fully buffered source.
type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }

// checkSource validates that src uses a scheme the engine can load.
func checkSource(src string) error {
	if src == "" {
		return fmt.Errorf("empty source")
	}
	u, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("invalid source %q: %w", src, err)
	}
	switch u.Scheme {
	case "http", "https", "file", "":
		return nil
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(u.Scheme) == 1 {
		return nil
	}
	return fmt.Errorf("unsupported source scheme %q", u.Scheme)
}

// fetch buffers the whole source in memory, refusing anything above limit.
// It returns the data and the content type, when known.
func (p *Player) fetch(ctx context.Context, src string) ([]byte, string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, "", err
	}

	switch u.Scheme {
	case "http", "https":
		return p.fetchHTTP(ctx, src)
	case "file":
		return readLimited(u.Path, p.maxSourceBytes)
	default:
		return readLimited(src, p.maxSourceBytes)
	}
}

func (p *Player) fetchHTTP(ctx context.Context, src string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("GET %s: %s", src, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxSourceBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", src, err)
	}
	if int64(len(data)) > p.maxSourceBytes {
		return nil, "", fmt.Errorf("source exceeds %s", humanize.IBytes(uint64(p.maxSourceBytes))) //nolint:gosec // limit is positive
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func readLimited(path string, limit int64) ([]byte, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if info.Size() > limit {
		return nil, "", fmt.Errorf("source exceeds %s", humanize.IBytes(uint64(limit))) //nolint:gosec // limit is positive
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, "", nil
}
