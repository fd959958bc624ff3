package artwork

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

const (
	cacheDirName  = "wavestream/artwork"
	cacheMaxAge   = 30 * 24 * time.Hour // 30 days
	pruneInterval = 24 * time.Hour
)

// Cache is a disk cache of resized artwork, stored as PNG files.
type Cache struct {
	dir string

	mu         sync.Mutex
	lastPruned time.Time
}

// NewCache creates the cache directory. An empty dir selects
// $XDG_CACHE_HOME/wavestream/artwork.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = filepath.Join(xdg.CacheHome, cacheDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artwork cache: %w", err)
	}

	c := &Cache{dir: dir}

	// Prune old entries in background
	go c.prune()

	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// cacheKey identifies an artwork URL at a given size.
func cacheKey(url string, size int) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s:%d", url, size))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(url string, size int) string {
	return filepath.Join(c.dir, cacheKey(url, size)+".png")
}

// Lookup returns the cached file for url at size, if present.
func (c *Cache) Lookup(url string, size int) (string, bool) {
	if c == nil {
		return "", false
	}

	path := c.path(url, size)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}

	// Touch the file to update mtime (keeps frequently used entries fresh)
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort

	return path, true
}

// Store writes PNG data for url at size and returns the file path.
// The file is written under a temporary name and renamed into place.
func (c *Cache) Store(url string, size int, data []byte) (string, error) {
	if c == nil {
		return "", fmt.Errorf("no artwork cache")
	}

	path := c.path(url, size)
	tmp, err := os.CreateTemp(c.dir, ".artwork-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

// prune removes cache entries older than cacheMaxAge.
func (c *Cache) prune() {
	c.mu.Lock()
	// Don't prune too frequently
	if time.Since(c.lastPruned) < pruneInterval {
		c.mu.Unlock()
		return
	}
	c.lastPruned = time.Now()
	c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-cacheMaxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
