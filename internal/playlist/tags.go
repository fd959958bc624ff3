package playlist

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// fillFromTags completes e from the embedded tags of a local audio file.
// Unreadable files leave e unchanged.
func fillFromTags(localPath string, e entry, opts LoadOptions) entry {
	f, err := os.Open(localPath)
	if err != nil {
		return e
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return e
	}

	if opts.ReadTags {
		if e.Name == "" {
			e.Name = m.Title()
		}
		if e.Artist == "" {
			e.Artist = m.Artist()
		}
	}

	if e.ArtworkURL == "" && opts.ArtworkDir != "" {
		if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
			if p, err := writePicture(opts.ArtworkDir, localPath, pic); err == nil {
				e.ArtworkURL = fileURL(p)
			}
		}
	}
	return e
}

// writePicture stores an embedded picture under dir, named after the audio file.
func writePicture(dir, audioPath string, pic *tag.Picture) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(audioPath))
	ext := pic.Ext
	if ext == "" {
		ext = "jpg"
	}
	p := filepath.Join(dir, hex.EncodeToString(sum[:8])+"."+ext)

	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	if err := os.WriteFile(p, pic.Data, 0o600); err != nil {
		return "", err
	}
	return p, nil
}
