package playlist

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrUnsupportedFormat is returned for playlist files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported playlist format")

// LoadOptions controls how tracks are built from playlist entries.
type LoadOptions struct {
	// ReadTags fills missing name/artist from embedded tags of local files.
	ReadTags bool
	// ArtworkDir receives embedded pictures of local files without an artwork URL.
	// Empty disables extraction.
	ArtworkDir string
}

// entry is a playlist line before it becomes a Track.
type entry struct {
	ID         string `koanf:"id"`
	Name       string `koanf:"name"`
	Artist     string `koanf:"artist"`
	URL        string `koanf:"url"`
	ArtworkURL string `koanf:"artwork_url"`
}

// Load reads a playlist file. The format is chosen by extension:
// .toml ([[tracks]] tables) or .m3u/.m3u8.
func Load(filename string, opts LoadOptions) ([]*Track, error) {
	var (
		entries []entry
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		entries, err = readTOML(filename)
	case ".m3u", ".m3u8":
		entries, err = readM3U(filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(filename)
	tracks := make([]*Track, 0, len(entries))
	for _, e := range entries {
		if e.URL == "" {
			continue
		}
		e.URL = resolveRelative(base, e.URL)
		tracks = append(tracks, buildTrack(e, opts))
	}
	return tracks, nil
}

// FromLocations builds tracks from raw URLs or paths.
func FromLocations(locs []string, opts LoadOptions) []*Track {
	tracks := make([]*Track, 0, len(locs))
	for _, loc := range locs {
		if loc == "" {
			continue
		}
		tracks = append(tracks, buildTrack(entry{URL: loc}, opts))
	}
	return tracks
}

// IsPlaylistFile reports whether name looks like a playlist file Load understands.
func IsPlaylistFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".m3u", ".m3u8":
		return true
	}
	return false
}

func readTOML(filename string) ([]entry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(filename), toml.Parser()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	var doc struct {
		Tracks []entry `koanf:"tracks"`
	}
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return doc.Tracks, nil
}

func readM3U(filename string) ([]entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		entries []entry
		pending entry
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", line == "#EXTM3U":
		case strings.HasPrefix(line, "#EXTINF:"):
			pending.Artist, pending.Name = parseExtInf(strings.TrimPrefix(line, "#EXTINF:"))
		case strings.HasPrefix(line, "#EXTIMG:"):
			pending.ArtworkURL = strings.TrimSpace(strings.TrimPrefix(line, "#EXTIMG:"))
		case strings.HasPrefix(line, "#"):
			// other directives are ignored
		default:
			pending.URL = line
			entries = append(entries, pending)
			pending = entry{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return entries, nil
}

// parseExtInf splits "<secs>,<Artist> - <Title>" into artist and title.
func parseExtInf(s string) (artist, title string) {
	_, info, found := strings.Cut(s, ",")
	if !found {
		return "", ""
	}
	info = strings.TrimSpace(info)
	if a, t, ok := strings.Cut(info, " - "); ok {
		return strings.TrimSpace(a), strings.TrimSpace(t)
	}
	return "", info
}

func buildTrack(e entry, opts LoadOptions) *Track {
	if e.ID == "" {
		e.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(e.URL)).String()
	}

	if local := LocalPath(e.URL); local != "" {
		if opts.ReadTags || opts.ArtworkDir != "" {
			e = fillFromTags(local, e, opts)
		}
		if e.ArtworkURL == "" {
			if art := FindAlbumArt(local); art != "" {
				e.ArtworkURL = fileURL(art)
			}
		}
	}

	if e.Name == "" {
		e.Name = displayName(e.URL)
	}
	return NewTrack(e.ID, e.Name, e.Artist, e.URL, e.ArtworkURL)
}

// LocalPath returns the filesystem path for file:// URLs and plain paths,
// or empty for remote URLs.
func LocalPath(loc string) string {
	u, err := url.Parse(loc)
	if err != nil {
		return loc
	}
	switch u.Scheme {
	case "file":
		return u.Path
	case "":
		return loc
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(u.Scheme) == 1 {
		return loc
	}
	return ""
}

func displayName(loc string) string {
	if u, err := url.Parse(loc); err == nil && u.Path != "" {
		loc = u.Path
	}
	name := path.Base(filepath.ToSlash(loc))
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func resolveRelative(base, loc string) string {
	u, err := url.Parse(loc)
	if err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return loc
	}
	if filepath.IsAbs(loc) {
		return loc
	}
	return filepath.Join(base, loc)
}
