package playlist

// Track is an immutable playable item.
//
// Tracks are passed around as *Track and compared by pointer: two tracks
// with identical fields are still distinct entries.
type Track struct {
	id         string
	name       string
	artist     string
	url        string
	artworkURL string
}

// NewTrack creates a track.
func NewTrack(id, name, artist, url, artworkURL string) *Track {
	return &Track{
		id:         id,
		name:       name,
		artist:     artist,
		url:        url,
		artworkURL: artworkURL,
	}
}

// ID returns the track identifier.
func (t *Track) ID() string { return t.id }

// Name returns the display name.
func (t *Track) Name() string { return t.name }

// Artist returns the artist name.
func (t *Track) Artist() string { return t.artist }

// URL returns the playable location (http(s), file:// or a plain path).
func (t *Track) URL() string { return t.url }

// ArtworkURL returns the artwork location, or empty if none.
func (t *Track) ArtworkURL() string { return t.artworkURL }

// String returns "Artist - Name", or just the name when the artist is unknown.
func (t *Track) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.artist == "" {
		return t.name
	}
	return t.artist + " - " + t.name
}

// sameAs reports whether both tracks carry identical values.
func (t *Track) sameAs(o *Track) bool {
	return t.id == o.id &&
		t.name == o.name &&
		t.artist == o.artist &&
		t.url == o.url &&
		t.artworkURL == o.artworkURL
}
