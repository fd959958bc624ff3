// Package playlist holds tracks, the ordered playlist and playlist file loading.
package playlist

// Playlist holds an ordered collection of tracks.
// Duplicates are allowed; positions are resolved by pointer identity.
type Playlist struct {
	tracks []*Track
}

// New creates a playlist with the given tracks.
func New(tracks ...*Track) *Playlist {
	p := &Playlist{tracks: make([]*Track, 0, len(tracks))}
	p.tracks = append(p.tracks, tracks...)
	return p
}

// Add appends a track to the playlist.
func (p *Playlist) Add(t *Track) {
	p.tracks = append(p.tracks, t)
}

// Replace discards the current contents and stores tracks instead.
func (p *Playlist) Replace(tracks []*Track) {
	p.tracks = append(make([]*Track, 0, len(tracks)), tracks...)
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []*Track {
	result := make([]*Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// At returns the track at the given index, or nil if out of bounds.
func (p *Playlist) At(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IsEmpty returns true if the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return len(p.tracks) == 0
}

// IndexOf returns the first position holding t, or -1 if t is not in the playlist.
func (p *Playlist) IndexOf(t *Track) int {
	if t == nil {
		return -1
	}
	for i, entry := range p.tracks {
		if entry == t {
			return i
		}
	}
	return -1
}
