package player

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		contentType string
		data        []byte
		want        Format
	}{
		{"mp3 extension", "https://example.com/a.mp3", "", nil, FormatMP3},
		{"extension case insensitive", "/music/A.FLAC", "", nil, FormatFLAC},
		{"ogg extension", "file:///music/a.ogg", "", nil, FormatVorbis},
		{"oga extension", "a.oga", "", nil, FormatVorbis},
		{"wav extension", "a.wav", "", nil, FormatWAV},
		{"extension ignores query", "https://example.com/a.mp3?token=1", "", nil, FormatMP3},
		{"content type mpeg", "https://example.com/stream", "audio/mpeg", nil, FormatMP3},
		{"content type with params", "https://example.com/stream", "audio/ogg; codecs=vorbis", nil, FormatVorbis},
		{"content type flac", "https://example.com/stream", "audio/x-flac", nil, FormatFLAC},
		{"content type wav", "https://example.com/stream", "audio/wav", nil, FormatWAV},
		{"sniff flac", "stream", "", []byte("fLaC\x00\x00"), FormatFLAC},
		{"sniff ogg", "stream", "", []byte("OggS\x00"), FormatVorbis},
		{"sniff wav", "stream", "", makeWAV(8000, 1), FormatWAV},
		{"sniff id3", "stream", "", []byte("ID3\x04"), FormatMP3},
		{"sniff mpeg frame sync", "stream", "", []byte{0xFF, 0xFB, 0x90}, FormatMP3},
		{"unknown", "stream", "text/html", []byte("<html>"), FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.src, tt.contentType, tt.data); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		f    Format
		want string
	}{
		{FormatMP3, "MP3"},
		{FormatFLAC, "FLAC"},
		{FormatVorbis, "Vorbis"},
		{FormatWAV, "WAV"},
		{FormatUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
