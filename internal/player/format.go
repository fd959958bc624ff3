package player

import (
	"bytes"
	"mime"
	"net/url"
	"path"
	"strings"
)

// Format identifies a supported container/codec.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatFLAC
	FormatVorbis
	FormatWAV
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
	extOGA  = ".oga"
	extWAV  = ".wav"
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	case FormatVorbis:
		return "Vorbis"
	case FormatWAV:
		return "WAV"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format from the URL extension, then the content
// type, then the leading bytes of the data.
func DetectFormat(src, contentType string, data []byte) Format {
	if f := formatFromExt(src); f != FormatUnknown {
		return f
	}
	if f := formatFromContentType(contentType); f != FormatUnknown {
		return f
	}
	return sniffFormat(data)
}

func formatFromExt(src string) Format {
	p := src
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case extMP3:
		return FormatMP3
	case extFLAC:
		return FormatFLAC
	case extOGG, extOGA:
		return FormatVorbis
	case extWAV:
		return FormatWAV
	}
	return FormatUnknown
}

func formatFromContentType(ct string) Format {
	if ct == "" {
		return FormatUnknown
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return FormatUnknown
	}
	switch mt {
	case "audio/mpeg", "audio/mp3", "audio/mpeg3":
		return FormatMP3
	case "audio/flac", "audio/x-flac":
		return FormatFLAC
	case "audio/ogg", "application/ogg", "audio/vorbis":
		return FormatVorbis
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return FormatWAV
	}
	return FormatUnknown
}

func sniffFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatVorbis
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	}
	return FormatUnknown
}
