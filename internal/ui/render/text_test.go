package render

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Radio Paradise", "Radio Paradise"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "Now\nPlaying", "NowPlaying"},
		{"escape dropped", "\x1b[31mred", "[31mred"},
		{"nbsp to space", "Artist\u00a0Name", "Artist Name"},
		{"invalid utf8 dropped", "ok\xffok", "okok"},
		{"c1 control dropped", "a\u0085b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"cut", "hello world", 8, "hello w…"},
		{"empty", "", 10, ""},
		{"multibyte runes stay intact", "Café del Mar Radio", 6, "Café …"},
		{"wide runes", "日本語の曲", 6, "日本…"},
		{"sanitized first", "a\nb\nc", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	for _, in := range []string{"hi", "hello world", "日本語の曲名", ""} {
		t.Run(in, func(t *testing.T) {
			got := TruncateAndPad(in, 8)
			if w := runewidth.StringWidth(got); w != 8 {
				t.Errorf("TruncateAndPad(%q, 8) = %q, width %d, want 8", in, got, w)
			}
		})
	}
}

func TestPad(t *testing.T) {
	if got := Pad("ab", 4); got != "ab  " {
		t.Errorf("Pad = %q, want %q", got, "ab  ")
	}
	if got := Pad("abcdef", 4); got != "abcdef" {
		t.Errorf("Pad must not cut, got %q", got)
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"spread", 12, "left   right"},
		{"minimum gap", 5, "left right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Row("left", "right", tt.width); got != tt.want {
				t.Errorf("Row(left, right, %d) = %q, want %q", tt.width, got, tt.want)
			}
		})
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(4); got != "────" {
		t.Errorf("Separator(4) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q, want empty", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59 * time.Second, "0:59"},
		{83 * time.Second, "1:23"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Duration(tt.in); got != tt.want {
				t.Errorf("Duration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
