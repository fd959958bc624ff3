// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Configuration
	OpConfigLoad Op = "load configuration"
	OpLogOpen    Op = "open log file"

	// Playlist operations
	OpPlaylistLoad  Op = "load playlist"
	OpPlaylistWatch Op = "watch playlist"
	OpTrackAdd      Op = "add track"

	// Playback operations
	OpPlaybackStart   Op = "start playback"
	OpPlaybackSource  Op = "open track"
	OpPlaybackPrepare Op = "prepare track"
	OpPlaybackSeek    Op = "seek"

	// Desktop integration
	OpArtworkFetch Op = "fetch artwork"
	OpNotifyStart  Op = "connect to notification service"
	OpMPRISStart   Op = "register MPRIS service"
	OpControlSend  Op = "send command"
	OpControlQuery Op = "query player"

	// Initialization
	OpInitialize Op = "initialize application"
)

// ForPlaybackError maps the operation name carried by playback error events
// to an Op.
func ForPlaybackError(operation string) Op {
	switch operation {
	case "source":
		return OpPlaybackSource
	case "prepare":
		return OpPlaybackPrepare
	default:
		return OpPlaybackStart
	}
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
