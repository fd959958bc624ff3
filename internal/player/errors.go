package player

import "fmt"

// ErrorCode classifies asynchronous engine failures.
type ErrorCode int

const (
	ErrSourceUnavailable ErrorCode = iota + 1
	ErrUnsupportedFormat
	ErrDecode
	ErrOutput
)

// String returns the code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrSourceUnavailable:
		return "source unavailable"
	case ErrUnsupportedFormat:
		return "unsupported format"
	case ErrDecode:
		return "decode failed"
	case ErrOutput:
		return "audio output failed"
	default:
		return "unknown"
	}
}

// Error is reported through Callbacks.OnError.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
