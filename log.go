package v4l2

import (
	"fmt"
	"log/slog"
	"os"
)

// Severity classifies log events emitted by a Camera.
type Severity int

const (
	// SeverityError marks a failed OS-level call; err carries the errno.
	SeverityError Severity = iota
	// SeverityFailure marks a semantic rejection with no OS error code,
	// such as a device lacking a required capability.
	SeverityFailure
	// SeverityInfo marks advisory messages.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityFailure:
		return "FAIL"
	case SeverityInfo:
		return "INFO"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// LogFunc receives log events emitted synchronously during Camera calls.
// msg names the failing operation or condition. err is non-nil only for
// SeverityError events. State that would have been passed as an opaque
// context pointer in a C callback belongs in the closure instead.
type LogFunc func(severity Severity, msg string, err error)

// StderrLogger returns a LogFunc writing one line per event to standard
// error. This is the logger a Camera uses when none is injected.
func StderrLogger() LogFunc {
	return func(severity Severity, msg string, err error) {
		switch severity {
		case SeverityError:
			fmt.Fprintf(os.Stderr, "ERROR [%s]: %v\n", msg, err)
		default:
			fmt.Fprintf(os.Stderr, "%s [%s]\n", severity, msg)
		}
	}
}

// SlogLogger adapts a slog.Logger to a LogFunc. SeverityError and
// SeverityFailure map to slog errors and warnings, SeverityInfo to info.
func SlogLogger(logger *slog.Logger) LogFunc {
	return func(severity Severity, msg string, err error) {
		switch severity {
		case SeverityError:
			logger.Error(msg, slog.Any("err", err))
		case SeverityFailure:
			logger.Warn(msg)
		default:
			logger.Info(msg)
		}
	}
}
