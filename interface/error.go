package shardtailiface

import "errors"

const (
	SeverityFatal = "fatal"
	SeverityError = "error"
	SeverityWarn  = "warn"
	SeverityInfo  = "info"
)

var (
	// ErrNoSequence means an iterator had to be renewed before any record
	// was consumed; there is no position to resume from.
	ErrNoSequence = errors.New("no sequence number consumed yet")

	// ErrCheckpointMismatch means a persisted checkpoint belongs to a
	// different stream or shard than the one configured.
	ErrCheckpointMismatch = errors.New("checkpoint stream/shard mismatch")
)

// Error carries a severity so callers can tell unrecoverable conditions
// from ones the worker handles internally.
type Error struct {
	// One of "fatal", "error", "warn", "info"
	Severity string
	message  string
	origin   error
}

func NewError(severity, message string, origin error) *Error {
	return &Error{
		Severity: severity,
		message:  message,
		origin:   origin,
	}
}

// Fatal builds an unrecoverable error. A worker that returns one is done;
// restarting it without a configuration change will fail the same way.
func Fatal(message string, origin error) *Error {
	return NewError(SeverityFatal, message, origin)
}

func (e *Error) Error() string {
	if e.origin == nil {
		return e.message
	}
	return e.message + " from " + e.origin.Error()
}

func (e *Error) Unwrap() error {
	return e.origin
}

// IsFatal reports whether err, or anything it wraps, is a fatal Error.
func IsFatal(err error) bool {
	for err != nil {
		if se, ok := err.(*Error); ok && se.Severity == SeverityFatal {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
