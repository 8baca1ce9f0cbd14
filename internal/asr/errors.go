package asr

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the stage of the audio pipeline that failed.
type ErrorKind int

const (
	// KindIO - the audio file could not be opened or read
	KindIO ErrorKind = iota
	// KindWav - malformed WAV header, unsupported encoding, zero sample rate
	KindWav
	// KindResample - resampler construction or processing failure
	KindResample
	// KindModelLoad - missing model files at construction
	KindModelLoad
	// KindNotInitialized - recognizer used before its engines were loaded
	KindNotInitialized
	// KindEngine - recognition/VAD engine failure
	KindEngine
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindWav:
		return "wav"
	case KindResample:
		return "resample"
	case KindModelLoad:
		return "model_load"
	case KindNotInitialized:
		return "not_initialized"
	case KindEngine:
		return "engine"
	}
	return "unknown"
}

// Error is the typed error returned by this package. Callers that need to
// distinguish failure stages use errors.As and Kind; everything still
// composes with %w wrapping.
type Error struct {
	kind ErrorKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the pipeline stage this error belongs to.
func (e *Error) Kind() ErrorKind { return e.kind }

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

// IsKind reports whether err (or anything it wraps) is a package error of
// the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}
