package graphics

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when the requested variant is not compiled
	// in for the current target.
	ErrUnavailable = errors.New("context kind not available on this target")
	// ErrInvalidArgument reports a bad size, version or kind.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidHandle reports a native call that succeeded but returned the
	// platform's "none" sentinel.
	ErrInvalidHandle = errors.New("returned invalid handle")
	// ErrDestroyed is returned by operations on a torn down context.
	ErrDestroyed = errors.New("context destroyed")
)

// Error records a failed native call.
type Error struct {
	Op   string // operation, e.g. "headless.New"
	Call string // native call, e.g. "eglCreateContext"
	Code int    // platform error code, 0 when the platform has none
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Call + " failed"
	if e.Code != 0 {
		msg += fmt.Sprintf(" (0x%x)", e.Code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
