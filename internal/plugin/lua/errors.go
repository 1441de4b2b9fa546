package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call runs past its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoFunction is returned when calling a global that is not defined.
	ErrNoFunction = errors.New("lua function not defined")

	// ErrBadResult is returned when a hook returns a value it may not.
	ErrBadResult = errors.New("invalid hook result")
)
