package physics

import "errors"

// Contract violations. These are raised as panics, never returned.
var (
	ErrAlreadyResolved = errors.New("physics step already resolved")
	ErrNotResolved     = errors.New("body handle evaluated before the step")
	ErrForeignReply    = errors.New("body handle evaluated against a reply from another frame")
	ErrUnknownBody     = errors.New("unknown body handle")
	ErrInvalidStep     = errors.New("step duration must be finite and non-negative")
)
