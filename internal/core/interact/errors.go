package interact

import "errors"

// Contract violations. These are raised as panics, never returned.
var (
	ErrAlreadyResolved = errors.New("interaction already resolved")
	ErrForeignReply    = errors.New("ticket evaluated against a reply from another frame")
	ErrNotResolved     = errors.New("ticket evaluated before resolution")
	ErrNaNDistance     = errors.New("time of impact is NaN")
	ErrUnknownIndex    = errors.New("unknown controller index")
)
