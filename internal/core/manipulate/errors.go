package manipulate

import "errors"

var (
	ErrInvalidYankSpeed     = errors.New("yank speed must be positive")
	ErrInvalidGrabThreshold = errors.New("grab threshold must lie in (0, 1)")
)
