package frame

import "errors"

var (
	ErrAlreadyResolved = errors.New("frame already resolved")
	ErrInvalidMaxStep  = errors.New("max step must be positive")
)
