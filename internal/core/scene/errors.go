package scene

import "errors"

var (
	ErrEmptyName       = errors.New("object name is empty")
	ErrNilObject       = errors.New("object is nil")
	ErrDuplicateObject = errors.New("object already registered")
)
