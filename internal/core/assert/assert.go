// Package assert guards internal contracts of the frame pipeline. A failed
// check is a programming error in the caller and aborts with a panic whose
// value is an error wrapping the given sentinel.
package assert

import "fmt"

// That panics with err wrapped in a formatted message when ok is false.
func That(ok bool, err error, format string, args ...any) {
	if !ok {
		panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
	}
}
