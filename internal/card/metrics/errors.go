package metrics

import (
	"errors"
	"fmt"
)

var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports a load-bearing field of the upstream profile
// that is missing or cannot be used. It matches ErrMalformedInput.
type MalformedInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed input: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed input: %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
