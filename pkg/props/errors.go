package props

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEscape is returned when a \u escape is not followed by exactly
	// four hexadecimal digits.
	ErrMalformedEscape = errors.New("props: malformed \\uxxxx escape")

	ErrNilCatalog = errors.New("props: catalog cannot be nil")
)

// SyntaxError reports the physical line on which decoding failed.
type SyntaxError struct {
	Err  error
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
