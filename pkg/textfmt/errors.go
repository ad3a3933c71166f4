package textfmt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTemplate is returned when a pattern is not well-formed.
	ErrInvalidTemplate = errors.New("textfmt: invalid template")

	// ErrInvalidArgument is returned when an argument cannot be rendered
	// with the format type its placeholder asks for.
	ErrInvalidArgument = errors.New("textfmt: invalid argument")
)

// TemplateError describes where a pattern failed to parse.
type TemplateError struct {
	Pattern string
	Reason  string
	Pos     int
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrInvalidTemplate, e.Reason, e.Pos, e.Pattern)
}

func (e *TemplateError) Unwrap() error {
	return ErrInvalidTemplate
}
