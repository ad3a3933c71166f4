package richtext

import "errors"

var (
	ErrUnknownMode = errors.New("richtext: unknown render mode")
	ErrRender      = errors.New("richtext: render failed")
)
