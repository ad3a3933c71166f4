package cli

import "errors"

var (
	ErrInvalidConfig  = errors.New("cli: invalid config")
	ErrUnknownCommand = errors.New("cli: unknown command")
	ErrUsage          = errors.New("cli: usage")
	ErrNoPostgres     = errors.New("cli: command needs DATABASE_URL")
)
