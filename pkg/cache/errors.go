package cache

import "errors"

var (
	ErrNotFound    = errors.New("cache: entry not found")
	ErrClosed      = errors.New("cache: closed")
	ErrMarshal     = errors.New("cache: failed to marshal value")
	ErrUnmarshal   = errors.New("cache: failed to unmarshal value")
	ErrInvalidCron = errors.New("cache: invalid refresh schedule")
	ErrNilCache    = errors.New("cache: cache is not provided")
)
