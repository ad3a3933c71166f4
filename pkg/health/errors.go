package health

import "errors"

var (
	// ErrCheckFailed marks a probe that returned an error.
	ErrCheckFailed = errors.New("health: check failed")
	// ErrCheckTimeout marks a probe cut off by the readiness timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
