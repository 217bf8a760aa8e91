package engine

import "errors"

var (
	ErrInvalidState = errors.New("invalid client state")
	ErrTerminated   = errors.New("engine session terminated")
	ErrNoMove       = errors.New("engine returned no move")
)
