package perft

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDepth = errors.New("depth must be a positive integer")
	ErrUnknownTool  = errors.New("unknown perft tool")
	ErrIllegalMove  = errors.New("illegal move")
)

// ToolError reports an external tool that could not be launched or exited
// with a nonzero status.
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("run %s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("run %s: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
