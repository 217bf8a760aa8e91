package display

import (
	"errors"
	"fmt"
	"io"
)

// Display shows positions handed to it and reports whether the user asked to
// stop.
type Display interface {
	Update(fen string) error
	QuitRequested() bool
	Close() error
}

var ErrUnknownDisplay = errors.New("unknown display")

// New builds a display by kind: "terminal", "websocket" or "none".
func New(kind, addr string, out io.Writer, in io.Reader) (Display, error) {
	switch kind {
	case "", "terminal":
		return NewTerminal(out, in), nil
	case "websocket":
		return NewWebSocket(addr)
	case "none":
		return None{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDisplay, kind)
	}
}

type None struct{}

func (None) Update(string) error { return nil }
func (None) QuitRequested() bool { return false }
func (None) Close() error { return nil }
