package display

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/notnil/chess"
)

// Terminal draws the board as text. A line reading "q" or "quit" on the
// input stream requests a stop.
type Terminal struct {
	out  io.Writer
	quit atomic.Bool
	mu   sync.Mutex
}

func NewTerminal(out io.Writer, in io.Reader) *Terminal {
	t := &Terminal{out: out}
	if in != nil {
		go t.watch(in)
	}
	return t
}

func (t *Terminal) watch(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "q", "quit":
			t.quit.Store(true)
			return
		}
	}
}

func (t *Terminal) Update(fen string) error {
	withFen, err := chess.FEN(fen)
	if err != nil {
		return fmt.Errorf("invalid fen: %w", err)
	}
	board := chess.NewGame(withFen).Position().Board()

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err = fmt.Fprintf(t.out, "\n%s%s\n", board.Draw(), fen)
	return err
}

func (t *Terminal) QuitRequested() bool {
	return t.quit.Load()
}

func (t *Terminal) Close() error {
	return nil
}
