package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
)

// fakeEngine answers a small subset of UCI over in-memory pipes.
type fakeEngine struct {
	conn     LineConn
	finished chan struct{}

	out       io.WriteCloser
	searching bool

	mu       sync.Mutex
	commands []string
}

func newFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	toEngineR, toEngineW := io.Pipe()
	fromEngineR, fromEngineW := io.Pipe()

	f := &fakeEngine{
		conn:     NewStreamConn(fromEngineR, toEngineW),
		finished: make(chan struct{}),
		out:      fromEngineW,
	}
	go f.loop(toEngineR)
	t.Cleanup(func() {
		toEngineW.Close()
		fromEngineR.Close()
	})
	return f
}

func (f *fakeEngine) loop(in io.Reader) {
	defer close(f.finished)
	defer f.out.Close()
	quit := false
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		f.mu.Lock()
		f.commands = append(f.commands, line)
		f.mu.Unlock()
		if quit {
			continue
		}
		switch {
		case line == "uci":
			f.reply(
				"id name Fake 1.0",
				"id author Tester",
				"option name Hash type spin default 16 min 1 max 1024",
				"option name Skill Level type spin default 20 min 0 max 20",
				"uciok",
			)
		case line == "isready":
			f.reply("readyok")
		case line == "go infinite":
			f.searching = true
			f.reply("info depth 1 seldepth 1 multipv 1 score cp 30 nodes 20 pv d2d4")
		case strings.HasPrefix(line, "go"):
			f.reply(
				"info string NNUE evaluation enabled",
				"info depth 1 seldepth 1 multipv 1 score cp 13 nodes 20 nps 20000 time 1 pv e2e4",
				"info depth 2 seldepth 2 multipv 1 score cp 20 nodes 80 nps 80000 time 1 pv e2e4 e7e5",
				"bestmove e2e4 ponder e7e5",
			)
		case line == "stop":
			if f.searching {
				f.searching = false
				f.reply("bestmove d2d4")
			}
		case line == "quit":
			quit = true
			f.out.Close()
		}
	}
}

func (f *fakeEngine) reply(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(f.out, l)
	}
}

func (f *fakeEngine) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}
