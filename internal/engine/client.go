package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/chess-vn/enginebench/pkg/logging"
	"go.uber.org/zap"
)

type State uint8

const (
	StateUninitialized State = iota
	StateReady
	StateSearching
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateReady:
		return "READY"
	case StateSearching:
		return "SEARCHING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

type Option struct {
	Name  string
	Value string
}

type Result struct {
	BestMove string
	Ponder   string
	// Info is the last principal variation line seen before bestmove.
	Info Info
}

// Client is a UCI session with one engine process.
//
//	UNINITIALIZED --Start--> READY --Search--> SEARCHING --bestmove--> READY
//	any state --Stop--> TERMINATED
//
// Reads happen only on the goroutine calling Start or Search. Stop may be
// called from any goroutine.
type Client struct {
	conn    LineConn
	options []Option

	name     string
	author   string
	declared []string

	state State
	mu    sync.Mutex
}

func NewClient(options ...Option) *Client {
	return &Client{
		options: options,
	}
}

// Start spawns the engine at enginePath and runs the UCI handshake. ctx only
// guards the launch; the process lives until Stop.
func (c *Client) Start(ctx context.Context, enginePath string, args ...string) error {
	if err := c.expect(StateUninitialized); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := Spawn(enginePath, args...)
	if err != nil {
		return err
	}
	return c.StartConn(conn)
}

// StartConn runs the UCI handshake over an already open channel.
func (c *Client) StartConn(conn LineConn) error {
	if err := c.expect(StateUninitialized); err != nil {
		return err
	}
	c.conn = conn

	if err := c.handshake(); err != nil {
		c.mu.Lock()
		c.state = StateTerminated
		c.mu.Unlock()
		conn.Close()
		return fmt.Errorf("handshake: %w", err)
	}

	c.mu.Lock()
	c.state = StateReady
	c.mu.Unlock()
	logging.Info("engine ready",
		zap.String("name", c.name),
		zap.String("author", c.author),
	)
	return nil
}

func (c *Client) handshake() error {
	if err := c.conn.WriteLine("uci"); err != nil {
		return err
	}
	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "uciok" {
			break
		}
		switch {
		case strings.HasPrefix(line, "id name "):
			c.name = strings.TrimPrefix(line, "id name ")
		case strings.HasPrefix(line, "id author "):
			c.author = strings.TrimPrefix(line, "id author ")
		case strings.HasPrefix(line, "option name "):
			c.declared = append(c.declared, optionName(line))
		}
	}
	for _, opt := range c.options {
		if err := c.conn.WriteLine(setOptionCommand(opt)); err != nil {
			return err
		}
	}
	return c.sync()
}

func optionName(line string) string {
	name := strings.TrimPrefix(line, "option name ")
	if idx := strings.Index(name, " type "); idx >= 0 {
		name = name[:idx]
	}
	return name
}

func setOptionCommand(opt Option) string {
	if opt.Value == "" {
		return "setoption name " + opt.Name
	}
	return "setoption name " + opt.Name + " value " + opt.Value
}

// sync blocks until the engine answers isready.
func (c *Client) sync() error {
	if err := c.conn.WriteLine("isready"); err != nil {
		return err
	}
	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "readyok" {
			return nil
		}
		logging.Debug("engine output", zap.String("line", line))
	}
}

// SetOption sends a setoption command after the handshake.
func (c *Client) SetOption(name, value string) error {
	if err := c.expect(StateReady); err != nil {
		return err
	}
	if err := c.conn.WriteLine(setOptionCommand(Option{Name: name, Value: value})); err != nil {
		return c.fail(err)
	}
	if err := c.sync(); err != nil {
		return c.fail(err)
	}
	return nil
}

func (c *Client) NewGame() error {
	if err := c.expect(StateReady); err != nil {
		return err
	}
	if err := c.conn.WriteLine("ucinewgame"); err != nil {
		return c.fail(err)
	}
	if err := c.sync(); err != nil {
		return c.fail(err)
	}
	return nil
}

// SetPosition sets the position for the next search. An empty fen means the
// standard start position.
func (c *Client) SetPosition(fen string, moves ...string) error {
	if err := c.expect(StateReady); err != nil {
		return err
	}
	if err := c.conn.WriteLine(positionCommand(fen, moves)); err != nil {
		return c.fail(err)
	}
	return nil
}

func positionCommand(fen string, moves []string) string {
	var sb strings.Builder
	if fen == "" || fen == entities.StartFen {
		sb.WriteString("position startpos")
	} else {
		sb.WriteString("position fen ")
		sb.WriteString(fen)
	}
	if len(moves) > 0 {
		sb.WriteString(" moves ")
		sb.WriteString(strings.Join(moves, " "))
	}
	return sb.String()
}

// Search runs "go" with the given limit and blocks until bestmove. When ctx
// is cancelled the engine is told to stop and the move it settles on is
// returned along with ctx.Err().
func (c *Client) Search(ctx context.Context, limit Limit) (Result, error) {
	c.mu.Lock()
	if c.state != StateReady {
		state := c.state
		c.mu.Unlock()
		return Result{}, c.stateErr(state)
	}
	c.state = StateSearching
	c.mu.Unlock()

	if err := c.conn.WriteLine(limit.Command()); err != nil {
		return Result{}, c.fail(err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.WriteLine("stop")
		case <-done:
		}
	}()

	var res Result
	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			return Result{}, c.fail(err)
		}
		if info, ok := ParseInfo(line); ok {
			if len(info.Pv) > 0 && info.MultiPV <= 1 {
				res.Info = info
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "bestmove" {
			continue
		}
		res.BestMove = fields[1]
		if len(fields) >= 4 && fields[2] == "ponder" {
			res.Ponder = fields[3]
		}
		break
	}

	c.mu.Lock()
	if c.state == StateSearching {
		c.state = StateReady
	}
	c.mu.Unlock()

	if res.BestMove == "(none)" || res.BestMove == "0000" {
		return res, ErrNoMove
	}
	return res, ctx.Err()
}

// Stop ends the session: it interrupts a running search, sends quit and
// closes the channel. Calling Stop more than once is a no-op.
func (c *Client) Stop() error {
	c.mu.Lock()
	prev := c.state
	c.state = StateTerminated
	conn := c.conn
	c.mu.Unlock()

	if prev == StateTerminated || conn == nil {
		return nil
	}
	if prev == StateSearching {
		conn.WriteLine("stop")
	}
	conn.WriteLine("quit")
	if err := conn.Close(); err != nil {
		return fmt.Errorf("close engine: %w", err)
	}
	logging.Debug("engine stopped", zap.String("name", c.name))
	return nil
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Author() string {
	return c.author
}

// DeclaredOptions lists the option names the engine announced during the
// handshake.
func (c *Client) DeclaredOptions() []string {
	return c.declared
}

func (c *Client) expect(want State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != want {
		return c.stateErr(c.state)
	}
	return nil
}

func (c *Client) stateErr(state State) error {
	if state == StateTerminated {
		return ErrTerminated
	}
	return fmt.Errorf("%w: %s", ErrInvalidState, state)
}

// fail marks the session dead after an I/O error on the channel.
func (c *Client) fail(err error) error {
	c.mu.Lock()
	stopped := c.state == StateTerminated
	c.state = StateTerminated
	c.mu.Unlock()
	if stopped {
		return ErrTerminated
	}
	c.conn.Close()
	return fmt.Errorf("engine connection: %w", errors.Join(ErrTerminated, err))
}
