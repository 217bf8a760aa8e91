package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/chess-vn/enginebench/pkg/logging"
	"go.uber.org/zap"
)

// LineConn is a line oriented, bidirectional channel to an engine.
type LineConn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

type streamConn struct {
	scanner *bufio.Scanner
	writer  *bufio.Writer
	closer  io.Closer
	mu      sync.Mutex
}

// NewStreamConn wraps an engine's output and input streams. Closing the conn
// closes w.
func NewStreamConn(r io.Reader, w io.WriteCloser) LineConn {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &streamConn{
		scanner: scanner,
		writer:  bufio.NewWriter(w),
		closer:  w,
	}
}

func (c *streamConn) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return c.scanner.Text(), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (c *streamConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *streamConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closer.Close()
}

type processConn struct {
	LineConn
	cmd  *exec.Cmd
	done chan struct{}
	// held while a ReadLine is in flight so Wait never closes stdout under
	// a reader
	reading sync.Mutex
}

// Spawn starts an engine process and connects to its stdin/stdout. Stderr is
// forwarded to the debug log. The process is not bound to any context and
// runs in its own process group, so an interrupt reaching this program does
// not kill it; it ends when Close shuts its stdin.
func Spawn(path string, args ...string) (LineConn, error) {
	cmd := exec.Command(path, args...)
	detach(cmd)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}

	conn := &processConn{
		LineConn: NewStreamConn(stdout, stdin),
		cmd:      cmd,
		done:     make(chan struct{}),
	}
	go func() {
		defer close(conn.done)
		r := bufio.NewScanner(stderr)
		for r.Scan() {
			logging.Debug("engine stderr",
				zap.String("engine", path),
				zap.String("line", r.Text()),
			)
		}
	}()
	return conn, nil
}

func (c *processConn) ReadLine() (string, error) {
	c.reading.Lock()
	defer c.reading.Unlock()
	return c.LineConn.ReadLine()
}

// Close closes stdin and waits for the process to exit. A read in progress on
// another goroutine is let finish first; it ends once the engine answers or
// exits.
func (c *processConn) Close() error {
	closeErr := c.LineConn.Close()
	c.reading.Lock()
	defer c.reading.Unlock()
	<-c.done
	waitErr := c.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) && exitErr.Exited() {
		return fmt.Errorf("engine exited: %w", waitErr)
	}
	if closeErr != nil && !errors.Is(closeErr, io.ErrClosedPipe) {
		return closeErr
	}
	return nil
}
