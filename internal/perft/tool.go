package perft

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chess-vn/enginebench/internal/domains/entities"
)

const maxStderr = 512

// Tool produces a perft divide report for a query.
type Tool interface {
	Name() string
	Run(ctx context.Context, q entities.PerftQuery) (Report, error)
}

// UCITool drives a UCI engine that understands "go perft", stockfish being
// the usual one. The commands are written to stdin which is then closed, so
// the engine exits after printing the divide.
type UCITool struct {
	Path string
}

func NewUCITool(path string) *UCITool {
	return &UCITool{Path: path}
}

func (t *UCITool) Name() string {
	return filepath.Base(t.Path)
}

func (t *UCITool) Script(q entities.PerftQuery) string {
	var sb strings.Builder
	sb.WriteString("position fen ")
	sb.WriteString(q.FenOrStart())
	if len(q.Moves) > 0 {
		sb.WriteString(" moves ")
		sb.WriteString(strings.Join(q.Moves, " "))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "go perft %d\n", q.Depth)
	return sb.String()
}

func (t *UCITool) Run(ctx context.Context, q entities.PerftQuery) (Report, error) {
	if q.Depth <= 0 {
		return Report{}, ErrInvalidDepth
	}
	cmd := exec.CommandContext(ctx, t.Path)
	cmd.Stdin = strings.NewReader(t.Script(q))
	out, err := run(t.Name(), cmd)
	if err != nil {
		return Report{}, err
	}
	return ParseReport(out), nil
}

// ArgsTool runs a perft binary invoked as "<binary> <depth> <fen> [moves...]".
type ArgsTool struct {
	Path string
}

func NewArgsTool(path string) *ArgsTool {
	return &ArgsTool{Path: path}
}

func (t *ArgsTool) Name() string {
	return filepath.Base(t.Path)
}

func (t *ArgsTool) Args(q entities.PerftQuery) []string {
	args := []string{strconv.Itoa(q.Depth), q.FenOrStart()}
	return append(args, q.Moves...)
}

func (t *ArgsTool) Run(ctx context.Context, q entities.PerftQuery) (Report, error) {
	if q.Depth <= 0 {
		return Report{}, ErrInvalidDepth
	}
	cmd := exec.CommandContext(ctx, t.Path, t.Args(q)...)
	out, err := run(t.Name(), cmd)
	if err != nil {
		return Report{}, err
	}
	return ParseReport(out), nil
}

// NewTool builds a reference tool by kind: "stockfish" (or any UCI engine
// path via the path argument) or "builtin".
func NewTool(kind, path string) (Tool, error) {
	switch kind {
	case "", "stockfish", "uci":
		if path == "" {
			path = "stockfish"
		}
		return NewUCITool(path), nil
	case "builtin":
		return NewBuiltinTool(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, kind)
	}
}

func run(name string, cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderr {
			msg = msg[:maxStderr] + "..."
		}
		return "", &ToolError{
			Tool:   name,
			Stderr: msg,
			Err:    err,
		}
	}
	return stdout.String(), nil
}
