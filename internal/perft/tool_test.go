package perft

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestUCIToolScript(t *testing.T) {
	tool := NewUCITool("/usr/bin/stockfish")

	assert.Equal(t, "stockfish", tool.Name())
	assert.Equal(t,
		"position fen "+entities.StartFen+"\ngo perft 3\n",
		tool.Script(entities.PerftQuery{Depth: 3}),
	)
	assert.Equal(t,
		"position fen 8/8/8/8/8/8/8/K6k w - - 0 1 moves a1a2 h1h2\ngo perft 1\n",
		tool.Script(entities.PerftQuery{
			Depth: 1,
			Fen:   "8/8/8/8/8/8/8/K6k w - - 0 1",
			Moves: []string{"a1a2", "h1h2"},
		}),
	)
}

func TestUCIToolRun(t *testing.T) {
	dir := t.TempDir()
	stdinFile := filepath.Join(dir, "stdin.txt")
	path := writeScript(t, "stockfish",
		"cat > '"+stdinFile+"'\n"+
			"echo 'Stockfish 16 by the Stockfish developers'\n"+
			"printf 'e2e4: 1\\nd2d4: 1\\n\\nNodes searched: 2\\n'\n",
	)

	report, err := NewUCITool(path).Run(context.Background(), entities.PerftQuery{
		Depth: 1,
		Moves: []string{"g1f3"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"d2d4: 1", "e2e4: 1"}, report.Lines())
	stdin, err := os.ReadFile(stdinFile)
	require.NoError(t, err)
	assert.Equal(t,
		"position fen "+entities.StartFen+" moves g1f3\ngo perft 1\n",
		string(stdin),
	)
}

func TestArgsToolRun(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	path := writeScript(t, "perft",
		"for a in \"$@\"; do echo \"$a\" >> '"+argsFile+"'; done\n"+
			"echo 'a2a3: 380'\n",
	)

	report, err := NewArgsTool(path).Run(context.Background(), entities.PerftQuery{
		Depth: 2,
		Fen:   entities.StartFen,
		Moves: []string{"e2e4", "e7e5"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a2a3: 380"}, report.Lines())
	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "2\n"+entities.StartFen+"\ne2e4\ne7e5\n", string(args))
}

func TestToolNonzeroExit(t *testing.T) {
	path := writeScript(t, "perft", "echo 'bad fen' >&2\nexit 3\n")

	_, err := NewArgsTool(path).Run(context.Background(), entities.PerftQuery{Depth: 1})
	require.Error(t, err)

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "perft", toolErr.Tool)
	assert.Equal(t, "bad fen", toolErr.Stderr)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestToolMissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := NewUCITool(path).Run(context.Background(), entities.PerftQuery{Depth: 1})

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "does-not-exist", toolErr.Tool)
}

func TestToolRejectsDepth(t *testing.T) {
	_, err := NewArgsTool("perft").Run(context.Background(), entities.PerftQuery{Depth: 0})
	assert.ErrorIs(t, err, ErrInvalidDepth)
}

func TestNewTool(t *testing.T) {
	tool, err := NewTool("stockfish", "")
	require.NoError(t, err)
	assert.Equal(t, "stockfish", tool.Name())

	tool, err = NewTool("builtin", "")
	require.NoError(t, err)
	assert.Equal(t, "builtin", tool.Name())

	_, err = NewTool("crafty", "")
	assert.ErrorIs(t, err, ErrUnknownTool)
}
