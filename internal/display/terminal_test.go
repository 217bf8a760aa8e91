package display

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalUpdateDrawsBoard(t *testing.T) {
	var out bytes.Buffer
	d := NewTerminal(&out, nil)

	require.NoError(t, d.Update(entities.StartFen))

	assert.Contains(t, out.String(), entities.StartFen)
	assert.Contains(t, out.String(), "A B C D E F G H")
	assert.False(t, d.QuitRequested())
	assert.NoError(t, d.Close())
}

func TestTerminalRejectsBadFen(t *testing.T) {
	d := NewTerminal(io.Discard, nil)
	assert.Error(t, d.Update("xyz"))
}

func TestTerminalQuitFromInput(t *testing.T) {
	d := NewTerminal(io.Discard, strings.NewReader("hello\nq\n"))

	assert.Eventually(t, d.QuitRequested, time.Second, 5*time.Millisecond)
}

func TestNew(t *testing.T) {
	d, err := New("none", "", nil, nil)
	require.NoError(t, err)
	assert.IsType(t, None{}, d)

	d, err = New("terminal", "", io.Discard, nil)
	require.NoError(t, err)
	assert.IsType(t, &Terminal{}, d)

	_, err = New("gui", "", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownDisplay)
}
