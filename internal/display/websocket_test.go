package display

import (
	"testing"
	"time"

	"github.com/chess-vn/enginebench/internal/domains/dtos"
	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const afterE4 = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

func dialBoard(t *testing.T, d *WebSocket) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+d.Addr()+"/board", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readPayload(t *testing.T, conn *websocket.Conn) dtos.Payload {
	t.Helper()
	var p dtos.Payload
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&p))
	return p
}

func TestWebSocketBroadcastsPositions(t *testing.T) {
	d, err := NewWebSocket("127.0.0.1:0")
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Update(entities.StartFen))

	conn := dialBoard(t, d)
	p := readPayload(t, conn)
	assert.Equal(t, dtos.PayloadTypePosition, p.Type)
	assert.Equal(t, entities.StartFen, p.Data["fen"])

	require.NoError(t, d.Update(afterE4))
	p = readPayload(t, conn)
	assert.Equal(t, afterE4, p.Data["fen"])
}

func TestWebSocketQuit(t *testing.T) {
	d, err := NewWebSocket("127.0.0.1:0")
	require.NoError(t, err)
	defer d.Close()

	conn := dialBoard(t, d)
	assert.False(t, d.QuitRequested())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(dtos.Payload{Type: dtos.PayloadTypeQuit}))

	assert.Eventually(t, d.QuitRequested, 2*time.Second, 5*time.Millisecond)
}
