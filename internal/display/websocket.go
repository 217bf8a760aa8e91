package display

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chess-vn/enginebench/internal/domains/dtos"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket broadcasts every position to the clients connected on /board.
// Any client may send {"type":"quit"} to request a stop.
type WebSocket struct {
	server   *http.Server
	listener net.Listener
	upgrader websocket.Upgrader

	clients map[*websocket.Conn]struct{}
	last    string
	mu      sync.Mutex

	quit atomic.Bool
}

func NewWebSocket(addr string) (*WebSocket, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	d := &WebSocket{
		listener: ln,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/board", d.handleBoard)
	d.server = &http.Server{Handler: mux}

	go func() {
		if err := d.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("board server stopped", zap.Error(err))
		}
	}()
	logging.Info("board server started", zap.String("address", ln.Addr().String()))
	return d, nil
}

func (d *WebSocket) Addr() string {
	return d.listener.Addr().String()
}

func (d *WebSocket) handleBoard(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	d.mu.Lock()
	d.clients[conn] = struct{}{}
	if d.last != "" {
		conn.WriteJSON(dtos.PositionPayload(d.last))
	}
	d.mu.Unlock()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("unexpected connection close",
					zap.String("remote_address", conn.RemoteAddr().String()),
					zap.Error(err),
				)
			}
			break
		}
		var payload dtos.Payload
		if err := json.Unmarshal(message, &payload); err != nil {
			logging.Debug("ignoring malformed payload", zap.Error(err))
			continue
		}
		if payload.Type == dtos.PayloadTypeQuit {
			logging.Info("quit requested",
				zap.String("remote_address", conn.RemoteAddr().String()),
			)
			d.quit.Store(true)
		}
	}

	d.mu.Lock()
	delete(d.clients, conn)
	d.mu.Unlock()
}

func (d *WebSocket) Update(fen string) error {
	payload := dtos.PositionPayload(fen)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = fen
	for conn := range d.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(payload); err != nil {
			logging.Info("dropping board client",
				zap.String("remote_address", conn.RemoteAddr().String()),
				zap.Error(err),
			)
			conn.Close()
			delete(d.clients, conn)
		}
	}
	return nil
}

func (d *WebSocket) QuitRequested() bool {
	return d.quit.Load()
}

func (d *WebSocket) Close() error {
	d.mu.Lock()
	for conn := range d.clients {
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
			time.Now().Add(time.Second),
		)
		conn.Close()
	}
	d.clients = make(map[*websocket.Conn]struct{})
	d.mu.Unlock()
	return d.server.Close()
}
