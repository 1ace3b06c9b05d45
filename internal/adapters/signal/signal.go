package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/app"
	"github.com/bitefinder/server/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// WSController owns the WebSocket side of the real-time surface: it
// upgrades connections, decodes inbound events, and forwards them to
// the orchestrator.
type WSController struct {
	Orch      *app.Orchestrator
	ReadLimit int64
	SendBuf   int
}

func NewWSController(orch *app.Orchestrator, readLimit int64, sendBuf int) *WSController {
	if sendBuf <= 0 {
		sendBuf = 32
	}
	return &WSController{Orch: orch, ReadLimit: readLimit, SendBuf: sendBuf}
}

// WsConn pairs the gorilla connection with a buffered outbound queue.
// TrySend never blocks; a full queue drops the frame.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the connection, registers it, and starts the pumps.
func (ctl *WSController) HandleWS(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.SendBuf),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.BindSignal(sid, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
