package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
)

func (ctl *WSController) writePump(ctx context.Context, c *WsConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *WSController) readPump(ctx context.Context, sid core.SessionID, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Orch.Disconnect(sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleEvent(ctx, sid, c, data)
		}
	}
}

func (ctl *WSController) handleEvent(ctx context.Context, sid core.SessionID, c *WsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "malformed event")
		return
	}

	switch env.Type {
	case core.EventJoinGroup:
		ctl.handleJoinGroup(ctx, sid, c, data)
	case core.EventLeaveGroup:
		ctl.handleLeaveGroup(ctx, sid, c, data)
	case core.EventRestaurantVote:
		ctl.handleVote(ctx, sid, c, data)
	case core.EventReadyChange:
		ctl.handleReady(ctx, sid, c, data)
	case core.EventDissolvedByHost:
		ctl.handleDissolve(ctx, sid, c, data)
	case core.EventPing:
		ctl.sendJSON(c, map[string]string{"type": core.EventPong})
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
		ctl.sendError(c, "unknown event type")
	}
}

func (ctl *WSController) sendJSON(c *WsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *WSController) sendError(c *WsConn, message string) {
	ctl.sendJSON(c, core.NewErrorEvent(message))
}
