package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

type groupEvent struct {
	Type      string           `json:"type"`
	GroupCode domain.GroupCode `json:"group_code"`
	Username  string           `json:"username"`
}

func (ctl *WSController) handleJoinGroup(ctx context.Context, sid core.SessionID, c *WsConn, data []byte) {
	var p groupEvent
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(c, "malformed event")
		return
	}
	if p.GroupCode == "" || p.Username == "" {
		ctl.sendError(c, "group code and username required")
		return
	}

	if err := ctl.Orch.Attach(ctx, sid, p.GroupCode, p.Username); err != nil {
		ctl.sendOpError(c, err, "failed to join group")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("group", string(p.GroupCode)).Str("user", p.Username).Msg("joined group room")
}

func (ctl *WSController) handleLeaveGroup(ctx context.Context, sid core.SessionID, c *WsConn, data []byte) {
	var p groupEvent
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave payload")
		ctl.sendError(c, "malformed event")
		return
	}
	if !ctl.boundTo(sid, p.GroupCode, p.Username) {
		ctl.sendError(c, "invalid group or user")
		return
	}

	if err := ctl.Orch.Leave(ctx, p.GroupCode, p.Username); err != nil {
		ctl.sendOpError(c, err, "failed to leave group")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("group", string(p.GroupCode)).Msg("left group")
}

func (ctl *WSController) handleDissolve(ctx context.Context, sid core.SessionID, c *WsConn, data []byte) {
	var p groupEvent
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad dissolve payload")
		ctl.sendError(c, "malformed event")
		return
	}
	if !ctl.boundTo(sid, p.GroupCode, p.Username) {
		ctl.sendError(c, "invalid group or user")
		return
	}

	if err := ctl.Orch.Dissolve(ctx, p.GroupCode, p.Username); err != nil {
		ctl.sendOpError(c, err, "failed to dissolve group")
		return
	}
	log.Info().Str("module", "signal").Str("group", string(p.GroupCode)).Str("by", p.Username).Msg("group dissolved by host")
}

// boundTo checks the connection really joined this group as this user,
// so events cannot be forged on behalf of another member.
func (ctl *WSController) boundTo(sid core.SessionID, code domain.GroupCode, username string) bool {
	boundCode, boundUser, ok := ctl.Orch.Registry.IdentityOf(sid)
	return ok && boundCode == code && boundUser == username
}
