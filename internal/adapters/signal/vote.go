package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

func (ctl *WSController) handleVote(ctx context.Context, sid core.SessionID, c *WsConn, data []byte) {
	var p struct {
		Type         string           `json:"type"`
		GroupCode    domain.GroupCode `json:"group_code"`
		RestaurantID string           `json:"restaurant_id"`
		Username     string           `json:"username"`
		Liked        bool             `json:"liked"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad vote payload")
		ctl.sendError(c, "malformed event")
		return
	}
	if p.GroupCode == "" || p.RestaurantID == "" || p.Username == "" {
		ctl.sendError(c, "group code, restaurant id and username required")
		return
	}
	if !ctl.boundTo(sid, p.GroupCode, p.Username) {
		ctl.sendError(c, "invalid group or user")
		return
	}

	res, err := ctl.Orch.Vote(ctx, p.GroupCode, p.RestaurantID, p.Username, p.Liked)
	if err != nil {
		ctl.sendOpError(c, err, "failed to process vote")
		return
	}
	if res.IsMatch {
		log.Info().Str("module", "signal").Str("group", string(p.GroupCode)).Str("restaurant", p.RestaurantID).Msg("match announced")
	}
}

func (ctl *WSController) handleReady(ctx context.Context, sid core.SessionID, c *WsConn, data []byte) {
	var p struct {
		Type      string           `json:"type"`
		GroupCode domain.GroupCode `json:"group_code"`
		Username  string           `json:"username"`
		IsReady   bool             `json:"is_ready"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad ready payload")
		ctl.sendError(c, "malformed event")
		return
	}
	if !ctl.boundTo(sid, p.GroupCode, p.Username) {
		ctl.sendError(c, "invalid group or user")
		return
	}

	if _, err := ctl.Orch.SetReady(ctx, p.GroupCode, p.Username, p.IsReady); err != nil {
		ctl.sendOpError(c, err, "failed to update ready status")
		return
	}
}
