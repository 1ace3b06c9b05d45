package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// Attach binds a connection to its group's room after verifying the
// user really is a member, then announces the arrival.
func (o *Orchestrator) Attach(ctx context.Context, sid core.SessionID, code domain.GroupCode, username string) error {
	s := o.Sessions.GetOrCreate(code)
	s.Lock()
	defer s.Unlock()

	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return err
	}
	if g == nil {
		return core.ErrGroupNotFound
	}
	member, err := o.Groups.IsMember(ctx, code, username)
	if err != nil {
		return err
	}
	if !member {
		return core.ErrNotAMember
	}

	if !o.Registry.JoinRoom(sid, code, username) {
		return fmt.Errorf("no signal connection for session %s", sid)
	}

	o.Dispatch.BroadcastExcept(code, sid, core.NewMemberNotice(core.EventUserJoined, username, username+" joined the group"))
	o.broadcastMembers(ctx, code)
	return nil
}

// Leave removes a member and announces it. A leaving host dissolves the
// whole group instead. sid may be empty when triggered over REST; the
// registry is consulted for the user's socket binding either way.
func (o *Orchestrator) Leave(ctx context.Context, code domain.GroupCode, username string) error {
	s := o.Sessions.GetOrCreate(code)
	s.Lock()
	defer s.Unlock()

	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return err
	}
	if g == nil {
		return core.ErrGroupNotFound
	}

	if g.IsHost(username) {
		return o.dissolveLocked(ctx, code, username)
	}

	member, err := o.Groups.IsMember(ctx, code, username)
	if err != nil {
		return err
	}
	if !member {
		return core.ErrNotAMember
	}
	if err := o.Groups.RemoveMember(ctx, code, username); err != nil {
		return err
	}

	if sid, ok := o.Registry.SIDOfUser(code, username); ok {
		o.Registry.LeaveRoom(sid)
	}
	o.Dispatch.Broadcast(code, core.NewMemberNotice(core.EventMemberLeft, username, username+" left the group"))
	o.broadcastMembers(ctx, code)
	log.Info().Str("module", "app.orch").Str("group", string(code)).Str("user", username).Msg("member left")
	return nil
}

// Dissolve ends the group. Host only.
func (o *Orchestrator) Dissolve(ctx context.Context, code domain.GroupCode, username string) error {
	s := o.Sessions.GetOrCreate(code)
	s.Lock()
	defer s.Unlock()

	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return err
	}
	if g == nil {
		return core.ErrGroupNotFound
	}
	if !g.IsHost(username) {
		return core.ErrForbidden
	}
	return o.dissolveLocked(ctx, code, username)
}

// dissolveLocked marks the group inactive, tells the room, and evicts
// every connection from it. Caller holds the session lock.
func (o *Orchestrator) dissolveLocked(ctx context.Context, code domain.GroupCode, by string) error {
	if err := o.Groups.UpdateGroupStatus(ctx, code, domain.StatusInactive); err != nil {
		return err
	}
	o.Dispatch.Broadcast(code, core.NewDissolved(by))
	for _, snap := range o.Registry.MembersOfRoom(code) {
		o.Registry.LeaveRoom(snap.SID)
	}
	o.Sessions.Evict(code)
	log.Info().Str("module", "app.orch").Str("group", string(code)).Str("by", by).Msg("group dissolved")
	return nil
}

// Disconnect handles a dropped transport. Membership is deliberately
// kept: a transient network drop is not a leave, so the member still
// counts toward readiness and match tallies until an explicit leave.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	code, username, ok := o.Registry.IdentityOf(sid)
	if ok {
		o.Dispatch.BroadcastExcept(code, sid, core.NewMemberNotice(core.EventMemberDisconnected, username, username+" disconnected"))
		log.Info().Str("module", "app.orch").Str("group", string(code)).Str("user", username).Msg("member disconnected")
	}
	o.Registry.Unbind(sid)
}
