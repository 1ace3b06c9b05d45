package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// CreateGroup generates a unique code and creates the group with the
// creator seeded as an always-ready member.
func (o *Orchestrator) CreateGroup(ctx context.Context, name, creator string) (*domain.Group, error) {
	if err := domain.ValidateGroupName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidateUsername(creator); err != nil {
		return nil, err
	}

	code, err := o.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	g, err := o.Groups.CreateGroup(ctx, code, name, creator)
	if err != nil {
		return nil, err
	}
	log.Info().Str("module", "app.orch").Str("group", string(code)).Str("creator", creator).Msg("group created")
	return g, nil
}

// JoinGroup adds a member through the REST path. The connected room
// learns about it the same way as on a socket join.
func (o *Orchestrator) JoinGroup(ctx context.Context, code domain.GroupCode, username string) (*domain.Group, error) {
	s := o.Sessions.GetOrCreate(code)
	s.Lock()
	defer s.Unlock()

	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, core.ErrGroupNotFound
	}
	if g.Status != domain.StatusActive {
		return nil, core.ErrGroupNotActive
	}
	count, err := o.Groups.GetMemberCount(ctx, code)
	if err != nil {
		return nil, err
	}
	if count >= g.MaxMembers {
		return nil, core.ErrGroupFull
	}
	member, err := o.Groups.IsMember(ctx, code, username)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, core.ErrAlreadyMember
	}

	if err := o.Groups.AddMember(ctx, code, username, false); err != nil {
		return nil, err
	}
	o.broadcastMembers(ctx, code)
	log.Info().Str("module", "app.orch").Str("group", string(code)).Str("user", username).Msg("member joined")
	return g, nil
}

// GroupWithMembers is the read path behind GET /groups/:code.
func (o *Orchestrator) GroupWithMembers(ctx context.Context, code domain.GroupCode) (*domain.Group, []domain.Member, error) {
	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, core.ErrGroupNotFound
	}
	members, err := o.Groups.GetMembers(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	return g, members, nil
}

// Reset returns a matched (or selecting) group to active for another
// round: wipes the members' vote rows, drops non-host ready flags and
// the announced round facts. Host only.
func (o *Orchestrator) Reset(ctx context.Context, code domain.GroupCode, username string) error {
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

	if err := o.Catalog.ClearGroupLikes(ctx, code); err != nil {
		return err
	}
	if err := o.Groups.ClearMemberReady(ctx, code); err != nil {
		return err
	}
	if err := o.Groups.UpdateGroupStatus(ctx, code, domain.StatusActive); err != nil {
		return err
	}
	s.ClearRound()

	o.Dispatch.Broadcast(code, core.NewReset(username))
	o.broadcastMembers(ctx, code)
	log.Info().Str("module", "app.orch").Str("group", string(code)).Msg("group reset")
	return nil
}

// broadcastMembers pushes the current member list to the whole room.
// Called under the group lock after any membership or readiness change.
func (o *Orchestrator) broadcastMembers(ctx context.Context, code domain.GroupCode) {
	members, err := o.Groups.GetMembers(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orch").Str("group", string(code)).Msg("load members for broadcast")
		return
	}
	o.Dispatch.Broadcast(code, core.NewMembersUpdate(members))
}
