package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// ReadyResult reports the readiness state after one toggle.
type ReadyResult struct {
	AllReady    bool
	MemberCount int
}

// SetReady persists a member's ready flag and evaluates the all-ready
// transition. The host is conceptually always ready and is not toggled
// through this path; only non-host members participate in the
// predicate, and at least one of them must exist.
func (o *Orchestrator) SetReady(ctx context.Context, code domain.GroupCode, username string, isReady bool) (ReadyResult, error) {
	s := o.Sessions.GetOrCreate(code)
	s.Lock()
	defer s.Unlock()

	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return ReadyResult{}, err
	}
	if g == nil {
		return ReadyResult{}, core.ErrGroupNotFound
	}
	member, err := o.Groups.IsMember(ctx, code, username)
	if err != nil {
		return ReadyResult{}, err
	}
	if !member {
		return ReadyResult{}, core.ErrNotAMember
	}

	if !g.IsHost(username) {
		if err := o.Groups.UpdateMemberReady(ctx, code, username, isReady); err != nil {
			return ReadyResult{}, err
		}
		o.Dispatch.Broadcast(code, core.NewReadyUpdate(username, isReady))
	}

	members, err := o.Groups.GetMembers(ctx, code)
	if err != nil {
		return ReadyResult{}, err
	}
	res := ReadyResult{AllReady: allNonHostReady(members), MemberCount: len(members)}

	if res.AllReady && g.Status == domain.StatusActive && !s.AllReadyAnnounced() {
		if err := o.Groups.UpdateGroupStatus(ctx, code, domain.StatusSelecting); err != nil {
			return ReadyResult{}, err
		}
		s.MarkAllReady()
		o.Dispatch.Broadcast(code, core.NewAllReady())
		log.Info().Str("module", "app.orch").Str("group", string(code)).Int("members", res.MemberCount).Msg("all members ready")
	}
	return res, nil
}

// allNonHostReady holds iff there is at least one non-host member and
// every one of them is ready.
func allNonHostReady(members []domain.Member) bool {
	nonHost := 0
	for _, m := range members {
		if m.IsHost {
			continue
		}
		nonHost++
		if !m.IsReady {
			return false
		}
	}
	return nonHost >= 1
}
