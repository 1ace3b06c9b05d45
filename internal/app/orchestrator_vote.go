package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// VoteResult reports the tally after one vote was applied.
type VoteResult struct {
	IsMatch      bool
	LikesCount   int
	TotalMembers int
	Restaurant   *domain.Restaurant
}

// Vote applies one like/dislike and evaluates the match predicate. The
// whole read-modify-write runs under the group lock, so two votes
// racing for the last needed like cannot both observe a match, and the
// session's matched pair guarantees at-most-once match emission.
func (o *Orchestrator) Vote(ctx context.Context, code domain.GroupCode, restaurantID, username string, liked bool) (VoteResult, error) {
	s := o.Sessions.GetOrCreate(code)
	s.Lock()
	defer s.Unlock()

	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return VoteResult{}, err
	}
	if g == nil {
		return VoteResult{}, core.ErrGroupNotFound
	}
	member, err := o.Groups.IsMember(ctx, code, username)
	if err != nil {
		return VoteResult{}, err
	}
	if !member {
		return VoteResult{}, core.ErrNotAMember
	}
	restaurant, err := o.Catalog.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return VoteResult{}, err
	}
	if restaurant == nil {
		return VoteResult{}, core.ErrRestaurantNotFound
	}

	if liked {
		err = o.Catalog.RecordLike(ctx, username, restaurantID)
	} else {
		err = o.Catalog.RemoveLike(ctx, username, restaurantID)
	}
	if err != nil {
		return VoteResult{}, err
	}

	o.Dispatch.Broadcast(code, core.NewVoteUpdate(restaurantID, username, liked))

	likes, err := o.Catalog.GroupLikeCount(ctx, code, restaurantID)
	if err != nil {
		return VoteResult{}, err
	}
	members, err := o.Groups.GetMemberCount(ctx, code)
	if err != nil {
		return VoteResult{}, err
	}

	res := VoteResult{LikesCount: likes, TotalMembers: members, Restaurant: restaurant}
	if likes != members || members < 1 {
		return res, nil
	}
	if _, already := s.Matched(); already {
		// The group already matched; never re-announce.
		return res, nil
	}
	if err := o.Groups.UpdateGroupStatus(ctx, code, domain.StatusMatched); err != nil {
		return VoteResult{}, err
	}
	s.MarkMatched(restaurantID)
	res.IsMatch = true
	o.Dispatch.Broadcast(code, core.NewMatchFound(*restaurant))
	log.Info().Str("module", "app.orch").Str("group", string(code)).Str("restaurant", restaurantID).Int("members", members).Msg("restaurant match")
	return res, nil
}

// RestaurantTally pairs a catalog entry with its group vote state.
type RestaurantTally struct {
	domain.Restaurant
	LikesCount   int `json:"likes_count"`
	TotalMembers int `json:"total_members"`
}

// GroupRestaurants lists the catalog with per-restaurant like tallies
// for one group, the read model behind the selection screen.
func (o *Orchestrator) GroupRestaurants(ctx context.Context, code domain.GroupCode, limit int) ([]RestaurantTally, error) {
	g, err := o.Groups.FindGroupByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, core.ErrGroupNotFound
	}
	members, err := o.Groups.GetMemberCount(ctx, code)
	if err != nil {
		return nil, err
	}
	restaurants, err := o.Catalog.ListRestaurants(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RestaurantTally, 0, len(restaurants))
	for _, r := range restaurants {
		likes, err := o.Catalog.GroupLikeCount(ctx, code, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, RestaurantTally{Restaurant: r, LikesCount: likes, TotalMembers: members})
	}
	return out, nil
}
