package core

import (
	"context"

	"github.com/bitefinder/server/internal/domain"
)

// GroupStore is the narrow slice of the persistence collaborator the
// engine needs for membership and lifecycle. Implementations report
// absence with (nil, nil) / (false, nil); the engine owns the mapping
// to its error taxonomy.
type GroupStore interface {
	CreateGroup(ctx context.Context, code domain.GroupCode, name, creator string) (*domain.Group, error)
	FindGroupByCode(ctx context.Context, code domain.GroupCode) (*domain.Group, error)
	UpdateGroupStatus(ctx context.Context, code domain.GroupCode, status domain.GroupStatus) error

	AddMember(ctx context.Context, code domain.GroupCode, username string, ready bool) error
	RemoveMember(ctx context.Context, code domain.GroupCode, username string) error
	// GetMembers returns current members ordered by joined_at.
	GetMembers(ctx context.Context, code domain.GroupCode) ([]domain.Member, error)
	GetMemberCount(ctx context.Context, code domain.GroupCode) (int, error)
	IsMember(ctx context.Context, code domain.GroupCode, username string) (bool, error)
	UpdateMemberReady(ctx context.Context, code domain.GroupCode, username string, ready bool) error
	// ClearMemberReady drops the ready flag of every non-host member.
	ClearMemberReady(ctx context.Context, code domain.GroupCode) error
}

// RestaurantStore covers the catalog and the vote rows.
type RestaurantStore interface {
	FindRestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context, limit int) ([]domain.Restaurant, error)

	// RecordLike upserts; liking twice is a no-op.
	RecordLike(ctx context.Context, username, restaurantID string) error
	RemoveLike(ctx context.Context, username, restaurantID string) error
	// GroupLikeCount tallies likes for a restaurant over the group's
	// *current* members only.
	GroupLikeCount(ctx context.Context, code domain.GroupCode, restaurantID string) (int, error)
	// ClearGroupLikes wipes the like rows of every current member.
	ClearGroupLikes(ctx context.Context, code domain.GroupCode) error
}
