package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

var _ core.RestaurantStore = (*Store)(nil)

func (s *Store) FindRestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var row restaurantRow
	err := s.db.WithContext(ctx).First(&row, "restaurant_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r := restaurantFromRow(row)
	return &r, nil
}

func (s *Store) ListRestaurants(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	q := s.db.WithContext(ctx).Model(&restaurantRow{}).Order("rating DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []restaurantRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Restaurant, 0, len(rows))
	for _, row := range rows {
		out = append(out, restaurantFromRow(row))
	}
	return out, nil
}

// RecordLike upserts: voting the same value twice is a no-op.
func (s *Store) RecordLike(ctx context.Context, username, restaurantID string) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&likeRow{Username: username, RestaurantID: restaurantID}).Error
}

func (s *Store) RemoveLike(ctx context.Context, username, restaurantID string) error {
	return s.db.WithContext(ctx).
		Delete(&likeRow{}, "username = ? AND restaurant_id = ?", username, restaurantID).Error
}

// GroupLikeCount joins likes against current membership, so departed
// members never count toward a tally.
func (s *Store) GroupLikeCount(ctx context.Context, code domain.GroupCode, restaurantID string) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Table("restaurant_likes").
		Joins("JOIN group_members ON group_members.username = restaurant_likes.username").
		Where("group_members.group_code = ? AND restaurant_likes.restaurant_id = ?", string(code), restaurantID).
		Count(&n).Error
	return int(n), err
}

func (s *Store) ClearGroupLikes(ctx context.Context, code domain.GroupCode) error {
	return s.db.WithContext(ctx).
		Where("username IN (?)",
			s.db.Model(&memberRow{}).Select("username").Where("group_code = ?", string(code)),
		).
		Delete(&likeRow{}).Error
}

// SeedRestaurants loads the catalog once; existing rows win.
func (s *Store) SeedRestaurants(ctx context.Context, restaurants []domain.Restaurant) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&restaurantRow{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rows := make([]restaurantRow, 0, len(restaurants))
	for _, r := range restaurants {
		rows = append(rows, restaurantRow{
			RestaurantID:  r.ID,
			Name:          r.Name,
			Rating:        r.Rating,
			PriceLevel:    r.PriceLevel,
			PriceRangeMin: r.PriceRangeMin,
			PriceRangeMax: r.PriceRangeMax,
			Type:          r.Type,
			Summary:       r.Summary,
			URL:           r.URL,
			Reservable:    r.Reservable,
			Vegetarian:    r.Vegetarian,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func restaurantFromRow(r restaurantRow) domain.Restaurant {
	return domain.Restaurant{
		ID:            r.RestaurantID,
		Name:          r.Name,
		Rating:        r.Rating,
		PriceLevel:    r.PriceLevel,
		PriceRangeMin: r.PriceRangeMin,
		PriceRangeMax: r.PriceRangeMax,
		Type:          r.Type,
		Summary:       r.Summary,
		URL:           r.URL,
		Reservable:    r.Reservable,
		Vegetarian:    r.Vegetarian,
	}
}
