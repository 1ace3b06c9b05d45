package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

var _ core.GroupStore = (*Store)(nil)

// CreateGroup inserts the group and seeds the creator as an always-ready member.
func (s *Store) CreateGroup(ctx context.Context, code domain.GroupCode, name, creator string) (*domain.Group, error) {
	row := groupRow{
		Code:       string(code),
		Name:       name,
		Status:     string(domain.StatusActive),
		Creator:    creator,
		MaxMembers: domain.DefaultMaxMembers,
		CreatedAt:  time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&memberRow{
			GroupCode: string(code),
			Username:  creator,
			Name:      creator,
			IsReady:   true,
			JoinedAt:  time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return groupFromRow(row), nil
}

func (s *Store) FindGroupByCode(ctx context.Context, code domain.GroupCode) (*domain.Group, error) {
	var row groupRow
	err := s.db.WithContext(ctx).First(&row, "code = ?", string(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return groupFromRow(row), nil
}

func (s *Store) UpdateGroupStatus(ctx context.Context, code domain.GroupCode, status domain.GroupStatus) error {
	if !status.Valid() {
		return core.ErrInvalidStatus
	}
	return s.db.WithContext(ctx).
		Model(&groupRow{}).
		Where("code = ?", string(code)).
		Update("status", string(status)).Error
}

func (s *Store) AddMember(ctx context.Context, code domain.GroupCode, username string, ready bool) error {
	return s.db.WithContext(ctx).Create(&memberRow{
		GroupCode: string(code),
		Username:  username,
		Name:      username,
		IsReady:   ready,
		JoinedAt:  time.Now().UTC(),
	}).Error
}

func (s *Store) RemoveMember(ctx context.Context, code domain.GroupCode, username string) error {
	return s.db.WithContext(ctx).
		Delete(&memberRow{}, "group_code = ? AND username = ?", string(code), username).Error
}

func (s *Store) GetMembers(ctx context.Context, code domain.GroupCode) ([]domain.Member, error) {
	var creator string
	err := s.db.WithContext(ctx).
		Model(&groupRow{}).
		Select("creator").
		Where("code = ?", string(code)).
		Scan(&creator).Error
	if err != nil {
		return nil, err
	}

	var rows []memberRow
	err = s.db.WithContext(ctx).
		Where("group_code = ?", string(code)).
		Order("joined_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, domain.Member{
			Username: r.Username,
			Name:     r.Name,
			IsReady:  r.IsReady,
			IsHost:   r.Username == creator,
			JoinedAt: r.JoinedAt,
		})
	}
	return members, nil
}

func (s *Store) GetMemberCount(ctx context.Context, code domain.GroupCode) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&memberRow{}).
		Where("group_code = ?", string(code)).
		Count(&n).Error
	return int(n), err
}

func (s *Store) IsMember(ctx context.Context, code domain.GroupCode, username string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&memberRow{}).
		Where("group_code = ? AND username = ?", string(code), username).
		Count(&n).Error
	return n > 0, err
}

func (s *Store) UpdateMemberReady(ctx context.Context, code domain.GroupCode, username string, ready bool) error {
	return s.db.WithContext(ctx).
		Model(&memberRow{}).
		Where("group_code = ? AND username = ?", string(code), username).
		Update("is_ready", ready).Error
}

func (s *Store) ClearMemberReady(ctx context.Context, code domain.GroupCode) error {
	return s.db.WithContext(ctx).
		Model(&memberRow{}).
		Where("group_code = ? AND username <> (?)",
			string(code),
			s.db.Model(&groupRow{}).Select("creator").Where("code = ?", string(code)),
		).
		Update("is_ready", false).Error
}

func groupFromRow(r groupRow) *domain.Group {
	return &domain.Group{
		Code:       domain.GroupCode(r.Code),
		Name:       r.Name,
		Status:     domain.GroupStatus(r.Status),
		Creator:    r.Creator,
		MaxMembers: r.MaxMembers,
		CreatedAt:  r.CreatedAt,
	}
}
