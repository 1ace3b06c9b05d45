// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"
	"time"
)

type GroupCode string

type GroupStatus string

const (
	StatusActive    GroupStatus = "active"
	StatusSelecting GroupStatus = "selecting"
	StatusMatched   GroupStatus = "matched"
	StatusInactive  GroupStatus = "inactive"
)

// Valid reports whether s is one of the enumerated lifecycle statuses.
func (s GroupStatus) Valid() bool {
	switch s {
	case StatusActive, StatusSelecting, StatusMatched, StatusInactive:
		return true
	}
	return false
}

const (
	// CodeLength is the length of a shareable group code.
	CodeLength = 6

	// CodeAlphabet is the character set group codes are drawn from.
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultMaxMembers caps group size unless overridden at creation.
	DefaultMaxMembers = 6

	MaxGroupNameLen = 64
)

var (
	ErrGroupNameEmpty   = errors.New("group name empty")
	ErrGroupNameTooLong = errors.New("group name too long")
	ErrBadGroupCode     = errors.New("malformed group code")
)

type Group struct {
	Code       GroupCode   `json:"code"`
	Name       string      `json:"name"`
	Status     GroupStatus `json:"status"`
	Creator    string      `json:"creator_username"`
	MaxMembers int         `json:"max_members"`
	CreatedAt  time.Time   `json:"created_at"`
}

// IsHost reports whether username created the group.
func (g *Group) IsHost(username string) bool { return g.Creator == username }

// ValidateGroupName keeps ad-hoc length checks out of adapters.
func ValidateGroupName(name string) error {
	if len(name) == 0 {
		return ErrGroupNameEmpty
	}
	if len(name) > MaxGroupNameLen {
		return ErrGroupNameTooLong
	}
	return nil
}

// ValidateGroupCode checks shape only, not existence.
func ValidateGroupCode(code GroupCode) error {
	if len(code) != CodeLength {
		return ErrBadGroupCode
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return ErrBadGroupCode
		}
	}
	return nil
}
