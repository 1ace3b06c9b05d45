package domain

import (
	"errors"
	"time"
)

const MaxUsernameLen = 36

var ErrUsernameEmpty = errors.New("username empty")
var ErrUsernameTooLong = errors.New("username too long")

// Member is a user's participation record in one group.
// The canonical shape for every member list crossing the boundary.
type Member struct {
	Username string    `json:"username"`
	Name     string    `json:"name"`
	IsReady  bool      `json:"is_ready"`
	IsHost   bool      `json:"is_host"`
	JoinedAt time.Time `json:"joined_at"`
}

// ValidateUsername mirrors the limits enforced by the account service.
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
