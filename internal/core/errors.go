package core

import "errors"

// Engine error taxonomy. Adapters translate these into an "error" event
// on the originating connection or an HTTP status; they never reach
// clients raw and never abort another member's processing.
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupNotActive     = errors.New("group is not accepting new members")
	ErrGroupFull          = errors.New("group is full")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrNotAMember         = errors.New("user is not a member of this group")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrForbidden          = errors.New("operation allowed for group host only")
	ErrInvalidStatus      = errors.New("invalid group status")
	ErrCodeExhausted      = errors.New("failed to generate unique group code")
)
