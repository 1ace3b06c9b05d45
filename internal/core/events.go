package core

import (
	"time"

	"github.com/bitefinder/server/internal/domain"
)

// Event kinds crossing the real-time boundary. Inbound kinds are what
// clients send, outbound kinds are what the dispatcher fans out.
const (
	// inbound
	EventJoinGroup       = "join_group"
	EventLeaveGroup      = "leave_group"
	EventRestaurantVote  = "restaurant_vote"
	EventReadyChange     = "ready_status_change"
	EventDissolvedByHost = "group_dissolved_by_host"
	EventPing            = "ping"

	// outbound
	EventMembersUpdate      = "members_update"
	EventUserJoined         = "user_joined"
	EventMemberLeft         = "member_left"
	EventMemberDisconnected = "member_disconnected"
	EventVoteUpdate         = "restaurant_vote_update"
	EventMatch              = "restaurant_match"
	EventReadyUpdate        = "member_ready_update"
	EventAllReady           = "all_members_ready"
	EventDissolved          = "group_dissolved"
	EventReset              = "group_reset"
	EventError              = "error"
	EventPong               = "pong"
)

// Outbound payloads. One canonical shape per event; adapters never
// build ad-hoc variants.

type MembersUpdate struct {
	Type    string          `json:"type"`
	Members []domain.Member `json:"members"`
}

// MemberNotice covers user_joined / member_left / member_disconnected.
type MemberNotice struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type VoteUpdate struct {
	Type         string `json:"type"`
	RestaurantID string `json:"restaurant_id"`
	Username     string `json:"username"`
	Liked        bool   `json:"liked"`
	Timestamp    string `json:"timestamp"`
}

type MatchFound struct {
	Type       string            `json:"type"`
	Message    string            `json:"message"`
	Restaurant domain.Restaurant `json:"restaurant"`
	MatchedAt  string            `json:"matched_at"`
}

type ReadyUpdate struct {
	Type      string `json:"type"`
	Username  string `json:"username"`
	IsReady   bool   `json:"is_ready"`
	Timestamp string `json:"timestamp"`
}

type AllReady struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Dissolved struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	DissolvedBy string `json:"dissolved_by"`
	Timestamp   string `json:"timestamp"`
}

type Reset struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	ResetBy   string `json:"reset_by"`
	Timestamp string `json:"timestamp"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Now formats the event timestamp the way clients expect.
func Now() string { return time.Now().UTC().Format(time.RFC3339) }

func NewMembersUpdate(members []domain.Member) MembersUpdate {
	return MembersUpdate{Type: EventMembersUpdate, Members: members}
}

func NewMemberNotice(kind, username, message string) MemberNotice {
	return MemberNotice{Type: kind, Username: username, Message: message}
}

func NewVoteUpdate(restaurantID, username string, liked bool) VoteUpdate {
	return VoteUpdate{
		Type:         EventVoteUpdate,
		RestaurantID: restaurantID,
		Username:     username,
		Liked:        liked,
		Timestamp:    Now(),
	}
}

func NewMatchFound(r domain.Restaurant) MatchFound {
	return MatchFound{
		Type:       EventMatch,
		Message:    "Restaurant match found!",
		Restaurant: r,
		MatchedAt:  Now(),
	}
}

func NewReadyUpdate(username string, isReady bool) ReadyUpdate {
	return ReadyUpdate{Type: EventReadyUpdate, Username: username, IsReady: isReady, Timestamp: Now()}
}

func NewAllReady() AllReady {
	return AllReady{
		Type:      EventAllReady,
		Message:   "All members are ready! Starting restaurant selection...",
		Timestamp: Now(),
	}
}

func NewDissolved(by string) Dissolved {
	return Dissolved{
		Type:        EventDissolved,
		Message:     "Group has been dissolved by the host",
		DissolvedBy: by,
		Timestamp:   Now(),
	}
}

func NewReset(by string) Reset {
	return Reset{
		Type:      EventReset,
		Message:   "Group has been reset for a new round",
		ResetBy:   by,
		Timestamp: Now(),
	}
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}
