package core

import (
	"sync"

	"github.com/bitefinder/server/internal/domain"
)

// GroupSession is the in-process coordination state of one group: the
// serialization point for every read-modify-write on that group, plus
// the transient facts that must fire at most once (the matched pair,
// the all-ready announcement). Persistent state lives in the store.
type GroupSession struct {
	Code domain.GroupCode

	mu sync.Mutex

	matchedRestaurant string
	allReadyAnnounced bool
}

func NewGroupSession(code domain.GroupCode) *GroupSession {
	return &GroupSession{Code: code}
}

// Lock serializes state-mutating operations for this group. It is held
// across store round trips so a second event for the same group queues
// behind the first instead of racing ahead.
func (s *GroupSession) Lock()   { s.mu.Lock() }
func (s *GroupSession) Unlock() { s.mu.Unlock() }

// Matched reports the restaurant this group already matched on, if any.
// Callers must hold the session lock.
func (s *GroupSession) Matched() (string, bool) {
	return s.matchedRestaurant, s.matchedRestaurant != ""
}

// MarkMatched records the matched pair. Returns false if the group has
// already matched, guaranteeing at-most-once match emission.
func (s *GroupSession) MarkMatched(restaurantID string) bool {
	if s.matchedRestaurant != "" {
		return false
	}
	s.matchedRestaurant = restaurantID
	return true
}

// AllReadyAnnounced reports whether this round's all-ready announcement
// already went out.
func (s *GroupSession) AllReadyAnnounced() bool { return s.allReadyAnnounced }

// MarkAllReady latches the all-ready announcement for this round.
func (s *GroupSession) MarkAllReady() { s.allReadyAnnounced = true }

// ClearRound resets the transient round facts so the group can re-enter
// the active state.
func (s *GroupSession) ClearRound() {
	s.matchedRestaurant = ""
	s.allReadyAnnounced = false
}
