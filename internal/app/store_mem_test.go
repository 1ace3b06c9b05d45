package app

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// memStore is an in-memory persistence collaborator for engine tests.
type memStore struct {
	mu          sync.Mutex
	groups      map[domain.GroupCode]*domain.Group
	members     map[domain.GroupCode][]domain.Member
	likes       map[string]map[string]bool // username -> restaurant ids
	restaurants map[string]domain.Restaurant
}

func newMemStore() *memStore {
	return &memStore{
		groups:      make(map[domain.GroupCode]*domain.Group),
		members:     make(map[domain.GroupCode][]domain.Member),
		likes:       make(map[string]map[string]bool),
		restaurants: make(map[string]domain.Restaurant),
	}
}

func (s *memStore) addRestaurant(r domain.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants[r.ID] = r
}

func (s *memStore) CreateGroup(_ context.Context, code domain.GroupCode, name, creator string) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := &domain.Group{
		Code:       code,
		Name:       name,
		Status:     domain.StatusActive,
		Creator:    creator,
		MaxMembers: domain.DefaultMaxMembers,
		CreatedAt:  time.Now(),
	}
	s.groups[code] = g
	s.members[code] = append(s.members[code], domain.Member{
		Username: creator, Name: creator, IsReady: true, IsHost: true, JoinedAt: time.Now(),
	})
	out := *g
	return &out, nil
}

func (s *memStore) FindGroupByCode(_ context.Context, code domain.GroupCode) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[code]
	if !ok {
		return nil, nil
	}
	out := *g
	return &out, nil
}

func (s *memStore) UpdateGroupStatus(_ context.Context, code domain.GroupCode, status domain.GroupStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !status.Valid() {
		return core.ErrInvalidStatus
	}
	if g, ok := s.groups[code]; ok {
		g.Status = status
	}
	return nil
}

func (s *memStore) AddMember(_ context.Context, code domain.GroupCode, username string, ready bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[code] = append(s.members[code], domain.Member{
		Username: username, Name: username, IsReady: ready, JoinedAt: time.Now(),
	})
	return nil
}

func (s *memStore) RemoveMember(_ context.Context, code domain.GroupCode, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.members[code][:0]
	for _, m := range s.members[code] {
		if m.Username != username {
			kept = append(kept, m)
		}
	}
	s.members[code] = kept
	return nil
}

func (s *memStore) GetMembers(_ context.Context, code domain.GroupCode) ([]domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creator := ""
	if g, ok := s.groups[code]; ok {
		creator = g.Creator
	}
	out := make([]domain.Member, len(s.members[code]))
	for i, m := range s.members[code] {
		m.IsHost = m.Username == creator
		out[i] = m
	}
	return out, nil
}

func (s *memStore) GetMemberCount(_ context.Context, code domain.GroupCode) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members[code]), nil
}

func (s *memStore) IsMember(_ context.Context, code domain.GroupCode, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members[code] {
		if m.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) UpdateMemberReady(_ context.Context, code domain.GroupCode, username string, ready bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.members[code] {
		if m.Username == username {
			s.members[code][i].IsReady = ready
		}
	}
	return nil
}

func (s *memStore) ClearMemberReady(_ context.Context, code domain.GroupCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creator := ""
	if g, ok := s.groups[code]; ok {
		creator = g.Creator
	}
	for i, m := range s.members[code] {
		if m.Username != creator {
			s.members[code][i].IsReady = false
		}
	}
	return nil
}

func (s *memStore) FindRestaurantByID(_ context.Context, id string) (*domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memStore) ListRestaurants(_ context.Context, limit int) ([]domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memStore) RecordLike(_ context.Context, username, restaurantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes[username] == nil {
		s.likes[username] = make(map[string]bool)
	}
	s.likes[username][restaurantID] = true
	return nil
}

func (s *memStore) RemoveLike(_ context.Context, username, restaurantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes[username], restaurantID)
	return nil
}

func (s *memStore) GroupLikeCount(_ context.Context, code domain.GroupCode, restaurantID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.members[code] {
		if s.likes[m.Username][restaurantID] {
			n++
		}
	}
	return n, nil
}

func (s *memStore) ClearGroupLikes(_ context.Context, code domain.GroupCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members[code] {
		delete(s.likes, m.Username)
	}
	return nil
}

// fakeConn records everything sent to it.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make(core.Frame, len(f))
	copy(buf, f)
	c.frames = append(c.frames, buf)
	return nil
}

func (c *fakeConn) Close() {}

// kinds decodes the type field of every received frame, in order.
func (c *fakeConn) kinds(t *testing.T) []string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		var env struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(f, &env); err != nil {
			t.Fatalf("bad frame %q: %v", f, err)
		}
		out = append(out, env.Type)
	}
	return out
}

func (c *fakeConn) countKind(t *testing.T, kind string) int {
	t.Helper()
	n := 0
	for _, k := range c.kinds(t) {
		if k == kind {
			n++
		}
	}
	return n
}
