package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

type connEntry struct {
	GroupCode domain.GroupCode
	Username  string
	Conn      core.SignalConnection
	Cancel    context.CancelFunc
}

// Registry maps live connections to the (group, user) they joined and
// supports the reverse lookup the dispatcher fans out with. A
// connection is bound to at most one group at a time.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.SessionID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[core.SessionID]*connEntry)}
}

// BindSignal registers a freshly upgraded connection with no group yet.
func (r *Registry) BindSignal(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[sid] = &connEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound signal")
}

// JoinRoom binds sid to a (group, user) pair, replacing any prior
// binding. Membership validation is the orchestrator's job.
func (r *Registry) JoinRoom(sid core.SessionID, code domain.GroupCode, username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[sid]
	if !ok {
		return false
	}
	e.GroupCode = code
	e.Username = username
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("group", string(code)).Str("user", username).Msg("joined room")
	return true
}

// LeaveRoom clears the group binding but keeps the connection alive.
func (r *Registry) LeaveRoom(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[sid]; ok {
		e.GroupCode = ""
		e.Username = ""
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("left room")
}

// IdentityOf returns the (group, user) a connection joined, if any.
func (r *Registry) IdentityOf(sid core.SessionID) (domain.GroupCode, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[sid]
	if !ok || e.GroupCode == "" {
		return "", "", false
	}
	return e.GroupCode, e.Username, true
}

func (r *Registry) Connection(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Unbind forgets the connection entirely. Called by the adapter when
// the transport goes away.
func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

// ConnSnap is a point-in-time view of one room member's connection.
type ConnSnap struct {
	SID      core.SessionID
	Username string
	Conn     core.SignalConnection
}

// MembersOfRoom snapshots every connection currently joined to a group.
func (r *Registry) MembersOfRoom(code domain.GroupCode) []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.conns))
	for sid, e := range r.conns {
		if e.GroupCode == code {
			out = append(out, ConnSnap{SID: sid, Username: e.Username, Conn: e.Conn})
		}
	}
	return out
}

// SIDOfUser finds the connection a user joined a group with, for
// REST-triggered operations that must evict the socket binding too.
func (r *Registry) SIDOfUser(code domain.GroupCode, username string) (core.SessionID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for sid, e := range r.conns {
		if e.GroupCode == code && e.Username == username {
			return sid, true
		}
	}
	return "", false
}

// Cancel aborts the connection's pumps via its bound context.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.conns[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
