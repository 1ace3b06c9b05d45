package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// Dispatcher fans events out to a group's room. Delivery is
// best-effort, at-most-once per connection: TrySend never blocks, so a
// broadcast issued under the group lock keeps per-group ordering
// without holding the lock on network I/O.
type Dispatcher struct {
	Registry *Registry
}

func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{Registry: reg}
}

// Broadcast delivers v to every connection in the group's room.
func (d *Dispatcher) Broadcast(code domain.GroupCode, v any) {
	frame, ok := d.marshal(v)
	if !ok {
		return
	}
	sent, dropped := 0, 0
	for _, snap := range d.Registry.MembersOfRoom(code) {
		if err := snap.Conn.TrySend(frame); err != nil {
			dropped++
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.dispatch").Str("group", string(code)).Int("sent", sent).Int("dropped", dropped).Msg("broadcast")
}

// BroadcastExcept delivers v to everyone in the room but from.
func (d *Dispatcher) BroadcastExcept(code domain.GroupCode, from core.SessionID, v any) {
	frame, ok := d.marshal(v)
	if !ok {
		return
	}
	for _, snap := range d.Registry.MembersOfRoom(code) {
		if snap.SID == from {
			continue
		}
		if err := snap.Conn.TrySend(frame); err != nil {
			log.Warn().Str("module", "app.dispatch").Str("sid", string(snap.SID)).Err(err).Msg("dropped frame")
		}
	}
}

// SendTo delivers v to a single connection.
func (d *Dispatcher) SendTo(conn core.SignalConnection, v any) {
	frame, ok := d.marshal(v)
	if !ok {
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Str("module", "app.dispatch").Err(err).Msg("send failed")
	}
}

func (d *Dispatcher) marshal(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.dispatch").Msg("marshal event")
		return nil, false
	}
	return core.Frame(b), true
}
