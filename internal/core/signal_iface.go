package core

// Frame is a marshaled event ready for the wire.
type Frame []byte

// SessionID identifies one live connection.
type SessionID string

// SignalConnection abstracts the messaging transport of one member.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
