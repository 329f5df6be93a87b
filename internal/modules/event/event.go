// Package event validates and type-discriminates raw queue payloads into
// typed event records. Decoding is a pure transform; acknowledgment
// decisions stay with the consumer.
package event

import (
	"errors"
	"time"
)

type Type string

const (
	TypeFriendRequestSent Type = "friend.request.sent"
	TypeLobbyUserJoined   Type = "lobby.user.joined"
)

var (
	// ErrMalformedPayload means the message body is not parseable JSON.
	ErrMalformedPayload = errors.New("malformed event payload")
	// ErrUnknownEventType means the type tag matches no known event.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrInvalidEventSchema means a required field is missing, empty, or
	// the timestamp is not a valid instant.
	ErrInvalidEventSchema = errors.New("invalid event schema")
)

// Event is one validated inbound domain event.
type Event interface {
	EventType() Type
}

type FriendRequestSent struct {
	FromUserID string
	ToUserID   string
	OccurredAt time.Time
}

func (FriendRequestSent) EventType() Type { return TypeFriendRequestSent }

type LobbyUserJoined struct {
	LobbyID    string
	OwnerID    string
	PlayerID   string
	LobbyName  string
	OccurredAt time.Time
}

func (LobbyUserJoined) EventType() Type { return TypeLobbyUserJoined }
