package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type envelope struct {
	Type string `json:"type"`
}

type friendRequestPayload struct {
	FromUserID string `json:"fromUserId" validate:"required"`
	ToUserID   string `json:"toUserId" validate:"required"`
	CreatedAt  string `json:"createdAt" validate:"required"`
}

type lobbyJoinPayload struct {
	LobbyID   string `json:"lobbyId" validate:"required"`
	OwnerID   string `json:"ownerId" validate:"required"`
	PlayerID  string `json:"playerId" validate:"required"`
	LobbyName string `json:"lobbyName" validate:"required"`
	CreatedAt string `json:"createdAt" validate:"required"`
}

// Decode parses a raw message body into a typed event. It discriminates
// on the "type" tag and validates the fields the variant requires.
func Decode(body []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch Type(env.Type) {
	case TypeFriendRequestSent:
		var p friendRequestPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEventSchema, err)
		}
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEventSchema, err)
		}
		occurredAt, err := parseInstant(p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEventSchema, err)
		}
		return FriendRequestSent{
			FromUserID: p.FromUserID,
			ToUserID:   p.ToUserID,
			OccurredAt: occurredAt,
		}, nil

	case TypeLobbyUserJoined:
		var p lobbyJoinPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEventSchema, err)
		}
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEventSchema, err)
		}
		occurredAt, err := parseInstant(p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEventSchema, err)
		}
		return LobbyUserJoined{
			LobbyID:    p.LobbyID,
			OwnerID:    p.OwnerID,
			PlayerID:   p.PlayerID,
			LobbyName:  p.LobbyName,
			OccurredAt: occurredAt,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, env.Type)
	}
}

func parseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
