package event

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeFriendRequestSent(t *testing.T) {
	body := []byte(`{
		"type": "friend.request.sent",
		"fromUserId": "user-a",
		"toUserId": "user-b",
		"createdAt": "2026-01-22T15:00:00Z"
	}`)

	ev, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fr, ok := ev.(FriendRequestSent)
	if !ok {
		t.Fatalf("expected FriendRequestSent, got %T", ev)
	}
	if fr.FromUserID != "user-a" {
		t.Errorf("FromUserID = %q, want %q", fr.FromUserID, "user-a")
	}
	if fr.ToUserID != "user-b" {
		t.Errorf("ToUserID = %q, want %q", fr.ToUserID, "user-b")
	}
	want := time.Date(2026, 1, 22, 15, 0, 0, 0, time.UTC)
	if !fr.OccurredAt.Equal(want) {
		t.Errorf("OccurredAt = %v, want %v", fr.OccurredAt, want)
	}
}

func TestDecodeLobbyUserJoined(t *testing.T) {
	body := []byte(`{
		"type": "lobby.user.joined",
		"lobbyId": "lobby-1",
		"ownerId": "owner-1",
		"playerId": "player-1",
		"lobbyName": "Football @ Central Park",
		"createdAt": "2026-01-22T15:02:00Z"
	}`)

	ev, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lj, ok := ev.(LobbyUserJoined)
	if !ok {
		t.Fatalf("expected LobbyUserJoined, got %T", ev)
	}
	if lj.LobbyID != "lobby-1" || lj.OwnerID != "owner-1" || lj.PlayerID != "player-1" {
		t.Errorf("unexpected ids: %+v", lj)
	}
	if lj.LobbyName != "Football @ Central Park" {
		t.Errorf("LobbyName = %q", lj.LobbyName)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "not json",
			body:    `not json at all`,
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "unknown type tag",
			body:    `{"type": "match.finished"}`,
			wantErr: ErrUnknownEventType,
		},
		{
			name:    "missing type tag",
			body:    `{"fromUserId": "a", "toUserId": "b"}`,
			wantErr: ErrUnknownEventType,
		},
		{
			name:    "friend request missing toUserId",
			body:    `{"type": "friend.request.sent", "fromUserId": "a", "createdAt": "2026-01-22T15:00:00Z"}`,
			wantErr: ErrInvalidEventSchema,
		},
		{
			name:    "friend request empty fromUserId",
			body:    `{"type": "friend.request.sent", "fromUserId": "", "toUserId": "b", "createdAt": "2026-01-22T15:00:00Z"}`,
			wantErr: ErrInvalidEventSchema,
		},
		{
			name:    "friend request bad timestamp",
			body:    `{"type": "friend.request.sent", "fromUserId": "a", "toUserId": "b", "createdAt": "yesterday"}`,
			wantErr: ErrInvalidEventSchema,
		},
		{
			name:    "lobby join missing lobbyName",
			body:    `{"type": "lobby.user.joined", "lobbyId": "l", "ownerId": "o", "playerId": "p", "createdAt": "2026-01-22T15:00:00Z"}`,
			wantErr: ErrInvalidEventSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode([]byte(tt.body))
			if ev != nil {
				t.Errorf("expected nil event, got %+v", ev)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
