package dto

import (
	"time"

	"github.com/sportsmatch/notification-service/internal/model"
)

// NotificationResponse is the wire shape of one notification. The type
// tag is always present; the actor field and the lobby fields depend on
// the variant (fromUserId for friend requests, playerId/lobbyId/lobbyName
// for lobby joins).
type NotificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FromUserID string    `json:"fromUserId,omitempty"`
	PlayerID   string    `json:"playerId,omitempty"`
	LobbyID    string    `json:"lobbyId,omitempty"`
	LobbyName  string    `json:"lobbyName,omitempty"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToNotificationResponse(n model.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Kind),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}

	switch n.Kind {
	case model.KindLobbyJoin:
		resp.PlayerID = n.SourceUserID
		resp.LobbyID = n.LobbyID
		resp.LobbyName = n.LobbyName
	default:
		resp.FromUserID = n.SourceUserID
	}

	return resp
}

func ToNotificationResponses(notifications []model.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, ToNotificationResponse(n))
	}
	return responses
}

type NotificationsListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	// Total is the count actually returned (bounded by the list limit);
	// UnreadCount is the true unread total and may exceed it.
	Total       int   `json:"total"`
	UnreadCount int64 `json:"unreadCount"`
}

type MarkReadResponse struct {
	Message        string `json:"message"`
	NotificationID string `json:"notificationId"`
	IsRead         bool   `json:"isRead"`
}

type HealthResponse struct {
	Status       string    `json:"status"`
	Service      string    `json:"service"`
	QueueHealthy bool      `json:"queueHealthy"`
	StoreHealthy bool      `json:"storeHealthy"`
	Timestamp    time.Time `json:"timestamp"`
}
