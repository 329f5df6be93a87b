package model

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the notification variants. The set is closed but
// extensible; every variant must map to exactly one inbound event type.
type Kind string

const (
	KindFriendRequest Kind = "friend_request"
	KindLobbyJoin     Kind = "lobby_join"
)

type Notification struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:varchar(64);not null;index:idx_notifications_user_created,priority:1;index:idx_notifications_user_read,priority:1" json:"user_id"` // User who receives the notification
	Kind         Kind      `gorm:"column:type;type:varchar(32);not null" json:"type"`
	SourceUserID string    `gorm:"type:varchar(64);not null" json:"source_user_id"` // User who triggered the event
	LobbyID      string    `gorm:"type:varchar(64)" json:"lobby_id,omitempty"`      // lobby_join only
	LobbyName    string    `gorm:"type:varchar(255)" json:"lobby_name,omitempty"`   // lobby_join only
	Message      string    `gorm:"type:text;not null" json:"message"`
	IsRead       bool      `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2" json:"is_read"`
	CreatedAt    time.Time `gorm:"not null;index:idx_notifications_user_created,priority:2,sort:desc" json:"created_at"` // event timestamp, not insert time
}
