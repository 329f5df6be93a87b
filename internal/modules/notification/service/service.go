package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sportsmatch/notification-service/internal/model"
	"github.com/sportsmatch/notification-service/internal/modules/event"
	notifRepo "github.com/sportsmatch/notification-service/internal/modules/notification/repository"
	"github.com/sportsmatch/notification-service/pkg/apperror"
)

// ListLimit caps the number of notifications a single list call returns.
const ListLimit = 50

// unreadCountTTL bounds staleness of the cached unread counter; the
// cache is also invalidated on every write.
const unreadCountTTL = time.Minute

const msgFriendRequest = "You have a new friend request"

type NotificationService interface {
	// CreateFromEvent persists exactly one notification for a validated
	// event. No deduplication is performed against prior events;
	// at-least-once delivery can produce duplicates when an insert
	// succeeds but the ack is lost.
	CreateFromEvent(ctx context.Context, ev event.Event) error
	// ListUnread returns up to ListLimit unread notifications for the
	// user, newest first, plus the true unread total.
	ListUnread(ctx context.Context, userID string) ([]model.Notification, int64, error)
	// MarkRead flips a notification to read. Only the recipient may do
	// so; marking an already-read notification succeeds without change.
	MarkRead(ctx context.Context, userID string, id uuid.UUID) error
	Healthcheck(ctx context.Context) bool
}

// countCache holds the per-user unread counter. Implementations must
// return an error on miss so callers fall back to the store.
type countCache interface {
	Get(ctx context.Context, key string) (int64, error)
	Set(ctx context.Context, key string, count int64, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisCountCache struct {
	client *redis.Client
}

func (c redisCountCache) Get(ctx context.Context, key string) (int64, error) {
	return c.client.Get(ctx, key).Int64()
}

func (c redisCountCache) Set(ctx context.Context, key string, count int64, ttl time.Duration) error {
	return c.client.Set(ctx, key, count, ttl).Err()
}

func (c redisCountCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

type notificationService struct {
	repo  notifRepo.NotificationRepository
	cache countCache
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	var cache countCache
	if redisClient != nil {
		cache = redisCountCache{client: redisClient}
	}
	return &notificationService{
		repo:  repo,
		cache: cache,
	}
}

func (s *notificationService) CreateFromEvent(ctx context.Context, ev event.Event) error {
	var notification model.Notification

	switch e := ev.(type) {
	case event.FriendRequestSent:
		notification = model.Notification{
			UserID:       e.ToUserID,
			Kind:         model.KindFriendRequest,
			SourceUserID: e.FromUserID,
			Message:      msgFriendRequest,
			CreatedAt:    e.OccurredAt,
		}
	case event.LobbyUserJoined:
		notification = model.Notification{
			UserID:       e.OwnerID,
			Kind:         model.KindLobbyJoin,
			SourceUserID: e.PlayerID,
			LobbyID:      e.LobbyID,
			LobbyName:    e.LobbyName,
			Message:      fmt.Sprintf("A player joined your lobby: %s", e.LobbyName),
			CreatedAt:    e.OccurredAt,
		}
	default:
		return fmt.Errorf("no notification mapping for event type %q", ev.EventType())
	}

	if err := s.repo.Create(ctx, &notification); err != nil {
		return err
	}

	slog.Info("notification created",
		"notification_id", notification.ID,
		"type", notification.Kind,
		"user_id", notification.UserID,
		"source_user_id", notification.SourceUserID,
	)

	s.invalidateUnreadCount(ctx, notification.UserID)
	return nil
}

func (s *notificationService) ListUnread(ctx context.Context, userID string) ([]model.Notification, int64, error) {
	notifications, err := s.repo.FindUnread(ctx, userID, ListLimit)
	if err != nil {
		return nil, 0, err
	}

	unreadCount, err := s.unreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return notifications, unreadCount, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Ownership is strict: no delegation, no admin override.
	if notification.UserID != userID {
		return apperror.ErrForbidden
	}

	modified, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !modified {
		slog.Warn("notification was already read", "notification_id", id)
		return nil
	}

	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) Healthcheck(ctx context.Context) bool {
	return s.repo.Healthcheck(ctx)
}

// unreadCount serves the counter from the cache when one is configured,
// falling back to the store on miss or when the cache is absent.
func (s *notificationService) unreadCount(ctx context.Context, userID string) (int64, error) {
	key := unreadCountKey(userID)

	if s.cache != nil {
		if count, err := s.cache.Get(ctx, key); err == nil {
			return count, nil
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, count, unreadCountTTL); err != nil {
			slog.Warn("failed to cache unread count", "user_id", userID, "error", err)
		}
	}

	return count, nil
}

func (s *notificationService) invalidateUnreadCount(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, unreadCountKey(userID)); err != nil {
		slog.Warn("failed to invalidate unread count", "user_id", userID, "error", err)
	}
}

func unreadCountKey(userID string) string {
	return fmt.Sprintf("notifications:unread_count:%s", userID)
}
