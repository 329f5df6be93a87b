package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sportsmatch/notification-service/internal/model"
	"github.com/sportsmatch/notification-service/pkg/apperror"
	"github.com/sportsmatch/notification-service/pkg/database"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindUnread(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
	Healthcheck(ctx context.Context) bool
}

type notificationRepository struct {
	db          *gorm.DB
	pingTimeout time.Duration
}

func NewNotificationRepository(db *gorm.DB, pingTimeout time.Duration) NotificationRepository {
	return &notificationRepository{db: db, pingTimeout: pingTimeout}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindUnread(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkRead flips is_read to true and reports whether a transition
// happened. Marking an already-read notification is a no-op, not an
// error.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepository) Healthcheck(ctx context.Context) bool {
	return database.Ping(ctx, r.db, r.pingTimeout)
}
