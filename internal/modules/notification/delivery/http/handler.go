package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sportsmatch/notification-service/internal/modules/notification/dto"
	notifService "github.com/sportsmatch/notification-service/internal/modules/notification/service"
	"github.com/sportsmatch/notification-service/pkg/apperror"
	"github.com/sportsmatch/notification-service/pkg/response"
)

// BrokerHealth reports broker connectivity for the health endpoint. It
// does not verify that consumption is actively progressing.
type BrokerHealth interface {
	Healthy() bool
}

type NotificationHandler struct {
	service       notifService.NotificationService
	broker        BrokerHealth
	serviceName   string
	healthTimeout time.Duration
}

func NewNotificationHandler(service notifService.NotificationService, broker BrokerHealth, serviceName string, healthTimeout time.Duration) *NotificationHandler {
	return &NotificationHandler{
		service:       service,
		broker:        broker,
		serviceName:   serviceName,
		healthTimeout: healthTimeout,
	}
}

// Health never fails hard; it always answers 200 with per-dependency
// booleans and an overall status.
func (h *NotificationHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.healthTimeout)
	defer cancel()

	storeHealthy := h.service.Healthcheck(ctx)
	queueHealthy := h.broker.Healthy()

	status := "ok"
	if !storeHealthy || !queueHealthy {
		status = "degraded"
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:       status,
		Service:      h.serviceName,
		QueueHealthy: queueHealthy,
		StoreHealthy: storeHealthy,
		Timestamp:    time.Now().UTC(),
	})
}

func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	notifications, unreadCount, err := h.service.ListUnread(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	responses := dto.ToNotificationResponses(notifications)
	c.JSON(http.StatusOK, dto.NotificationsListResponse{
		Notifications: responses,
		Total:         len(responses),
		UnreadCount:   unreadCount,
	})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// Validate the identifier before any store access.
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkReadResponse{
		Message:        "Notification marked as read successfully",
		NotificationID: id.String(),
		IsRead:         true,
	})
}
