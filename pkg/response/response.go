package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportsmatch/notification-service/pkg/apperror"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (string, error) {
	userID := c.GetString("user_id")
	if userID == "" {
		return "", apperror.ErrUnauthorized
	}
	return userID, nil
}

// ResponseError writes a standardized `{"detail": ...}` error body.
// Internal faults are logged with context and surfaced as a generic 500.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		slog.Error("internal error", "path", c.FullPath(), "error", err)
		c.JSON(code, gin.H{"detail": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"detail": err.Error()})
}
