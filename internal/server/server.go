package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sportsmatch/notification-service/internal/config"
	"github.com/sportsmatch/notification-service/internal/middleware"
	notifHttp "github.com/sportsmatch/notification-service/internal/modules/notification/delivery/http"
	notifService "github.com/sportsmatch/notification-service/internal/modules/notification/service"
)

type Server struct {
	engine *gin.Engine
}

func NewServer(cfg *config.Config, service notifService.NotificationService, broker notifHttp.BrokerHealth) *Server {
	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	handler := notifHttp.NewNotificationHandler(service, broker, cfg.ServiceName, cfg.HealthCheckTimeout)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	// Public routes (no auth required)
	router.GET("/health", handler.Health)

	// Protected routes
	notifications := router.Group("/notifications")
	notifications.Use(authMiddleware.RequireAuth())
	{
		notifications.GET("/me", handler.GetMyNotifications)
		notifications.PATCH("/:id/read", handler.MarkAsRead)
	}

	return &Server{engine: router}
}

// Handler exposes the engine so main can own the http.Server lifecycle
// (graceful shutdown needs http.Server.Shutdown, not gin's Run).
func (s *Server) Handler() http.Handler {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
