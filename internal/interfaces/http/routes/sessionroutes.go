package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lyceum-io/lyceum/internal/interfaces/http/handlers"
	"github.com/lyceum-io/lyceum/internal/interfaces/http/middleware"
)

// SessionRouteConfig holds dependencies for session management routes.
type SessionRouteConfig struct {
	SessionHandler *handlers.SessionHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupSessionRoutes configures session visibility and revocation routes.
// Everything here requires an authenticated, unrevoked session.
func SetupSessionRoutes(engine *gin.Engine, cfg *SessionRouteConfig) {
	sessions := engine.Group("/sessions")
	sessions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		sessions.GET("", cfg.SessionHandler.List)
		sessions.DELETE("/others", cfg.SessionHandler.RevokeOthers)
		sessions.DELETE("/all", cfg.SessionHandler.RevokeAll)
		sessions.DELETE("/:session_id", cfg.SessionHandler.Revoke)
	}
}
