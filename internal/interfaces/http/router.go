// Package http wires the HTTP surface: handlers, middleware and routes.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lyceum-io/lyceum/internal/application/auth/helpers"
	"github.com/lyceum-io/lyceum/internal/application/auth/usecases"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
	"github.com/lyceum-io/lyceum/internal/infrastructure/config"
	"github.com/lyceum-io/lyceum/internal/infrastructure/repository"
	"github.com/lyceum-io/lyceum/internal/interfaces/http/handlers"
	"github.com/lyceum-io/lyceum/internal/interfaces/http/middleware"
	"github.com/lyceum-io/lyceum/internal/interfaces/http/routes"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
	"github.com/lyceum-io/lyceum/internal/shared/utils"
)

// Router owns the Gin engine and the wired HTTP dependencies.
type Router struct {
	engine         *gin.Engine
	authHandler    *handlers.AuthHandler
	sessionHandler *handlers.SessionHandler
	authMiddleware *middleware.AuthMiddleware
	allowedOrigins []string
	logger         logger.Interface
}

// NewRouter builds the full HTTP dependency graph on top of the given
// database connection.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	codec, err := auth.NewTokenCodec(cfg.Auth.JWT)
	if err != nil {
		return nil, err
	}

	verifier := helpers.NewCredentialVerifier(userRepo, hasher, log)

	loginUC := usecases.NewLoginUseCase(verifier, sessionRepo, codec, log)
	refreshTokenUC := usecases.NewRefreshTokenUseCase(userRepo, sessionRepo, codec, log)
	logoutUC := usecases.NewLogoutUseCase(sessionRepo, log)
	changePasswordUC := usecases.NewChangePasswordUseCase(userRepo, hasher, cfg.Auth.Password.MinLength, log)
	listSessionsUC := usecases.NewListSessionsUseCase(sessionRepo)
	revokeSessionUC := usecases.NewRevokeSessionUseCase(sessionRepo, log)
	revokeOthersUC := usecases.NewRevokeOtherSessionsUseCase(sessionRepo, log)
	revokeAllUC := usecases.NewRevokeAllSessionsUseCase(sessionRepo, log)

	authHandler := handlers.NewAuthHandler(
		loginUC, refreshTokenUC, logoutUC, changePasswordUC,
		userRepo, log, cfg.Auth.Cookie, cfg.Auth.JWT,
	)
	sessionHandler := handlers.NewSessionHandler(
		listSessionsUC, revokeSessionUC, revokeOthersUC, revokeAllUC, log,
	)

	touchThrottle := time.Duration(cfg.Auth.Session.TouchThrottleSeconds) * time.Second
	authMiddleware := middleware.NewAuthMiddleware(codec, sessionRepo, touchThrottle, log)

	return &Router{
		engine:         engine,
		authHandler:    authHandler,
		sessionHandler: sessionHandler,
		authMiddleware: authMiddleware,
		allowedOrigins: cfg.Server.AllowedOrigins,
		logger:         log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "ok", nil)
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupSessionRoutes(r.engine, &routes.SessionRouteConfig{
		SessionHandler: r.sessionHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
