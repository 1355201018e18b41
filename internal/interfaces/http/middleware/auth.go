package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
	"github.com/lyceum-io/lyceum/internal/shared/constants"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/goroutine"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
	"github.com/lyceum-io/lyceum/internal/shared/utils"
)

const touchTimeout = 5 * time.Second

// TokenVerifier is the codec surface the gate needs.
type TokenVerifier interface {
	Verify(tokenString string, expected auth.TokenType) (*auth.Claims, error)
}

// AuthMiddleware gates protected routes. A request passes only when it
// carries a valid access token AND that token's session row is still active.
// Token checks alone are not enough: a stateless token outlives logout, the
// session row is what makes revocation real.
type AuthMiddleware struct {
	codec         TokenVerifier
	sessionRepo   user.SessionRepository
	touchThrottle time.Duration
	logger        logger.Interface
}

func NewAuthMiddleware(
	codec TokenVerifier,
	sessionRepo user.SessionRepository,
	touchThrottle time.Duration,
	log logger.Interface,
) *AuthMiddleware {
	return &AuthMiddleware{
		codec:         codec,
		sessionRepo:   sessionRepo,
		touchThrottle: touchThrottle,
		logger:        log.Named("middleware.auth"),
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.codec.Verify(token, auth.TokenTypeAccess)
		if err != nil {
			m.rejectWith(c, err)
			return
		}

		session, err := m.sessionRepo.GetByAccessToken(c.Request.Context(), token)
		if err != nil {
			// Revocation cannot be checked, so the request does not pass.
			m.logger.Errorw("session lookup failed, failing closed", "error", err)
			m.rejectWith(c, errors.NewStoreUnavailableError("session lookup failed"))
			return
		}
		if session == nil {
			m.rejectWith(c, errors.NewSessionNotFoundError())
			return
		}
		if !session.Session.IsActive {
			m.rejectWith(c, errors.NewSessionRevokedError())
			return
		}
		if !session.User.IsActive {
			m.rejectWith(c, errors.NewAccountDeactivatedError())
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeySessionID, session.Session.SessionID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Set(constants.ContextKeyUserName, claims.Name)

		m.touchInBackground(session.Session.SessionID)

		c.Next()
	}
}

// extractToken prefers the bearer header and falls back to the auth cookie,
// so API clients and browsers share one gate.
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return utils.GetTokenFromCookie(c, utils.AccessTokenCookie)
}

func (m *AuthMiddleware) rejectWith(c *gin.Context, err error) {
	if errors.ShouldLogAuthError(err) {
		m.logger.Warnw("request rejected at auth gate",
			"error", err,
			"path", c.Request.URL.Path,
			"security_event", errors.IsSecurityEvent(err),
		)
	}
	utils.AppErrorResponse(c, err)
	c.Abort()
}

// touchInBackground refreshes the session's last-activity stamp off the
// request path. The request has already passed; telemetry must never slow
// it down or fail it.
func (m *AuthMiddleware) touchInBackground(sessionID string) {
	goroutine.SafeGo(m.logger, "session-touch", func() {
		ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
		defer cancel()

		if err := m.sessionRepo.TouchActivity(ctx, sessionID, m.touchThrottle); err != nil {
			m.logger.Warnw("failed to update session activity",
				"session_id", sessionID,
				"error", err,
			)
		}
	})
}
