package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lyceum-io/lyceum/internal/application/auth/usecases"
	"github.com/lyceum-io/lyceum/internal/shared/constants"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
	"github.com/lyceum-io/lyceum/internal/shared/utils"
)

// SessionHandler exposes per-device session visibility and revocation for
// the authenticated user.
type SessionHandler struct {
	listSessionsUseCase  listSessionsUseCase
	revokeSessionUseCase revokeSessionUseCase
	revokeOthersUseCase  revokeOtherSessionsUseCase
	revokeAllUseCase     revokeAllSessionsUseCase
	logger               logger.Interface
}

func NewSessionHandler(
	listUC listSessionsUseCase,
	revokeUC revokeSessionUseCase,
	revokeOthersUC revokeOtherSessionsUseCase,
	revokeAllUC revokeAllSessionsUseCase,
	logger logger.Interface,
) *SessionHandler {
	return &SessionHandler{
		listSessionsUseCase:  listUC,
		revokeSessionUseCase: revokeUC,
		revokeOthersUseCase:  revokeOthersUC,
		revokeAllUseCase:     revokeAllUC,
		logger:               logger,
	}
}

// List returns the caller's active sessions, most recent activity first.
// The caller's own session is flagged so clients can mark "this device".
func (h *SessionHandler) List(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)
	currentSessionID := c.GetString(constants.ContextKeySessionID)

	summaries, err := h.listSessionsUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to list sessions", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	items := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, gin.H{
			"session_id":    s.SessionID,
			"device_type":   s.DeviceType,
			"device_info":   s.DeviceInfo,
			"browser_info":  s.BrowserInfo,
			"platform":      s.Platform,
			"ip_address":    s.IPAddress,
			"login_time":    s.LoginTime,
			"last_activity": s.LastActivity,
			"current":       s.SessionID == currentSessionID,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"sessions": items,
		"total":    len(items),
	})
}

// Revoke terminates one named session belonging to the caller.
func (h *SessionHandler) Revoke(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "session id is required")
		return
	}

	changed, err := h.revokeSessionUseCase.Execute(c.Request.Context(), usecases.RevokeSessionCommand{
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to revoke session")
		return
	}
	if !changed {
		utils.AppErrorResponse(c, errors.NewNotFoundError("no active session with that id"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "session revoked", nil)
}

// RevokeOthers terminates every session except the calling one.
func (h *SessionHandler) RevokeOthers(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)
	currentSessionID := c.GetString(constants.ContextKeySessionID)

	count, err := h.revokeOthersUseCase.Execute(c.Request.Context(), usecases.RevokeOtherSessionsCommand{
		UserID:        userID,
		KeepSessionID: currentSessionID,
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to revoke sessions")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "other sessions revoked", gin.H{
		"revoked_count": count,
	})
}

// RevokeAll terminates every session including the calling one and clears
// the caller's cookies.
func (h *SessionHandler) RevokeAll(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)

	count, err := h.revokeAllUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to revoke sessions")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "all sessions revoked", gin.H{
		"revoked_count": count,
	})
}
