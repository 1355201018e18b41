package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lyceum-io/lyceum/internal/application/auth/usecases"
	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/config"
	"github.com/lyceum-io/lyceum/internal/shared/constants"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
	"github.com/lyceum-io/lyceum/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase          loginUseCase
	refreshTokenUseCase   refreshTokenUseCase
	logoutUseCase         logoutUseCase
	changePasswordUseCase changePasswordUseCase
	userRepo              user.Repository
	logger                logger.Interface
	cookieConfig          config.CookieConfig
	jwtConfig             config.JWTConfig
}

func NewAuthHandler(
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	logoutUC logoutUseCase,
	changePasswordUC changePasswordUseCase,
	userRepo user.Repository,
	logger logger.Interface,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:          loginUC,
		refreshTokenUseCase:   refreshTokenUC,
		logoutUseCase:         logoutUC,
		changePasswordUseCase: changePasswordUC,
		userRepo:              userRepo,
		logger:                logger,
		cookieConfig:          cookieConfig,
		jwtConfig:             jwtConfig,
	}
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName(),
		Role:     string(u.Role),
	}
}

// Login authenticates with username or email plus password and mints a
// token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.LoginCommand{
		Identifier: req.Identifier,
		Password:   req.Password,
		UserAgent:  c.GetHeader(constants.HeaderUserAgent),
		IPAddress:  c.ClientIP(),
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Errorw("login failed", "error", err, "identifier", req.Identifier)
		}
		utils.AppErrorResponse(c, err)
		return
	}

	accessMaxAge := h.jwtConfig.AccessExpHours * 60 * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60
	utils.SetAuthCookies(c, h.cookieConfig, result.AccessToken, result.RefreshToken, accessMaxAge, refreshMaxAge)

	data := gin.H{
		"user":          toUserResponse(result.User),
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	}
	if result.Session != nil {
		data["session"] = result.Session
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", data)
}

// RefreshToken exchanges a valid refresh token for a new access token. The
// refresh token itself is echoed back unchanged.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)
	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "refresh token is required")
			return
		}
		refreshToken = req.RefreshToken
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: refreshToken,
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("token refresh failed", "error", err)
		}
		utils.AppErrorResponse(c, err)
		return
	}

	accessMaxAge := h.jwtConfig.AccessExpHours * 60 * 60
	utils.SetAccessTokenCookie(c, h.cookieConfig, result.AccessToken, accessMaxAge)

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

// Logout revokes the calling device's session and clears auth cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)
	sessionID := c.GetString(constants.ContextKeySessionID)

	err := h.logoutUseCase.Execute(c.Request.Context(), usecases.LogoutCommand{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		h.logger.Errorw("logout failed", "error", err, "session_id", sessionID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to logout")
		return
	}

	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

// ChangePassword updates the caller's password after verifying the current
// one. Existing sessions are left alone.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := c.GetUint(constants.ContextKeyUserID)

	err := h.changePasswordUseCase.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed", nil)
}

// Me returns the authenticated account's current profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)

	account, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to load profile", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if account == nil {
		utils.AppErrorResponse(c, errors.NewNotFoundError("user not found"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"user":       toUserResponse(account),
		"session_id": c.GetString(constants.ContextKeySessionID),
	})
}
