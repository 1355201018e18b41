package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lyceum-io/lyceum/internal/shared/biztime"
	"github.com/lyceum-io/lyceum/internal/shared/useragent"
)

// Session is the server-side record of one authenticated device, layered
// over the stateless tokens. Exactly one row exists per login event.
// IsActive=false is terminal: a revoked session is never reactivated, a new
// login creates a new row.
type Session struct {
	SessionID    string
	UserID       uint
	AccessToken  string
	RefreshToken string
	DeviceType   string
	DeviceInfo   string
	BrowserInfo  string
	Platform     string
	IPAddress    string
	UserAgent    string
	IsActive     bool
	LastActivity time.Time
	LoginTime    time.Time
	LogoutTime   *time.Time
}

// NewSession builds an active session for a fresh login. The session ID is a
// random 128-bit UUID: it travels in URLs and client storage, so it must not
// be guessable from sequence or timestamp.
func NewSession(userID uint, accessToken, refreshToken string, device useragent.DeviceContext) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	now := biztime.NowUTC()
	return &Session{
		SessionID:    uuid.NewString(),
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		DeviceType:   device.DeviceType,
		DeviceInfo:   device.DeviceInfo,
		BrowserInfo:  device.BrowserInfo,
		Platform:     device.Platform,
		IPAddress:    device.IPAddress,
		UserAgent:    device.UserAgent,
		IsActive:     true,
		LastActivity: now,
		LoginTime:    now,
	}, nil
}

// UserProjection is the minimal account view joined onto session lookups for
// the caller's convenience.
type UserProjection struct {
	ID       uint
	FullName string
	Email    string
	Role     Role
	IsActive bool
}

// SessionWithUser pairs a session with its owner's projection.
type SessionWithUser struct {
	Session *Session
	User    UserProjection
}

// SessionSummary is the device/network view exposed when listing sessions.
// Tokens are deliberately absent.
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	DeviceType   string    `json:"device_type"`
	DeviceInfo   string    `json:"device_info"`
	BrowserInfo  string    `json:"browser_info"`
	Platform     string    `json:"platform"`
	IPAddress    string    `json:"ip_address"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
}

// SessionRepository persists per-device session records. Mutations are
// limited to the activity touch, the access-token rebind on refresh, and the
// one-way transition to inactive; rows are never hard-deleted in normal
// operation.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetBySessionID(ctx context.Context, sessionID string) (*Session, error)
	// GetByAccessToken returns the active session matching the presented
	// access token, or nil when no such session exists.
	GetByAccessToken(ctx context.Context, accessToken string) (*SessionWithUser, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*Session, error)
	ListActive(ctx context.Context, userID uint) ([]*SessionSummary, error)
	// UpdateAccessToken rebinds an active session to a newly minted access
	// token after a refresh.
	UpdateAccessToken(ctx context.Context, sessionID, accessToken string) error
	// TouchActivity refreshes last_activity, skipping the write when the row
	// was touched within the throttle window. Best-effort: bounded retries
	// on lock contention, and callers must never fail a request on error.
	TouchActivity(ctx context.Context, sessionID string, throttleWindow time.Duration) error
	// Revoke marks one session inactive. A non-zero requireUserID scopes the
	// update to that owner so one user cannot revoke another's session.
	// Returns whether a row actually changed.
	Revoke(ctx context.Context, sessionID string, requireUserID uint) (bool, error)
	RevokeAllExcept(ctx context.Context, userID uint, keepSessionID string) (int64, error)
	RevokeAll(ctx context.Context, userID uint) (int64, error)
	// SweepInactive revokes sessions whose last activity predates the
	// threshold, returning the number of rows transitioned.
	SweepInactive(ctx context.Context, inactivityThreshold time.Duration) (int64, error)
}
