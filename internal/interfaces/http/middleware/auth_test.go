package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
	"github.com/lyceum-io/lyceum/internal/shared/constants"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(tokenString string, expected auth.TokenType) (*auth.Claims, error) {
	args := m.Called(tokenString, expected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *user.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*user.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *mockSessionRepo) GetByAccessToken(ctx context.Context, accessToken string) (*user.SessionWithUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.SessionWithUser), args.Error(1)
}

func (m *mockSessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (*user.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *mockSessionRepo) ListActive(ctx context.Context, userID uint) ([]*user.SessionSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.SessionSummary), args.Error(1)
}

func (m *mockSessionRepo) UpdateAccessToken(ctx context.Context, sessionID, accessToken string) error {
	args := m.Called(ctx, sessionID, accessToken)
	return args.Error(0)
}

func (m *mockSessionRepo) TouchActivity(ctx context.Context, sessionID string, throttleWindow time.Duration) error {
	args := m.Called(ctx, sessionID, throttleWindow)
	return args.Error(0)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, sessionID string, requireUserID uint) (bool, error) {
	args := m.Called(ctx, sessionID, requireUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepo) RevokeAllExcept(ctx context.Context, userID uint, keepSessionID string) (int64, error) {
	args := m.Called(ctx, userID, keepSessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) RevokeAll(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) SweepInactive(ctx context.Context, inactivityThreshold time.Duration) (int64, error) {
	args := m.Called(ctx, inactivityThreshold)
	return args.Get(0).(int64), args.Error(1)
}

func accessClaims() *auth.Claims {
	return &auth.Claims{
		UserID:    7,
		Username:  "alice",
		Email:     "alice@example.edu",
		Role:      user.RoleStaff,
		TokenType: auth.TokenTypeAccess,
	}
}

func activeSessionWithUser() *user.SessionWithUser {
	return &user.SessionWithUser{
		Session: &user.Session{
			SessionID:   "sess-1",
			UserID:      7,
			AccessToken: "good-token",
			IsActive:    true,
		},
		User: user.UserProjection{
			ID:       7,
			FullName: "Alice Reyes",
			Email:    "alice@example.edu",
			Role:     user.RoleStaff,
			IsActive: true,
		},
	}
}

func gateFixture(t *testing.T) (*gin.Engine, *mockVerifier, *mockSessionRepo) {
	t.Helper()
	verifier := new(mockVerifier)
	sessionRepo := new(mockSessionRepo)
	mw := NewAuthMiddleware(verifier, sessionRepo, 5*time.Minute, logger.NewLogger())

	engine := gin.New()
	engine.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetUint(constants.ContextKeyUserID),
			"session_id": c.GetString(constants.ContextKeySessionID),
		})
	})
	return engine, verifier, sessionRepo
}

func doRequest(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_PassesWithActiveSession(t *testing.T) {
	engine, verifier, sessionRepo := gateFixture(t)

	verifier.On("Verify", "good-token", auth.TokenTypeAccess).Return(accessClaims(), nil)
	sessionRepo.On("GetByAccessToken", mock.Anything, "good-token").Return(activeSessionWithUser(), nil)
	touched := make(chan struct{})
	sessionRepo.On("TouchActivity", mock.Anything, "sess-1", 5*time.Minute).
		Run(func(args mock.Arguments) { close(touched) }).
		Return(nil)

	w := doRequest(engine, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session_id":"sess-1"`)

	select {
	case <-touched:
	case <-time.After(2 * time.Second):
		t.Fatal("activity touch was never fired")
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	engine, _, _ := gateFixture(t)

	w := doRequest(engine, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	engine, _, _ := gateFixture(t)

	w := doRequest(engine, "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	engine, verifier, sessionRepo := gateFixture(t)

	verifier.On("Verify", "stale-token", auth.TokenTypeAccess).
		Return(nil, errors.NewTokenExpiredError(string(auth.TokenTypeAccess)))

	w := doRequest(engine, "Bearer stale-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(errors.ErrorTypeTokenExpired))
	sessionRepo.AssertNotCalled(t, "GetByAccessToken", mock.Anything, mock.Anything)
}

func TestRequireAuth_RevokedSession(t *testing.T) {
	engine, verifier, sessionRepo := gateFixture(t)

	revoked := activeSessionWithUser()
	revoked.Session.IsActive = false
	verifier.On("Verify", "good-token", auth.TokenTypeAccess).Return(accessClaims(), nil)
	sessionRepo.On("GetByAccessToken", mock.Anything, "good-token").Return(revoked, nil)

	w := doRequest(engine, "Bearer good-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(errors.ErrorTypeSessionRevoked))
	sessionRepo.AssertNotCalled(t, "TouchActivity", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequireAuth_NoBackingSession(t *testing.T) {
	engine, verifier, sessionRepo := gateFixture(t)

	verifier.On("Verify", "good-token", auth.TokenTypeAccess).Return(accessClaims(), nil)
	sessionRepo.On("GetByAccessToken", mock.Anything, "good-token").Return(nil, nil)

	w := doRequest(engine, "Bearer good-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(errors.ErrorTypeSessionNotFound))
}

func TestRequireAuth_StoreDownFailsClosed(t *testing.T) {
	engine, verifier, sessionRepo := gateFixture(t)

	verifier.On("Verify", "good-token", auth.TokenTypeAccess).Return(accessClaims(), nil)
	sessionRepo.On("GetByAccessToken", mock.Anything, "good-token").
		Return(nil, fmt.Errorf("connection refused"))

	w := doRequest(engine, "Bearer good-token")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequireAuth_DeactivatedOwner(t *testing.T) {
	engine, verifier, sessionRepo := gateFixture(t)

	s := activeSessionWithUser()
	s.User.IsActive = false
	verifier.On("Verify", "good-token", auth.TokenTypeAccess).Return(accessClaims(), nil)
	sessionRepo.On("GetByAccessToken", mock.Anything, "good-token").Return(s, nil)

	w := doRequest(engine, "Bearer good-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	engine, verifier, sessionRepo := gateFixture(t)

	verifier.On("Verify", "cookie-token", auth.TokenTypeAccess).Return(accessClaims(), nil)
	sessionRepo.On("GetByAccessToken", mock.Anything, "cookie-token").Return(activeSessionWithUser(), nil)
	sessionRepo.On("TouchActivity", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
