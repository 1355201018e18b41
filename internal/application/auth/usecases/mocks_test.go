package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, account *user.User) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of user.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of user.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *user.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*user.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *MockSessionRepository) GetByAccessToken(ctx context.Context, accessToken string) (*user.SessionWithUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.SessionWithUser), args.Error(1)
}

func (m *MockSessionRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*user.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *MockSessionRepository) ListActive(ctx context.Context, userID uint) ([]*user.SessionSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.SessionSummary), args.Error(1)
}

func (m *MockSessionRepository) UpdateAccessToken(ctx context.Context, sessionID, accessToken string) error {
	args := m.Called(ctx, sessionID, accessToken)
	return args.Error(0)
}

func (m *MockSessionRepository) TouchActivity(ctx context.Context, sessionID string, throttleWindow time.Duration) error {
	args := m.Called(ctx, sessionID, throttleWindow)
	return args.Error(0)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, sessionID string, requireUserID uint) (bool, error) {
	args := m.Called(ctx, sessionID, requireUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) RevokeAllExcept(ctx context.Context, userID uint, keepSessionID string) (int64, error) {
	args := m.Called(ctx, userID, keepSessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) RevokeAll(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) SweepInactive(ctx context.Context, inactivityThreshold time.Duration) (int64, error) {
	args := m.Called(ctx, inactivityThreshold)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenCodec is a mock implementation of TokenCodec
type MockTokenCodec struct {
	mock.Mock
}

func (m *MockTokenCodec) IssueAccessToken(u *user.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockTokenCodec) IssueRefreshToken(u *user.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockTokenCodec) Verify(tokenString string, expected auth.TokenType) (*auth.Claims, error) {
	args := m.Called(tokenString, expected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockTokenCodec) AccessTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockTokenCodec) RefreshTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
