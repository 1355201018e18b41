package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lyceum-io/lyceum/internal/application/auth/helpers"
	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

const testChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

func testUser() *user.User {
	return &user.User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@example.edu",
		FirstName:    "Alice",
		LastName:     "Reyes",
		PasswordHash: "stored-hash",
		Role:         user.RoleStaff,
		IsActive:     true,
	}
}

func newLoginFixture(t *testing.T) (*LoginUseCase, *MockUserRepository, *MockPasswordHasher, *MockSessionRepository, *MockTokenCodec) {
	t.Helper()
	userRepo := new(MockUserRepository)
	hasher := new(MockPasswordHasher)
	sessionRepo := new(MockSessionRepository)
	codec := new(MockTokenCodec)
	verifier := helpers.NewCredentialVerifier(userRepo, hasher, logger.NewLogger())
	uc := NewLoginUseCase(verifier, sessionRepo, codec, logger.NewLogger())
	return uc, userRepo, hasher, sessionRepo, codec
}

func TestLogin_Success(t *testing.T) {
	uc, userRepo, hasher, sessionRepo, codec := newLoginFixture(t)

	account := testUser()
	userRepo.On("GetByIdentifier", mock.Anything, "alice").Return(account, nil)
	hasher.On("Verify", "secret-pw", "stored-hash").Return(nil)
	codec.On("IssueAccessToken", account).Return("access-jwt", nil)
	codec.On("IssueRefreshToken", account).Return("refresh-jwt", nil)
	codec.On("AccessTTL").Return(2 * time.Hour)
	sessionRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *user.Session) bool {
		return s.UserID == 7 && s.AccessToken == "access-jwt" && s.IsActive
	})).Return(nil)

	result, err := uc.Execute(context.Background(), LoginCommand{
		Identifier: "alice",
		Password:   "secret-pw",
		UserAgent:  testChromeUA,
		IPAddress:  "10.0.0.4",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-jwt", result.AccessToken)
	assert.Equal(t, "refresh-jwt", result.RefreshToken)
	assert.Equal(t, int64(7200), result.ExpiresIn)
	require.NotNil(t, result.Session)
	assert.NotEmpty(t, result.Session.SessionID)
	assert.Equal(t, "desktop", result.Session.DeviceType)
	assert.Equal(t, "10.0.0.4", result.Session.IPAddress)
	sessionRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc, userRepo, hasher, sessionRepo, _ := newLoginFixture(t)

	userRepo.On("GetByIdentifier", mock.Anything, "alice").Return(testUser(), nil)
	hasher.On("Verify", "wrong-pw", "stored-hash").Return(fmt.Errorf("mismatch"))

	result, err := uc.Execute(context.Background(), LoginCommand{Identifier: "alice", Password: "wrong-pw"})

	require.Error(t, err)
	assert.Nil(t, result)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeInvalidCredentials, authErr.Type)
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	uc, userRepo, hasher, _, _ := newLoginFixture(t)

	account := testUser()
	account.IsActive = false
	userRepo.On("GetByIdentifier", mock.Anything, "alice").Return(account, nil)

	_, err := uc.Execute(context.Background(), LoginCommand{Identifier: "alice", Password: "secret-pw"})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeAccountDeactivated, authErr.Type)
	hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestLogin_SessionStoreDownDegradesGracefully(t *testing.T) {
	uc, userRepo, hasher, sessionRepo, codec := newLoginFixture(t)

	account := testUser()
	userRepo.On("GetByIdentifier", mock.Anything, "alice").Return(account, nil)
	hasher.On("Verify", "secret-pw", "stored-hash").Return(nil)
	codec.On("IssueAccessToken", account).Return("access-jwt", nil)
	codec.On("IssueRefreshToken", account).Return("refresh-jwt", nil)
	codec.On("AccessTTL").Return(2 * time.Hour)
	sessionRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("connection refused"))

	result, err := uc.Execute(context.Background(), LoginCommand{
		Identifier: "alice",
		Password:   "secret-pw",
		UserAgent:  testChromeUA,
	})

	require.NoError(t, err)
	assert.Equal(t, "access-jwt", result.AccessToken)
	assert.Nil(t, result.Session)
}

func TestLogin_AccessTokenIssueFailure(t *testing.T) {
	uc, userRepo, hasher, sessionRepo, codec := newLoginFixture(t)

	account := testUser()
	userRepo.On("GetByIdentifier", mock.Anything, "alice").Return(account, nil)
	hasher.On("Verify", "secret-pw", "stored-hash").Return(nil)
	codec.On("IssueAccessToken", account).Return("", fmt.Errorf("signing failed"))

	result, err := uc.Execute(context.Background(), LoginCommand{Identifier: "alice", Password: "secret-pw"})

	require.Error(t, err)
	assert.Nil(t, result)
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
