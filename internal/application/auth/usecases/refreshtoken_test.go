package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

func newRefreshFixture(t *testing.T) (*RefreshTokenUseCase, *MockUserRepository, *MockSessionRepository, *MockTokenCodec) {
	t.Helper()
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	codec := new(MockTokenCodec)
	uc := NewRefreshTokenUseCase(userRepo, sessionRepo, codec, logger.NewLogger())
	return uc, userRepo, sessionRepo, codec
}

func refreshClaims(userID uint) *auth.Claims {
	return &auth.Claims{UserID: userID, Username: "alice", TokenType: auth.TokenTypeRefresh}
}

func TestRefreshToken_Success(t *testing.T) {
	uc, userRepo, sessionRepo, codec := newRefreshFixture(t)

	account := testUser()
	codec.On("Verify", "refresh-jwt", auth.TokenTypeRefresh).Return(refreshClaims(7), nil)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(account, nil)
	codec.On("IssueAccessToken", account).Return("new-access-jwt", nil)
	codec.On("AccessTTL").Return(2 * time.Hour)

	session := &user.Session{SessionID: "sess-1", UserID: 7, AccessToken: "old-access-jwt"}
	sessionRepo.On("GetByRefreshToken", mock.Anything, "refresh-jwt").Return(session, nil)
	sessionRepo.On("UpdateAccessToken", mock.Anything, "sess-1", "new-access-jwt").Return(nil)

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-jwt"})

	require.NoError(t, err)
	assert.Equal(t, "new-access-jwt", result.AccessToken)
	assert.Equal(t, "refresh-jwt", result.RefreshToken, "refresh token is echoed back, not rotated")
	assert.Equal(t, int64(7200), result.ExpiresIn)
	sessionRepo.AssertExpectations(t)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	uc, userRepo, _, codec := newRefreshFixture(t)

	codec.On("Verify", "access-jwt", auth.TokenTypeRefresh).
		Return(nil, errors.NewTokenWrongTypeError(string(auth.TokenTypeRefresh)))

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "access-jwt"})

	require.Error(t, err)
	assert.Nil(t, result)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeTokenWrongType, authErr.Type)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRefreshToken_AccountDeactivatedSinceIssuance(t *testing.T) {
	uc, userRepo, _, codec := newRefreshFixture(t)

	account := testUser()
	account.IsActive = false
	codec.On("Verify", "refresh-jwt", auth.TokenTypeRefresh).Return(refreshClaims(7), nil)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(account, nil)

	_, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-jwt"})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeAccountDeactivated, authErr.Type)
}

func TestRefreshToken_AccountGone(t *testing.T) {
	uc, userRepo, _, codec := newRefreshFixture(t)

	codec.On("Verify", "refresh-jwt", auth.TokenTypeRefresh).Return(refreshClaims(7), nil)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(nil, nil)

	_, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-jwt"})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
}

func TestRefreshToken_RebindFailureDoesNotFailRefresh(t *testing.T) {
	uc, userRepo, sessionRepo, codec := newRefreshFixture(t)

	account := testUser()
	codec.On("Verify", "refresh-jwt", auth.TokenTypeRefresh).Return(refreshClaims(7), nil)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(account, nil)
	codec.On("IssueAccessToken", account).Return("new-access-jwt", nil)
	codec.On("AccessTTL").Return(2 * time.Hour)
	sessionRepo.On("GetByRefreshToken", mock.Anything, "refresh-jwt").Return(nil, fmt.Errorf("connection refused"))

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-jwt"})

	require.NoError(t, err)
	assert.Equal(t, "new-access-jwt", result.AccessToken)
}

func TestRefreshToken_NoSessionRowIsFine(t *testing.T) {
	uc, userRepo, sessionRepo, codec := newRefreshFixture(t)

	account := testUser()
	codec.On("Verify", "refresh-jwt", auth.TokenTypeRefresh).Return(refreshClaims(7), nil)
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(account, nil)
	codec.On("IssueAccessToken", account).Return("new-access-jwt", nil)
	codec.On("AccessTTL").Return(2 * time.Hour)
	sessionRepo.On("GetByRefreshToken", mock.Anything, "refresh-jwt").Return(nil, nil)

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-jwt"})

	require.NoError(t, err)
	assert.Equal(t, "new-access-jwt", result.AccessToken)
	sessionRepo.AssertNotCalled(t, "UpdateAccessToken", mock.Anything, mock.Anything, mock.Anything)
}
