package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

func newChangePasswordFixture(t *testing.T) (*ChangePasswordUseCase, *MockUserRepository, *MockPasswordHasher) {
	t.Helper()
	userRepo := new(MockUserRepository)
	hasher := new(MockPasswordHasher)
	uc := NewChangePasswordUseCase(userRepo, hasher, 8, logger.NewLogger())
	return uc, userRepo, hasher
}

func TestChangePassword_Success(t *testing.T) {
	uc, userRepo, hasher := newChangePasswordFixture(t)

	account := testUser()
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(account, nil)
	hasher.On("Verify", "old-password", "stored-hash").Return(nil)
	hasher.On("Hash", "new-password-1").Return("new-hash", nil)
	userRepo.On("UpdatePasswordHash", mock.Anything, uint(7), "new-hash").Return(nil)

	err := uc.Execute(context.Background(), ChangePasswordCommand{
		UserID:          7,
		CurrentPassword: "old-password",
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-1",
	})

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestChangePassword_ConfirmationMismatch(t *testing.T) {
	uc, userRepo, _ := newChangePasswordFixture(t)

	err := uc.Execute(context.Background(), ChangePasswordCommand{
		UserID:          7,
		CurrentPassword: "old-password",
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-2",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestChangePassword_TooShort(t *testing.T) {
	uc, _, _ := newChangePasswordFixture(t)

	err := uc.Execute(context.Background(), ChangePasswordCommand{
		UserID:          7,
		CurrentPassword: "old-password",
		NewPassword:     "short",
		ConfirmPassword: "short",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestChangePassword_SameAsCurrent(t *testing.T) {
	uc, _, _ := newChangePasswordFixture(t)

	err := uc.Execute(context.Background(), ChangePasswordCommand{
		UserID:          7,
		CurrentPassword: "same-password",
		NewPassword:     "same-password",
		ConfirmPassword: "same-password",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	uc, userRepo, hasher := newChangePasswordFixture(t)

	account := testUser()
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(account, nil)
	hasher.On("Verify", "wrong-password", "stored-hash").Return(fmt.Errorf("mismatch"))

	err := uc.Execute(context.Background(), ChangePasswordCommand{
		UserID:          7,
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-1",
	})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeInvalidCredentials, authErr.Type)
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
}
