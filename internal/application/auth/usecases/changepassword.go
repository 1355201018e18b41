package usecases

import (
	"context"
	"fmt"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type ChangePasswordUseCase struct {
	userRepo  user.Repository
	hasher    user.PasswordHasher
	minLength int
	logger    logger.Interface
}

func NewChangePasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	minLength int,
	log logger.Interface,
) *ChangePasswordUseCase {
	if minLength <= 0 {
		minLength = 8
	}
	return &ChangePasswordUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		minLength: minLength,
		logger:    log.Named("usecase.changepassword"),
	}
}

// Execute rehashes and persists a new password after validating the request.
// Existing sessions survive a password change; forcing re-login is a
// separate, explicit revoke-others call.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if cmd.NewPassword != cmd.ConfirmPassword {
		return errors.NewValidationError("new password and confirmation do not match")
	}
	if len(cmd.NewPassword) < uc.minLength {
		return errors.NewValidationError(fmt.Sprintf("new password must be at least %d characters long", uc.minLength))
	}
	if cmd.NewPassword == cmd.CurrentPassword {
		return errors.NewValidationError("new password must be different from the current password")
	}

	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return errors.NewStoreUnavailableError("account lookup failed")
	}
	if account == nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := uc.hasher.Verify(cmd.CurrentPassword, account.PasswordHash); err != nil {
		return errors.NewInvalidCredentialsError()
	}

	newHash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := uc.userRepo.UpdatePasswordHash(ctx, cmd.UserID, newHash); err != nil {
		uc.logger.Errorw("failed to persist new password", "user_id", cmd.UserID, "error", err)
		return fmt.Errorf("failed to save new password: %w", err)
	}

	uc.logger.Infow("password changed", "user_id", cmd.UserID)
	return nil
}
