package helpers

import (
	"context"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

// CredentialVerifier checks an identifier/password pair against the account
// store and returns a normalized outcome. A wrong password is a result, not
// an exceptional condition.
type CredentialVerifier struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewCredentialVerifier(userRepo user.Repository, hasher user.PasswordHasher, log logger.Interface) *CredentialVerifier {
	return &CredentialVerifier{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   log.Named("auth.credentials"),
	}
}

// Authenticate resolves the identifier as username or email, exactly as
// stored. Outcomes in priority order: unknown account, deactivated account,
// wrong password. Unknown account and wrong password share one error so the
// response cannot be used to enumerate users.
func (v *CredentialVerifier) Authenticate(ctx context.Context, identifier, password string) (*user.User, error) {
	account, err := v.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		v.logger.Errorw("failed to look up account", "error", err)
		return nil, errors.NewStoreUnavailableError("account lookup failed")
	}

	if account == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	if !account.IsActive {
		return nil, errors.NewAccountDeactivatedError()
	}

	if err := v.hasher.Verify(password, account.PasswordHash); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	return account, nil
}
