package handlers

import (
	"context"

	"github.com/lyceum-io/lyceum/internal/application/auth/usecases"
	"github.com/lyceum-io/lyceum/internal/domain/user"
)

// Use case interfaces for the auth and session handlers - enables unit
// testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*usecases.RefreshTokenResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.LogoutCommand) error
}

type changePasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

type listSessionsUseCase interface {
	Execute(ctx context.Context, userID uint) ([]*user.SessionSummary, error)
}

type revokeSessionUseCase interface {
	Execute(ctx context.Context, cmd usecases.RevokeSessionCommand) (bool, error)
}

type revokeOtherSessionsUseCase interface {
	Execute(ctx context.Context, cmd usecases.RevokeOtherSessionsCommand) (int64, error)
}

type revokeAllSessionsUseCase interface {
	Execute(ctx context.Context, userID uint) (int64, error)
}
