package usecases

import (
	"context"
	"fmt"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

type LogoutCommand struct {
	SessionID string
	UserID    uint
}

// LogoutUseCase revokes the calling device's session. Logout IS session
// revocation; there is no separate stateless acknowledgement path.
type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, log logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		logger:      log.Named("usecase.logout"),
	}
}

// Execute marks the session inactive, scoped to its owner. Revocation is
// synchronous: a store failure fails the request rather than pretending the
// session is gone. An already-revoked session is a success, logout is
// idempotent.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	changed, err := uc.sessionRepo.Revoke(ctx, cmd.SessionID, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to revoke session on logout", "error", err, "session_id", cmd.SessionID)
		return fmt.Errorf("failed to logout: %w", err)
	}

	if changed {
		uc.logger.Infow("user logged out", "session_id", cmd.SessionID, "user_id", cmd.UserID)
	}
	return nil
}
