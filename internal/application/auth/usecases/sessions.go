package usecases

import (
	"context"
	"fmt"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

// ListSessionsUseCase enumerates a user's active sessions, newest activity
// first, projected to device/network metadata only.
type ListSessionsUseCase struct {
	sessionRepo user.SessionRepository
}

func NewListSessionsUseCase(sessionRepo user.SessionRepository) *ListSessionsUseCase {
	return &ListSessionsUseCase{sessionRepo: sessionRepo}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, userID uint) ([]*user.SessionSummary, error) {
	summaries, err := uc.sessionRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return summaries, nil
}

type RevokeSessionCommand struct {
	UserID    uint
	SessionID string
}

// RevokeSessionUseCase revokes one named session, scoped to its owner so a
// user can never revoke somebody else's device.
type RevokeSessionUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewRevokeSessionUseCase(sessionRepo user.SessionRepository, log logger.Interface) *RevokeSessionUseCase {
	return &RevokeSessionUseCase{
		sessionRepo: sessionRepo,
		logger:      log.Named("usecase.revokesession"),
	}
}

// Execute returns whether a session actually transitioned to inactive.
func (uc *RevokeSessionUseCase) Execute(ctx context.Context, cmd RevokeSessionCommand) (bool, error) {
	changed, err := uc.sessionRepo.Revoke(ctx, cmd.SessionID, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to revoke session", "error", err, "session_id", cmd.SessionID)
		return false, fmt.Errorf("failed to revoke session: %w", err)
	}

	if changed {
		uc.logger.Infow("session revoked", "session_id", cmd.SessionID, "user_id", cmd.UserID)
	}
	return changed, nil
}

type RevokeOtherSessionsCommand struct {
	UserID        uint
	KeepSessionID string
}

// RevokeOtherSessionsUseCase logs a user out of every device except the
// calling one.
type RevokeOtherSessionsUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewRevokeOtherSessionsUseCase(sessionRepo user.SessionRepository, log logger.Interface) *RevokeOtherSessionsUseCase {
	return &RevokeOtherSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      log.Named("usecase.revokeothers"),
	}
}

func (uc *RevokeOtherSessionsUseCase) Execute(ctx context.Context, cmd RevokeOtherSessionsCommand) (int64, error) {
	count, err := uc.sessionRepo.RevokeAllExcept(ctx, cmd.UserID, cmd.KeepSessionID)
	if err != nil {
		uc.logger.Errorw("failed to revoke other sessions", "error", err, "user_id", cmd.UserID)
		return 0, fmt.Errorf("failed to revoke other sessions: %w", err)
	}

	uc.logger.Infow("revoked other sessions", "user_id", cmd.UserID, "count", count)
	return count, nil
}

// RevokeAllSessionsUseCase logs a user out everywhere, the calling device
// included.
type RevokeAllSessionsUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewRevokeAllSessionsUseCase(sessionRepo user.SessionRepository, log logger.Interface) *RevokeAllSessionsUseCase {
	return &RevokeAllSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      log.Named("usecase.revokeall"),
	}
}

func (uc *RevokeAllSessionsUseCase) Execute(ctx context.Context, userID uint) (int64, error) {
	count, err := uc.sessionRepo.RevokeAll(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to revoke all sessions", "error", err, "user_id", userID)
		return 0, fmt.Errorf("failed to revoke all sessions: %w", err)
	}

	uc.logger.Infow("revoked all sessions", "user_id", userID, "count", count)
	return count, nil
}
