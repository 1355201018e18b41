package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

// SweepSessionsUseCase revokes active sessions whose last recorded activity
// is older than the configured idle threshold. It implements the scheduler's
// BatchJob contract.
type SweepSessionsUseCase struct {
	sessionRepo user.SessionRepository
	idleAfter   time.Duration
	logger      logger.Interface
}

func NewSweepSessionsUseCase(
	sessionRepo user.SessionRepository,
	idleAfter time.Duration,
	log logger.Interface,
) *SweepSessionsUseCase {
	return &SweepSessionsUseCase{
		sessionRepo: sessionRepo,
		idleAfter:   idleAfter,
		logger:      log.Named("usecase.sweepsessions"),
	}
}

// Execute returns the number of sessions revoked in this pass.
func (uc *SweepSessionsUseCase) Execute(ctx context.Context) (int, error) {
	count, err := uc.sessionRepo.SweepInactive(ctx, uc.idleAfter)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep idle sessions: %w", err)
	}

	if count > 0 {
		uc.logger.Infow("swept idle sessions", "count", count, "idle_after", uc.idleAfter)
	}
	return int(count), nil
}
