package usecases

import (
	"context"
	"fmt"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type RefreshTokenUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	codec       TokenCodec
	logger      logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	codec TokenCodec,
	log logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		codec:       codec,
		logger:      log.Named("usecase.refresh"),
	}
}

// Execute verifies the refresh token, re-checks the account and mints a new
// access token. The same refresh token is echoed back for its remaining
// lifetime; rotation is deliberately absent from this design.
//
// When a session row matches the refresh token, it is rebound to the new
// access token so gate lookups keep finding it. That rebind is best-effort,
// like all session visibility bookkeeping.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	claims, err := uc.codec.Verify(cmd.RefreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	account, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		uc.logger.Errorw("failed to reload account during refresh", "error", err, "user_id", claims.UserID)
		return nil, errors.NewStoreUnavailableError("account lookup failed")
	}
	if account == nil {
		uc.logger.Warnw("account vanished since refresh token issuance", "user_id", claims.UserID)
		return nil, errors.NewUnauthorizedError("account no longer exists")
	}
	if !account.IsActive {
		return nil, errors.NewAccountDeactivatedError()
	}

	accessToken, err := uc.codec.IssueAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	uc.rebindSession(ctx, cmd.RefreshToken, accessToken)

	return &RefreshTokenResult{
		AccessToken:  accessToken,
		RefreshToken: cmd.RefreshToken,
		ExpiresIn:    int64(uc.codec.AccessTTL().Seconds()),
	}, nil
}

func (uc *RefreshTokenUseCase) rebindSession(ctx context.Context, refreshToken, accessToken string) {
	session, err := uc.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		uc.logger.Warnw("session lookup failed during refresh", "error", err)
		return
	}
	if session == nil {
		return
	}

	if err := uc.sessionRepo.UpdateAccessToken(ctx, session.SessionID, accessToken); err != nil {
		uc.logger.Warnw("failed to rebind session to new access token",
			"session_id", session.SessionID,
			"error", err,
		)
	}
}
