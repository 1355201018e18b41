package usecases

import (
	"context"
	"fmt"

	"github.com/lyceum-io/lyceum/internal/application/auth/helpers"
	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
	"github.com/lyceum-io/lyceum/internal/shared/useragent"
)

type LoginCommand struct {
	Identifier string
	Password   string
	UserAgent  string
	IPAddress  string
}

type LoginResult struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	// Session is nil when session tracking degraded; login still succeeded.
	Session *user.SessionSummary
}

type LoginUseCase struct {
	verifier    *helpers.CredentialVerifier
	sessionRepo user.SessionRepository
	codec       TokenCodec
	logger      logger.Interface
}

func NewLoginUseCase(
	verifier *helpers.CredentialVerifier,
	sessionRepo user.SessionRepository,
	codec TokenCodec,
	log logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		verifier:    verifier,
		sessionRepo: sessionRepo,
		codec:       codec,
		logger:      log.Named("usecase.login"),
	}
}

// Execute authenticates the credentials, mints a token pair and records a
// session for the device. A session-store failure does not roll back the
// issued tokens: session rows buy visibility and revocation, they are not an
// authorization gate, so login degrades gracefully and the failure is only
// logged.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	account, err := uc.verifier.Authenticate(ctx, cmd.Identifier, cmd.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := uc.codec.IssueAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := uc.codec.IssueRefreshToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	result := &LoginResult{
		User:         account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(uc.codec.AccessTTL().Seconds()),
	}

	device := useragent.Parse(cmd.UserAgent, cmd.IPAddress)
	session, err := user.NewSession(account.ID, accessToken, refreshToken, device)
	if err == nil {
		err = uc.sessionRepo.Create(ctx, session)
	}
	if err != nil {
		uc.logger.Warnw("login proceeding without session tracking",
			"user_id", account.ID,
			"error", err,
		)
		return result, nil
	}

	uc.logger.Infow("user logged in",
		"user_id", account.ID,
		"session_id", session.SessionID,
		"device_type", session.DeviceType,
	)

	result.Session = &user.SessionSummary{
		SessionID:    session.SessionID,
		DeviceType:   session.DeviceType,
		DeviceInfo:   session.DeviceInfo,
		BrowserInfo:  session.BrowserInfo,
		Platform:     session.Platform,
		IPAddress:    session.IPAddress,
		LoginTime:    session.LoginTime,
		LastActivity: session.LastActivity,
	}
	return result, nil
}
