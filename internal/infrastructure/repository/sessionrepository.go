package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/persistence/mappers"
	"github.com/lyceum-io/lyceum/internal/infrastructure/persistence/models"
	"github.com/lyceum-io/lyceum/internal/shared/biztime"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

const (
	touchMaxAttempts  = 3
	touchRetryBackoff = 50 * time.Millisecond
)

type SessionRepository struct {
	db         *gorm.DB
	mapper     mappers.SessionMapper
	userMapper mappers.UserMapper
	logger     logger.Interface
}

func NewSessionRepository(db *gorm.DB, log logger.Interface) user.SessionRepository {
	return &SessionRepository{
		db:         db,
		mapper:     mappers.NewSessionMapper(),
		userMapper: mappers.NewUserMapper(),
		logger:     log.Named("repository.session"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model models.SessionModel
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetByAccessToken loads the session matching the presented access token
// together with a minimal owner projection. Inactive sessions are returned
// as-is: the caller distinguishes "revoked" from "never existed".
func (r *SessionRepository) GetByAccessToken(ctx context.Context, accessToken string) (*user.SessionWithUser, error) {
	var model models.SessionModel
	err := r.db.WithContext(ctx).
		Where("access_token = ?", accessToken).
		Order("login_time DESC").
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by access token: %w", err)
	}

	var userModel models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", model.UserID).First(&userModel).Error; err != nil {
		return nil, fmt.Errorf("failed to load session owner: %w", err)
	}

	return &user.SessionWithUser{
		Session: r.mapper.ToDomain(&model),
		User:    r.userMapper.ToProjection(&userModel),
	}, nil
}

func (r *SessionRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*user.Session, error) {
	var model models.SessionModel
	err := r.db.WithContext(ctx).
		Where("refresh_token = ? AND is_active = ?", refreshToken, true).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by refresh token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) ListActive(ctx context.Context, userID uint) ([]*user.SessionSummary, error) {
	var sessionModels []models.SessionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_activity DESC").
		Find(&sessionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	summaries := make([]*user.SessionSummary, len(sessionModels))
	for i := range sessionModels {
		summaries[i] = r.mapper.ToSummary(&sessionModels[i])
	}
	return summaries, nil
}

func (r *SessionRepository) UpdateAccessToken(ctx context.Context, sessionID, accessToken string) error {
	result := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("session_id = ? AND is_active = ?", sessionID, true).
		Update("access_token", accessToken)
	if result.Error != nil {
		return fmt.Errorf("failed to update session access token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

// TouchActivity refreshes last_activity with a throttled conditional update.
// The WHERE clause only matches when the previous touch is older than the
// throttle window, so under concurrent requests from one device most calls
// resolve as a zero-row no-op instead of contending for the row lock. The
// unique session_id index keeps the update single-row.
//
// Lock-wait timeouts are retried with linear backoff up to touchMaxAttempts;
// everything here is best-effort and the caller must never fail a request on
// the returned error.
func (r *SessionRepository) TouchActivity(ctx context.Context, sessionID string, throttleWindow time.Duration) error {
	now := biztime.NowUTC()
	cutoff := now.Add(-throttleWindow)

	var lastErr error
	for attempt := 1; attempt <= touchMaxAttempts; attempt++ {
		result := r.db.WithContext(ctx).Model(&models.SessionModel{}).
			Where("session_id = ? AND is_active = ?", sessionID, true).
			Where("last_activity IS NULL OR last_activity < ?", cutoff).
			Update("last_activity", now)

		if result.Error == nil {
			// Zero rows means the session was touched within the window (or
			// revoked meanwhile); both are normal.
			return nil
		}

		if !isLockContention(result.Error) {
			return fmt.Errorf("failed to touch session activity: %w", result.Error)
		}

		lastErr = result.Error
		r.logger.Debugw("lock contention on activity touch, retrying",
			"session_id", sessionID,
			"attempt", attempt,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * touchRetryBackoff):
		}
	}

	return fmt.Errorf("activity touch retries exhausted: %w", lastErr)
}

func (r *SessionRepository) Revoke(ctx context.Context, sessionID string, requireUserID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("session_id = ? AND is_active = ?", sessionID, true)
	if requireUserID != 0 {
		query = query.Where("user_id = ?", requireUserID)
	}

	result := query.Updates(map[string]interface{}{
		"is_active":   false,
		"logout_time": biztime.NowUTC(),
	})
	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *SessionRepository) RevokeAllExcept(ctx context.Context, userID uint, keepSessionID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("user_id = ? AND is_active = ? AND session_id <> ?", userID, true, keepSessionID).
		Updates(map[string]interface{}{
			"is_active":   false,
			"logout_time": biztime.NowUTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke other sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) RevokeAll(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"is_active":   false,
			"logout_time": biztime.NowUTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke all sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) SweepInactive(ctx context.Context, inactivityThreshold time.Duration) (int64, error) {
	cutoff := biztime.NowUTC().Add(-inactivityThreshold)
	result := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("is_active = ? AND last_activity < ?", true, cutoff).
		Updates(map[string]interface{}{
			"is_active":   false,
			"logout_time": biztime.NowUTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep inactive sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// isLockContention classifies transient locking errors worth retrying:
// MySQL 1205 (lock wait timeout) and 1213 (deadlock victim), plus the
// message-based equivalents from other drivers.
func isLockContention(err error) bool {
	var mysqlErr *gomysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1205 || mysqlErr.Number == 1213
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "deadlock")
}
