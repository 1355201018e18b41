package mappers

import (
	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and
// persistence models.
type SessionMapper interface {
	ToModel(entity *user.Session) *models.SessionModel
	ToDomain(model *models.SessionModel) *user.Session
	ToSummary(model *models.SessionModel) *user.SessionSummary
}

type sessionMapper struct{}

// NewSessionMapper creates a new SessionMapper.
func NewSessionMapper() SessionMapper {
	return &sessionMapper{}
}

func (m *sessionMapper) ToModel(entity *user.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}

	var refreshToken *string
	if entity.RefreshToken != "" {
		rt := entity.RefreshToken
		refreshToken = &rt
	}

	return &models.SessionModel{
		SessionID:    entity.SessionID,
		UserID:       entity.UserID,
		AccessToken:  entity.AccessToken,
		RefreshToken: refreshToken,
		DeviceType:   entity.DeviceType,
		DeviceInfo:   entity.DeviceInfo,
		BrowserInfo:  entity.BrowserInfo,
		Platform:     entity.Platform,
		IPAddress:    entity.IPAddress,
		UserAgent:    entity.UserAgent,
		IsActive:     entity.IsActive,
		LastActivity: entity.LastActivity,
		LoginTime:    entity.LoginTime,
		LogoutTime:   entity.LogoutTime,
	}
}

func (m *sessionMapper) ToDomain(model *models.SessionModel) *user.Session {
	if model == nil {
		return nil
	}

	refreshToken := ""
	if model.RefreshToken != nil {
		refreshToken = *model.RefreshToken
	}

	return &user.Session{
		SessionID:    model.SessionID,
		UserID:       model.UserID,
		AccessToken:  model.AccessToken,
		RefreshToken: refreshToken,
		DeviceType:   model.DeviceType,
		DeviceInfo:   model.DeviceInfo,
		BrowserInfo:  model.BrowserInfo,
		Platform:     model.Platform,
		IPAddress:    model.IPAddress,
		UserAgent:    model.UserAgent,
		IsActive:     model.IsActive,
		LastActivity: model.LastActivity,
		LoginTime:    model.LoginTime,
		LogoutTime:   model.LogoutTime,
	}
}

// ToSummary projects a session onto the device/network view exposed when
// listing sessions. Tokens never cross this boundary.
func (m *sessionMapper) ToSummary(model *models.SessionModel) *user.SessionSummary {
	if model == nil {
		return nil
	}
	return &user.SessionSummary{
		SessionID:    model.SessionID,
		DeviceType:   model.DeviceType,
		DeviceInfo:   model.DeviceInfo,
		BrowserInfo:  model.BrowserInfo,
		Platform:     model.Platform,
		IPAddress:    model.IPAddress,
		LoginTime:    model.LoginTime,
		LastActivity: model.LastActivity,
	}
}
