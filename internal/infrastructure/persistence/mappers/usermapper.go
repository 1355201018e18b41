package mappers

import (
	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/persistence/models"
)

// UserMapper converts between user persistence models and domain entities.
type UserMapper interface {
	ToModel(entity *user.User) *models.UserModel
	ToDomain(model *models.UserModel) *user.User
	ToProjection(model *models.UserModel) user.UserProjection
}

type userMapper struct{}

// NewUserMapper creates a new UserMapper.
func NewUserMapper() UserMapper {
	return &userMapper{}
}

func (m *userMapper) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID,
		Username:     entity.Username,
		Email:        entity.Email,
		FirstName:    entity.FirstName,
		MiddleName:   entity.MiddleName,
		LastName:     entity.LastName,
		PasswordHash: entity.PasswordHash,
		Role:         string(entity.Role),
		IsActive:     entity.IsActive,
	}
}

func (m *userMapper) ToDomain(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return &user.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		FirstName:    model.FirstName,
		MiddleName:   model.MiddleName,
		LastName:     model.LastName,
		PasswordHash: model.PasswordHash,
		Role:         user.Role(model.Role),
		IsActive:     model.IsActive,
	}
}

func (m *userMapper) ToProjection(model *models.UserModel) user.UserProjection {
	if model == nil {
		return user.UserProjection{}
	}
	entity := m.ToDomain(model)
	return user.UserProjection{
		ID:       entity.ID,
		FullName: entity.FullName(),
		Email:    entity.Email,
		Role:     entity.Role,
		IsActive: entity.IsActive,
	}
}
