package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/fakturio-inc/fakturio/internal/domain/profile"
	vo "github.com/fakturio-inc/fakturio/internal/domain/profile/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/models"
)

type ProfileMapper interface {
	ToEntity(model *models.ProfileModel) (*profile.Profile, error)
	ToModel(entity *profile.Profile) (*models.ProfileModel, error)
}

type ProfileMapperImpl struct{}

func NewProfileMapper() ProfileMapper {
	return &ProfileMapperImpl{}
}

func (m *ProfileMapperImpl) ToEntity(model *models.ProfileModel) (*profile.Profile, error) {
	if model == nil {
		return nil, nil
	}

	role := vo.ProfileRole(model.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid profile role: %s", model.Role)
	}

	permissions := make(map[string]vo.PermissionLevel)
	if model.Permissions != nil {
		raw := make(map[string]string)
		if err := json.Unmarshal(model.Permissions, &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal permissions: %w", err)
		}
		for moduleKey, level := range raw {
			permissionLevel := vo.PermissionLevel(level)
			if !permissionLevel.IsValid() {
				return nil, fmt.Errorf("invalid permission level for %s: %s", moduleKey, level)
			}
			permissions[moduleKey] = permissionLevel
		}
	}

	return profile.ReconstructProfile(
		model.ID,
		model.AccountID,
		model.Name,
		role,
		model.Active,
		permissions,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	), nil
}

func (m *ProfileMapperImpl) ToModel(entity *profile.Profile) (*models.ProfileModel, error) {
	if entity == nil {
		return nil, nil
	}

	permissions := entity.Permissions()
	raw := make(map[string]string, len(permissions))
	for moduleKey, level := range permissions {
		raw[moduleKey] = level.String()
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal permissions: %w", err)
	}

	return &models.ProfileModel{
		ID:          entity.ID(),
		AccountID:   entity.AccountID(),
		Name:        entity.Name(),
		Role:        entity.Role().String(),
		Active:      entity.IsActive(),
		Permissions: encoded,
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}
