package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/domain/profile"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/mappers"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/models"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProfileMapper
	logger logger.Interface
}

func NewProfileRepository(db *gorm.DB, logger logger.Interface) profile.Repository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mappers.NewProfileMapper(),
		logger: logger,
	}
}

func (r *ProfileRepositoryImpl) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("profile not found")
		}
		r.logger.Errorw("failed to get profile by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ProfileRepositoryImpl) GetActiveByAccountID(ctx context.Context, accountID string) (*profile.Profile, error) {
	var model models.ProfileModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND active = ?", accountID, true).
		Order("updated_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no active profile")
		}
		r.logger.Errorw("failed to get active profile", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ProfileRepositoryImpl) ListByAccountID(ctx context.Context, accountID string) ([]*profile.Profile, error) {
	var modelList []*models.ProfileModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list profiles", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	entities := make([]*profile.Profile, 0, len(modelList))
	for _, model := range modelList {
		entity, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map profile: %w", err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, entity *profile.Profile) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map profile entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create profile", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.logger.Infow("profile created", "id", model.ID, "account_id", model.AccountID)
	return nil
}

func (r *ProfileRepositoryImpl) Update(ctx context.Context, entity *profile.Profile) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map profile entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("id = ? AND version < ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"role":        model.Role,
			"active":      model.Active,
			"permissions": model.Permissions,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update profile", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("profile was modified concurrently")
	}

	return nil
}
