// Package repository provides gorm-backed implementations of the domain
// repository interfaces.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/domain/account"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/mappers"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/models"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

type AccountRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AccountMapper
	logger logger.Interface
}

func NewAccountRepository(db *gorm.DB, logger logger.Interface) account.Repository {
	return &AccountRepositoryImpl{
		db:     db,
		mapper: mappers.NewAccountMapper(),
		logger: logger,
	}
}

func (r *AccountRepositoryImpl) GetByID(ctx context.Context, id string) (*account.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		r.logger.Errorw("failed to get account by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *AccountRepositoryImpl) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		r.logger.Errorw("failed to get account by email", "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, entity *account.Account) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map account entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create account", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	r.logger.Infow("account created", "id", model.ID)
	return nil
}

func (r *AccountRepositoryImpl) Update(ctx context.Context, entity *account.Account) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map account entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ? AND version < ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"email":           model.Email,
			"role":            model.Role,
			"lifetime_access": model.LifetimeAccess,
			"business_size":   model.BusinessSize,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update account", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("account was modified concurrently")
	}

	return nil
}
