// Package mappers converts between domain aggregates and persistence models.
package mappers

import (
	"fmt"

	"github.com/fakturio-inc/fakturio/internal/domain/account"
	vo "github.com/fakturio-inc/fakturio/internal/domain/account/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/persistence/models"
)

type AccountMapper interface {
	ToEntity(model *models.AccountModel) (*account.Account, error)
	ToModel(entity *account.Account) (*models.AccountModel, error)
}

type AccountMapperImpl struct{}

func NewAccountMapper() AccountMapper {
	return &AccountMapperImpl{}
}

func (m *AccountMapperImpl) ToEntity(model *models.AccountModel) (*account.Account, error) {
	if model == nil {
		return nil, nil
	}

	role := vo.Role(model.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid account role: %s", model.Role)
	}

	var businessSize *vo.BusinessSize
	if model.BusinessSize != nil && *model.BusinessSize != "" {
		size := vo.BusinessSize(*model.BusinessSize)
		if !size.IsValid() {
			return nil, fmt.Errorf("invalid business size: %s", *model.BusinessSize)
		}
		businessSize = &size
	}

	return account.ReconstructAccount(
		model.ID,
		model.Email,
		role,
		model.LifetimeAccess,
		businessSize,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	), nil
}

func (m *AccountMapperImpl) ToModel(entity *account.Account) (*models.AccountModel, error) {
	if entity == nil {
		return nil, nil
	}

	var businessSize *string
	if size := entity.BusinessSize(); size != nil {
		s := size.String()
		businessSize = &s
	}

	return &models.AccountModel{
		ID:             entity.ID(),
		Email:          entity.Email(),
		Role:           entity.Role().String(),
		LifetimeAccess: entity.HasLifetimeAccess(),
		BusinessSize:   businessSize,
		Version:        entity.Version(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}
