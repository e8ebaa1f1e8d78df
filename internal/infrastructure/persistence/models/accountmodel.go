package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/shared/constants"
)

// AccountModel is the database persistence model for accounts.
// This is the anti-corruption layer between domain and database.
type AccountModel struct {
	ID             string  `gorm:"primarykey;size:36"`
	Email          string  `gorm:"uniqueIndex;not null;size:255"`
	Role           string  `gorm:"not null;size:20;default:normal"`
	LifetimeAccess bool    `gorm:"not null;default:false"`
	BusinessSize   *string `gorm:"size:20"`
	Version        int64   `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AccountModel) TableName() string {
	return constants.TableAccounts
}

// BeforeCreate hook for GORM
func (a *AccountModel) BeforeCreate(tx *gorm.DB) error {
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
