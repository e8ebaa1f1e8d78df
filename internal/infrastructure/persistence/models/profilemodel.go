package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/shared/constants"
)

// ProfileModel is the database persistence model for profiles. The
// per-module permission map is stored as a JSON column.
type ProfileModel struct {
	ID          string `gorm:"primarykey;size:36"`
	AccountID   string `gorm:"not null;size:36;index:idx_account_profile"`
	Name        string `gorm:"not null;size:100"`
	Role        string `gorm:"not null;size:20;default:member"`
	Active      bool   `gorm:"not null;default:true;index:idx_active_profile"`
	Permissions datatypes.JSON
	Version     int64 `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return constants.TableProfiles
}

// BeforeCreate hook for GORM
func (p *ProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
