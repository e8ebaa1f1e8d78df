package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/shared/constants"
)

// SubscriptionModel is the database persistence model for subscriptions.
// Period boundaries, status and the cancel flag are a projection of
// processor-owned state; SyncedAt records when it was last refreshed.
type SubscriptionModel struct {
	ID                   string `gorm:"primarykey;size:36"`
	AccountID            string `gorm:"uniqueIndex;not null;size:36"`
	Plan                 string `gorm:"not null;size:20"`
	BillingInterval      string `gorm:"not null;size:20"`
	Status               string `gorm:"not null;size:20;index:idx_status"`
	StripeCustomerID     string `gorm:"size:64"`
	StripeSubscriptionID string `gorm:"size:64;index:idx_stripe_subscription"`
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool    `gorm:"not null;default:false"`
	ScheduledPlan        *string `gorm:"size:20"`
	ScheduledInterval    *string `gorm:"size:20"`
	ScheduledEffectiveAt *time.Time
	ScheduleRef          *string `gorm:"size:64"`
	SyncedAt             *time.Time
	Version              int64 `gorm:"not null;default:1"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
