package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/application/entitlement/usecases"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	"github.com/fakturio-inc/fakturio/internal/shared/constants"
	apperrors "github.com/fakturio-inc/fakturio/internal/shared/errors"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

// quotaTables routes each quota key to the table its usage is counted from.
var quotaTables = map[entitlement.QuotaKey]string{
	entitlement.QuotaClients:        constants.TableClients,
	entitlement.QuotaQuotes:         constants.TableQuotes,
	entitlement.QuotaInvoices:       constants.TableInvoices,
	entitlement.QuotaPeppolInvoices: constants.TablePeppolInvoices,
}

// UsageCountRepositoryImpl counts quota usage live against the canonical
// tables. The count is not cached anywhere; every check hits the database.
type UsageCountRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUsageCountRepository(db *gorm.DB, logger logger.Interface) usecases.UsageCounter {
	return &UsageCountRepositoryImpl{db: db, logger: logger}
}

func (r *UsageCountRepositoryImpl) CountSince(ctx context.Context, accountID string, key entitlement.QuotaKey, since time.Time) (int64, error) {
	table, ok := quotaTables[key]
	if !ok {
		return 0, apperrors.NewValidationError("unknown quota key", key.String())
	}

	var count int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where("account_id = ? AND created_at >= ? AND deleted_at IS NULL", accountID, since).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count usage", "table", table, "account_id", accountID, "error", err)
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	return count, nil
}
