package usecases

import (
	"context"

	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
)

// Convenience wrappers for the create paths that callers guard most often.

func (uc *CheckQuotaUseCase) CanCreateQuote(ctx context.Context, accountID string) (QuotaResult, error) {
	return uc.Execute(ctx, accountID, entitlement.QuotaQuotes)
}

func (uc *CheckQuotaUseCase) CanCreateInvoice(ctx context.Context, accountID string) (QuotaResult, error) {
	return uc.Execute(ctx, accountID, entitlement.QuotaInvoices)
}

func (uc *CheckQuotaUseCase) CanCreateClient(ctx context.Context, accountID string) (QuotaResult, error) {
	return uc.Execute(ctx, accountID, entitlement.QuotaClients)
}

func (uc *CheckQuotaUseCase) CanSendPeppolInvoice(ctx context.Context, accountID string) (QuotaResult, error) {
	return uc.Execute(ctx, accountID, entitlement.QuotaPeppolInvoices)
}
