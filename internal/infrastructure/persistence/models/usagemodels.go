package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/fakturio-inc/fakturio/internal/shared/constants"
)

// Count-only projections of the quota-relevant domain tables. The quota
// tracker needs account scoping, creation time and the soft-delete marker;
// the full row layouts belong to their own modules.

type ClientModel struct {
	ID        string `gorm:"primarykey;size:36"`
	AccountID string `gorm:"not null;size:36;index:idx_client_account"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ClientModel) TableName() string {
	return constants.TableClients
}

type QuoteModel struct {
	ID        string `gorm:"primarykey;size:36"`
	AccountID string `gorm:"not null;size:36;index:idx_quote_account"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (QuoteModel) TableName() string {
	return constants.TableQuotes
}

type InvoiceModel struct {
	ID        string `gorm:"primarykey;size:36"`
	AccountID string `gorm:"not null;size:36;index:idx_invoice_account"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (InvoiceModel) TableName() string {
	return constants.TableInvoices
}

type PeppolInvoiceModel struct {
	ID        string `gorm:"primarykey;size:36"`
	AccountID string `gorm:"not null;size:36;index:idx_peppol_invoice_account"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PeppolInvoiceModel) TableName() string {
	return constants.TablePeppolInvoices
}
