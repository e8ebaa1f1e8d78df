// Package constants defines shared constant values used across layers.
package constants

// Database table names
const (
	TableAccounts       = "accounts"
	TableProfiles       = "profiles"
	TableSubscriptions  = "subscriptions"
	TableClients        = "clients"
	TableQuotes         = "quotes"
	TableInvoices       = "invoices"
	TablePeppolInvoices = "peppol_invoices"
)

// Gin context keys
const (
	ContextKeyAccountID   = "account_id"
	ContextKeyAccountRole = "account_role"
)
