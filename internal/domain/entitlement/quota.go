package entitlement

import "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"

// QuotaKey names a quantity-bounded resource counted per billing cycle.
type QuotaKey string

const (
	QuotaQuotes         QuotaKey = "quotes"
	QuotaInvoices       QuotaKey = "invoices"
	QuotaClients        QuotaKey = "clients"
	QuotaPeppolInvoices QuotaKey = "peppol_invoices"
)

// UnlimitedQuota is the sentinel limit meaning no ceiling applies.
const UnlimitedQuota int64 = -1

func (q QuotaKey) String() string {
	return string(q)
}

func (q QuotaKey) IsValid() bool {
	switch q {
	case QuotaQuotes, QuotaInvoices, QuotaClients, QuotaPeppolInvoices:
		return true
	}
	return false
}

// QuotaTable maps (plan, quota key) to a limit. Immutable after
// construction. Pairs missing from the table resolve to a zero limit, which
// fails closed.
type QuotaTable struct {
	entries map[valueobjects.PlanTier]map[QuotaKey]int64
}

// NewQuotaTable copies the given entries into an immutable table.
func NewQuotaTable(entries map[valueobjects.PlanTier]map[QuotaKey]int64) QuotaTable {
	copied := make(map[valueobjects.PlanTier]map[QuotaKey]int64, len(entries))
	for plan, quotas := range entries {
		row := make(map[QuotaKey]int64, len(quotas))
		for key, limit := range quotas {
			row[key] = limit
		}
		copied[plan] = row
	}
	return QuotaTable{entries: copied}
}

// Limit returns the quota limit for a plan, or zero when the pair is not in
// the table.
func (t QuotaTable) Limit(plan valueobjects.PlanTier, key QuotaKey) int64 {
	row, ok := t.entries[plan]
	if !ok {
		return 0
	}
	limit, ok := row[key]
	if !ok {
		return 0
	}
	return limit
}
