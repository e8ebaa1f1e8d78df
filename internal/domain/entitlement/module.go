package entitlement

// ModuleKey names a business-logic area gated by both a plan-mapped feature
// and a profile permission.
type ModuleKey string

const (
	ModuleClients           ModuleKey = "clients"
	ModuleQuotes            ModuleKey = "quotes"
	ModuleInvoices          ModuleKey = "invoices"
	ModuleLeads             ModuleKey = "leads"
	ModuleReports           ModuleKey = "reports"
	ModulePeppolAccessPoint ModuleKey = "peppol_access_point"
	ModuleSettings          ModuleKey = "settings"
)

func (m ModuleKey) String() string {
	return string(m)
}

func (m ModuleKey) IsValid() bool {
	switch m {
	case ModuleClients, ModuleQuotes, ModuleInvoices, ModuleLeads,
		ModuleReports, ModulePeppolAccessPoint, ModuleSettings:
		return true
	}
	return false
}
