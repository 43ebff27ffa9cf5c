package ledger

// Chart-of-accounts codes used by the journal generator, following the
// Peruvian PCGE numbering.
const (
	AccountReceivables     = "121"   // cuentas por cobrar comerciales
	AccountPayables        = "421"   // cuentas por pagar comerciales
	AccountSalesRevenue    = "701"   // ventas de mercaderías
	AccountServiceRevenue  = "704"   // prestación de servicios
	AccountOutputVAT       = "40111" // IGV por pagar
	AccountInputVAT        = "40115" // IGV crédito fiscal
	AccountMerchandise     = "601"   // compras de mercaderías
	AccountServicesExpense = "632"   // servicios prestados por terceros
)

// AccountCatalog answers whether an account code exists in the chart of
// accounts. The engine queries it but does not own its persistence.
type AccountCatalog interface {
	Exists(code string) bool
}

// StaticCatalog is an in-memory AccountCatalog over a fixed code set
type StaticCatalog struct {
	codes map[string]string
}

// NewStaticCatalog builds a catalog from code -> name pairs
func NewStaticCatalog(accounts map[string]string) *StaticCatalog {
	codes := make(map[string]string, len(accounts))
	for code, name := range accounts {
		codes[code] = name
	}
	return &StaticCatalog{codes: codes}
}

// DefaultCatalog returns the built-in chart of accounts
func DefaultCatalog() *StaticCatalog {
	return NewStaticCatalog(map[string]string{
		AccountReceivables:     "Cuentas por cobrar comerciales",
		AccountPayables:        "Cuentas por pagar comerciales",
		AccountSalesRevenue:    "Ventas",
		AccountServiceRevenue:  "Prestación de servicios",
		AccountOutputVAT:       "IGV por pagar",
		AccountInputVAT:        "IGV crédito fiscal",
		AccountMerchandise:     "Mercaderías",
		AccountServicesExpense: "Servicios prestados por terceros",
	})
}

// Exists implements AccountCatalog
func (c *StaticCatalog) Exists(code string) bool {
	_, ok := c.codes[code]
	return ok
}

// Name returns the display name for a code, empty when unknown
func (c *StaticCatalog) Name(code string) string {
	return c.codes[code]
}
