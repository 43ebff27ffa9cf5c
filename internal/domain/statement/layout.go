package statement

import "strings"

// columnMap resolves which field position holds each semantic column.
// A value of -1 means the column is absent from the layout.
type columnMap struct {
	date        int
	description int
	reference   int
	charge      int
	credit      int
	amount      int // single signed-amount column
	balance     int
}

func emptyColumnMap() columnMap {
	return columnMap{date: -1, description: -1, reference: -1, charge: -1, credit: -1, amount: -1, balance: -1}
}

// hasSplitAmounts returns true when the layout carries separate
// charge and credit columns instead of one signed amount.
func (c columnMap) hasSplitAmounts() bool {
	return c.charge >= 0 || c.credit >= 0
}

// Layout describes one known bank export format with fixed field positions
type Layout struct {
	BankCode string
	columns  columnMap
}

// Dedicated layouts for the supported Peruvian bank exports.
// Positions follow each bank's standard statement download.
var knownLayouts = map[string]Layout{
	"BCP": {
		BankCode: "BCP",
		columns: columnMap{
			date: 0, description: 1, reference: 2,
			charge: 3, credit: 4, balance: 5,
			amount: -1,
		},
	},
	"INTERBANK": {
		BankCode: "INTERBANK",
		columns: columnMap{
			date: 0, reference: 1, description: 2,
			amount: 3, balance: 4,
			charge: -1, credit: -1,
		},
	},
	"BBVA": {
		BankCode: "BBVA",
		columns: columnMap{
			date: 0, description: 1,
			charge: 2, credit: 3, balance: 4,
			reference: -1, amount: -1,
		},
	},
}

// LayoutFor returns the dedicated layout for a bank code, or false when
// the code is unknown and the generic auto-detect path should be used.
func LayoutFor(bankCode string) (Layout, bool) {
	layout, ok := knownLayouts[strings.ToUpper(strings.TrimSpace(bankCode))]
	return layout, ok
}

// SupportedBanks lists the bank codes with dedicated layouts
func SupportedBanks() []string {
	return []string{"BCP", "INTERBANK", "BBVA"}
}

// Header keyword sets for the generic layout, Spanish and English
// financial vocabulary. Matching is case-insensitive substring.
var headerKeywords = map[string][]string{
	"date":        {"fecha", "date", "día", "dia"},
	"description": {"descripcion", "descripción", "detalle", "concepto", "glosa", "description", "memo"},
	"reference":   {"referencia", "operacion", "operación", "nro", "numero", "número", "reference", "ref"},
	"charge":      {"cargo", "debe", "débito", "debito", "egreso", "salida", "debit", "withdrawal"},
	"credit":      {"abono", "haber", "crédito", "credito", "ingreso", "entrada", "credit", "deposit"},
	"amount":      {"importe", "monto", "amount", "valor"},
	"balance":     {"saldo", "balance"},
}

func headerMatches(field, semantic string) bool {
	lower := strings.ToLower(strings.TrimSpace(field))
	for _, kw := range headerKeywords[semantic] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// detectGenericLayout inspects header field names and builds a column
// mapping. Returns false when no date column can be identified, in which
// case the input cannot be ingested.
func detectGenericLayout(header []string) (Layout, bool) {
	cols := emptyColumnMap()
	for i, field := range header {
		switch {
		case cols.date < 0 && headerMatches(field, "date"):
			cols.date = i
		case cols.charge < 0 && headerMatches(field, "charge"):
			cols.charge = i
		case cols.credit < 0 && headerMatches(field, "credit"):
			cols.credit = i
		case cols.balance < 0 && headerMatches(field, "balance"):
			cols.balance = i
		case cols.description < 0 && headerMatches(field, "description"):
			cols.description = i
		case cols.reference < 0 && headerMatches(field, "reference"):
			cols.reference = i
		case cols.amount < 0 && headerMatches(field, "amount"):
			cols.amount = i
		}
	}
	if cols.date < 0 {
		return Layout{}, false
	}
	// split charge/credit columns take precedence over a single amount
	if cols.hasSplitAmounts() {
		cols.amount = -1
	}
	return Layout{BankCode: "GENERIC", columns: cols}, true
}
