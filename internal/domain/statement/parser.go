package statement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Parser turns raw delimited bank exports into canonical movements.
// It is stateless; a single instance is safe for concurrent use.
type Parser struct{}

// NewParser creates a statement parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse ingests a raw statement export. bankCode selects a dedicated
// layout (BCP, INTERBANK, BBVA); anything else routes to the generic
// header auto-detect path. Malformed rows are skipped, never fatal.
func (p *Parser) Parse(raw, bankCode string) []BankMovement {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return []BankMovement{}
	}

	sep := detectSeparator(lines[0])
	header := splitFields(lines[0], sep)

	layout, ok := LayoutFor(bankCode)
	if !ok {
		layout, ok = detectGenericLayout(header)
		if !ok {
			return []BankMovement{}
		}
	}

	movements := make([]BankMovement, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line, sep)
		movements = append(movements, parseRow(fields, layout.columns)...)
	}
	return movements
}

// splitLines normalizes line endings and drops blank lines
func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// detectSeparator counts candidate separators in the header line; the
// most frequent wins, ties favor tab > semicolon > comma.
func detectSeparator(header string) rune {
	tabs := strings.Count(header, "\t")
	semis := strings.Count(header, ";")
	commas := strings.Count(header, ",")

	switch {
	case tabs >= semis && tabs >= commas:
		return '\t'
	case semis >= commas:
		return ';'
	default:
		return ','
	}
}

// splitFields splits a line on the separator honoring quoted segments,
// then strips surrounding quotes and whitespace from each field.
func splitFields(line string, sep rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(current.String()))
	return fields
}

func cleanField(field string) string {
	return strings.Trim(strings.TrimSpace(field), `"`)
}

var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
}

// parseDate normalizes recognized date formats to ISO; unrecognized
// values pass through as-is rather than being rejected.
func parseDate(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

// parseAmount strips currency symbols, spaces and quotes, handles a
// trailing ",NN" decimal comma with "." thousands separators, and
// parses to decimal. Unparseable text yields zero.
func parseAmount(value string) decimal.Decimal {
	cleaned := strings.NewReplacer(
		"S/", "", "s/", "",
		"$", "", "€", "",
		" ", "", " ", "", `"`, "",
	).Replace(strings.TrimSpace(value))

	if cleaned == "" {
		return decimal.Zero
	}

	if idx := strings.LastIndex(cleaned, ","); idx >= 0 && len(cleaned)-idx <= 3 {
		// decimal comma with optional "." thousands separators
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// parseRow maps one data row to zero, one or two movements. Zero and
// unparseable amounts emit nothing.
func parseRow(fields []string, cols columnMap) []BankMovement {
	date := parseDate(fieldAt(fields, cols.date))
	if strings.TrimSpace(date) == "" {
		return nil
	}

	description := fieldAt(fields, cols.description)
	reference := fieldAt(fields, cols.reference)

	var balance *decimal.Decimal
	if raw := fieldAt(fields, cols.balance); strings.TrimSpace(raw) != "" {
		b := parseAmount(raw)
		balance = &b
	}

	base := BankMovement{
		Date:           date,
		Description:    description,
		Reference:      reference,
		RunningBalance: balance,
	}

	if cols.hasSplitAmounts() {
		var movements []BankMovement
		if charge := parseAmount(fieldAt(fields, cols.charge)); charge.IsPositive() {
			m := base
			m.Amount = charge
			m.Direction = DirectionCharge
			movements = append(movements, m)
		}
		if credit := parseAmount(fieldAt(fields, cols.credit)); credit.IsPositive() {
			m := base
			m.Amount = credit
			m.Direction = DirectionCredit
			movements = append(movements, m)
		}
		return movements
	}

	amount := parseAmount(fieldAt(fields, cols.amount))
	if amount.IsZero() {
		return nil
	}

	m := base
	if amount.IsNegative() {
		m.Amount = amount.Abs()
		m.Direction = DirectionCharge
	} else {
		m.Amount = amount
		m.Direction = DirectionCredit
	}
	return []BankMovement{m}
}
