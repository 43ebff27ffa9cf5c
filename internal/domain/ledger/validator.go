package ledger

import (
	"fmt"

	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/domain/shared/valueobject"
)

// Validation failure codes. These gate what may be posted to the books.
const (
	CodeUnbalancedEntry = "UNBALANCED_ENTRY"
	CodeTooFewLines     = "TOO_FEW_LINES"
	CodeUnknownAccount  = "UNKNOWN_ACCOUNT"
	CodeNegativeAmount  = "NEGATIVE_AMOUNT"
)

// Validator checks journal entries against structural invariants.
// It is pure and read-only.
type Validator struct {
	catalog AccountCatalog
}

// NewValidator creates a validator over the given chart of accounts
func NewValidator(catalog AccountCatalog) *Validator {
	return &Validator{catalog: catalog}
}

// Validate returns nil when the entry may be posted, or a domain error
// naming the first violated invariant.
func (v *Validator) Validate(entry *JournalEntry) error {
	if len(entry.Lines) < 2 {
		return shared.NewDomainError(CodeTooFewLines,
			fmt.Sprintf("Journal entry needs at least 2 lines, got %d", len(entry.Lines)))
	}

	for i, line := range entry.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return shared.NewDomainError(CodeNegativeAmount,
				fmt.Sprintf("Line %d has a negative amount", i+1))
		}
		if !v.catalog.Exists(line.AccountCode) {
			return shared.NewDomainError(CodeUnknownAccount,
				fmt.Sprintf("Account code %q is not in the chart of accounts", line.AccountCode))
		}
	}

	// strict equality of the rounded column sums; a one-cent drift is
	// already an unbalanced entry
	debit := valueobject.NewMoneyPEN(entry.TotalDebit())
	credit := valueobject.NewMoneyPEN(entry.TotalCredit())
	if !debit.Equals(credit) {
		return shared.NewDomainError(CodeUnbalancedEntry,
			fmt.Sprintf("Debits %s do not equal credits %s",
				debit.StringFixed(2), credit.StringFixed(2)))
	}
	return nil
}
