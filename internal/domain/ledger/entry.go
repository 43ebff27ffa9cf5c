package ledger

import (
	"github.com/shopspring/decimal"
)

// EntryKind tags which generation rule produced a journal entry
type EntryKind string

const (
	KindSale               EntryKind = "SALE"
	KindPurchase           EntryKind = "PURCHASE"
	KindSaleCreditNote     EntryKind = "SALE_CREDIT_NOTE"
	KindPurchaseCreditNote EntryKind = "PURCHASE_CREDIT_NOTE"
	KindSaleDebitNote      EntryKind = "SALE_DEBIT_NOTE"
	KindPurchaseDebitNote  EntryKind = "PURCHASE_DEBIT_NOTE"
	KindSaleFees           EntryKind = "SALE_FEES"
	KindPurchaseFees       EntryKind = "PURCHASE_FEES"
)

// IsValid checks if the entry kind is valid
func (k EntryKind) IsValid() bool {
	switch k {
	case KindSale, KindPurchase,
		KindSaleCreditNote, KindPurchaseCreditNote,
		KindSaleDebitNote, KindPurchaseDebitNote,
		KindSaleFees, KindPurchaseFees:
		return true
	}
	return false
}

// String returns the string representation
func (k EntryKind) String() string {
	return string(k)
}

// JournalLine is one debit or credit posting against an account
type JournalLine struct {
	AccountCode string          `json:"account_code"`
	Memo        string          `json:"memo"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntry is a balanced set of lines recording one accounting event
type JournalEntry struct {
	Description string        `json:"description"`
	EntryKind   EntryKind     `json:"entry_kind"`
	Lines       []JournalLine `json:"lines"`
}

// TotalDebit sums the debit column, each line rounded to 2 decimals
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit.Round(2))
	}
	return total
}

// TotalCredit sums the credit column, each line rounded to 2 decimals
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit.Round(2))
	}
	return total
}

// Mirror returns a copy of the entry with every line's debit and credit
// swapped. Used by credit-note generation to reverse a prior operation.
func (e JournalEntry) Mirror() JournalEntry {
	mirrored := JournalEntry{
		Description: e.Description,
		EntryKind:   e.EntryKind,
		Lines:       make([]JournalLine, len(e.Lines)),
	}
	for i, line := range e.Lines {
		mirrored.Lines[i] = JournalLine{
			AccountCode: line.AccountCode,
			Memo:        line.Memo,
			Debit:       line.Credit,
			Credit:      line.Debit,
		}
	}
	return mirrored
}
