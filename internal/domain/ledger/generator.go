package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/shared"
)

// Generator derives balanced journal entries from commercial documents.
// Generation is a pure function of the document's fields.
type Generator struct{}

// NewGenerator creates a journal entry generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate selects the entry kind from the (documentType, operationKind)
// decision table and builds the corresponding line set. Amounts are
// rounded to 2 decimals per line.
func (g *Generator) Generate(doc *document.CommercialDocument) (*JournalEntry, error) {
	kind, err := resolveEntryKind(doc.DocumentType, doc.OperationKind)
	if err != nil {
		return nil, err
	}

	subtotal := doc.Subtotal.Round(2)
	tax := doc.Tax.Round(2)
	total := doc.Total.Round(2)
	memo := doc.FullNumber()

	var entry JournalEntry
	switch kind {
	case KindSale, KindSaleDebitNote:
		entry = saleLines(subtotal, tax, total, AccountSalesRevenue, memo)
	case KindSaleFees:
		entry = saleLines(subtotal, tax, total, AccountServiceRevenue, memo)
	case KindSaleCreditNote:
		entry = saleLines(subtotal, tax, total, AccountSalesRevenue, memo).Mirror()
	case KindPurchase, KindPurchaseDebitNote:
		entry = purchaseLines(subtotal, tax, total, AccountMerchandise, memo)
	case KindPurchaseFees:
		entry = purchaseLines(subtotal, tax, total, AccountServicesExpense, memo)
	case KindPurchaseCreditNote:
		entry = purchaseLines(subtotal, tax, total, AccountMerchandise, memo).Mirror()
	}

	entry.EntryKind = kind
	entry.Description = fmt.Sprintf("%s %s - %s", doc.DocumentType, memo, doc.CounterpartyName)
	return &entry, nil
}

func resolveEntryKind(docType document.Type, kind document.OperationKind) (EntryKind, error) {
	sale := kind == document.OperationSale
	switch docType {
	case document.TypeInvoice, document.TypeReceipt, document.TypeTicket:
		if sale {
			return KindSale, nil
		}
		return KindPurchase, nil
	case document.TypeCreditNote:
		if sale {
			return KindSaleCreditNote, nil
		}
		return KindPurchaseCreditNote, nil
	case document.TypeDebitNote:
		if sale {
			return KindSaleDebitNote, nil
		}
		return KindPurchaseDebitNote, nil
	case document.TypeFeeReceipt:
		if sale {
			return KindSaleFees, nil
		}
		return KindPurchaseFees, nil
	}
	return "", shared.NewDomainError("INVALID_DOCUMENT_TYPE",
		fmt.Sprintf("No journal rule for document type %q", docType))
}

// saleLines: debit receivables for the total, credit revenue for the
// subtotal, credit output VAT for the tax. The VAT line is omitted when
// the tax is zero.
func saleLines(subtotal, tax, total decimal.Decimal, revenueAccount, memo string) JournalEntry {
	lines := []JournalLine{
		{AccountCode: AccountReceivables, Memo: memo, Debit: total, Credit: decimal.Zero},
		{AccountCode: revenueAccount, Memo: memo, Debit: decimal.Zero, Credit: subtotal},
	}
	if !tax.IsZero() {
		lines = append(lines, JournalLine{
			AccountCode: AccountOutputVAT, Memo: memo, Debit: decimal.Zero, Credit: tax,
		})
	}
	return JournalEntry{Lines: lines}
}

// purchaseLines: debit expense for the subtotal, debit input VAT for the
// tax, credit payables for the total.
func purchaseLines(subtotal, tax, total decimal.Decimal, expenseAccount, memo string) JournalEntry {
	lines := []JournalLine{
		{AccountCode: expenseAccount, Memo: memo, Debit: subtotal, Credit: decimal.Zero},
	}
	if !tax.IsZero() {
		lines = append(lines, JournalLine{
			AccountCode: AccountInputVAT, Memo: memo, Debit: tax, Credit: decimal.Zero,
		})
	}
	lines = append(lines, JournalLine{
		AccountCode: AccountPayables, Memo: memo, Debit: decimal.Zero, Credit: total,
	})
	return JournalEntry{Lines: lines}
}
