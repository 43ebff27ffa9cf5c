package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/shared"
)

func testDoc(docType document.Type, kind document.OperationKind, subtotal, tax, total float64) *document.CommercialDocument {
	return &document.CommercialDocument{
		ID:               uuid.New(),
		DocumentType:     docType,
		OperationKind:    kind,
		Series:           "F001",
		Number:           "000123",
		CounterpartyName: "ACME SAC",
		IssueDate:        time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Subtotal:         decimal.NewFromFloat(subtotal),
		Tax:              decimal.NewFromFloat(tax),
		Total:            decimal.NewFromFloat(total),
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestGenerateSaleEntry(t *testing.T) {
	generator := NewGenerator()

	t.Run("sale invoice yields three balanced lines", func(t *testing.T) {
		doc := testDoc(document.TypeInvoice, document.OperationSale, 1000.00, 180.00, 1180.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		assert.Equal(t, KindSale, entry.EntryKind)
		require.Len(t, entry.Lines, 3)

		assert.Equal(t, AccountReceivables, entry.Lines[0].AccountCode)
		assert.True(t, entry.Lines[0].Debit.Equal(decimal.NewFromFloat(1180.00)))
		assert.Equal(t, AccountSalesRevenue, entry.Lines[1].AccountCode)
		assert.True(t, entry.Lines[1].Credit.Equal(decimal.NewFromFloat(1000.00)))
		assert.Equal(t, AccountOutputVAT, entry.Lines[2].AccountCode)
		assert.True(t, entry.Lines[2].Credit.Equal(decimal.NewFromFloat(180.00)))

		assert.True(t, entry.TotalDebit().Equal(entry.TotalCredit()))
	})

	t.Run("zero tax omits the VAT line", func(t *testing.T) {
		doc := testDoc(document.TypeReceipt, document.OperationSale, 500.00, 0, 500.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		require.Len(t, entry.Lines, 2)
		assert.True(t, entry.TotalDebit().Equal(entry.TotalCredit()))
	})

	t.Run("fee receipt uses the service revenue account", func(t *testing.T) {
		doc := testDoc(document.TypeFeeReceipt, document.OperationSale, 2000.00, 0, 2000.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		assert.Equal(t, KindSaleFees, entry.EntryKind)
		assert.Equal(t, AccountServiceRevenue, entry.Lines[1].AccountCode)
	})
}

func TestGeneratePurchaseEntry(t *testing.T) {
	generator := NewGenerator()

	t.Run("purchase invoice debits expense and input VAT", func(t *testing.T) {
		doc := testDoc(document.TypeInvoice, document.OperationPurchase, 1000.00, 180.00, 1180.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		assert.Equal(t, KindPurchase, entry.EntryKind)
		require.Len(t, entry.Lines, 3)

		assert.Equal(t, AccountMerchandise, entry.Lines[0].AccountCode)
		assert.True(t, entry.Lines[0].Debit.Equal(decimal.NewFromFloat(1000.00)))
		assert.Equal(t, AccountInputVAT, entry.Lines[1].AccountCode)
		assert.True(t, entry.Lines[1].Debit.Equal(decimal.NewFromFloat(180.00)))
		assert.Equal(t, AccountPayables, entry.Lines[2].AccountCode)
		assert.True(t, entry.Lines[2].Credit.Equal(decimal.NewFromFloat(1180.00)))
	})

	t.Run("purchase fees use the services expense account", func(t *testing.T) {
		doc := testDoc(document.TypeFeeReceipt, document.OperationPurchase, 800.00, 144.00, 944.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		assert.Equal(t, KindPurchaseFees, entry.EntryKind)
		assert.Equal(t, AccountServicesExpense, entry.Lines[0].AccountCode)
	})
}

func TestGenerateNotes(t *testing.T) {
	generator := NewGenerator()

	t.Run("sale credit note mirrors the sale lines", func(t *testing.T) {
		doc := testDoc(document.TypeCreditNote, document.OperationSale, 1000.00, 180.00, 1180.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		assert.Equal(t, KindSaleCreditNote, entry.EntryKind)

		// receivables line is now a credit
		assert.Equal(t, AccountReceivables, entry.Lines[0].AccountCode)
		assert.True(t, entry.Lines[0].Debit.IsZero())
		assert.True(t, entry.Lines[0].Credit.Equal(decimal.NewFromFloat(1180.00)))
		assert.True(t, entry.Lines[1].Debit.Equal(decimal.NewFromFloat(1000.00)))
		assert.True(t, entry.TotalDebit().Equal(entry.TotalCredit()))
	})

	t.Run("purchase credit note mirrors the purchase lines", func(t *testing.T) {
		doc := testDoc(document.TypeCreditNote, document.OperationPurchase, 1000.00, 180.00, 1180.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		assert.Equal(t, KindPurchaseCreditNote, entry.EntryKind)
		assert.True(t, entry.Lines[0].Credit.Equal(decimal.NewFromFloat(1000.00)))
		assert.True(t, entry.Lines[2].Debit.Equal(decimal.NewFromFloat(1180.00)))
	})

	t.Run("debit note reuses the base line directions", func(t *testing.T) {
		doc := testDoc(document.TypeDebitNote, document.OperationSale, 100.00, 18.00, 118.00)

		entry, err := generator.Generate(doc)
		require.NoError(t, err)
		assert.Equal(t, KindSaleDebitNote, entry.EntryKind)
		assert.True(t, entry.Lines[0].Debit.Equal(decimal.NewFromFloat(118.00)))
	})
}

func TestGeneratedEntriesAlwaysValidate(t *testing.T) {
	generator := NewGenerator()
	validator := NewValidator(DefaultCatalog())

	for _, docType := range document.AllTypes() {
		for _, kind := range []document.OperationKind{document.OperationSale, document.OperationPurchase} {
			t.Run(docType.String()+"/"+kind.String(), func(t *testing.T) {
				doc := testDoc(docType, kind, 1000.00, 180.00, 1180.00)
				entry, err := generator.Generate(doc)
				require.NoError(t, err)
				assert.NoError(t, validator.Validate(entry))
			})
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	generator := NewGenerator()
	doc := testDoc(document.TypeInvoice, document.OperationSale, 1000.00, 180.00, 1180.00)

	first, err := generator.Generate(doc)
	require.NoError(t, err)
	second, err := generator.Generate(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	validator := NewValidator(DefaultCatalog())

	line := func(code string, debit, credit float64) JournalLine {
		return JournalLine{
			AccountCode: code,
			Debit:       decimal.NewFromFloat(debit),
			Credit:      decimal.NewFromFloat(credit),
		}
	}

	t.Run("one cent drift is unbalanced", func(t *testing.T) {
		entry := &JournalEntry{
			EntryKind: KindSale,
			Lines: []JournalLine{
				line(AccountReceivables, 100.00, 0),
				line(AccountSalesRevenue, 0, 99.99),
			},
		}
		assertCode(t, validator.Validate(entry), CodeUnbalancedEntry)
	})

	t.Run("fewer than two lines", func(t *testing.T) {
		entry := &JournalEntry{
			EntryKind: KindSale,
			Lines:     []JournalLine{line(AccountReceivables, 100.00, 0)},
		}
		assertCode(t, validator.Validate(entry), CodeTooFewLines)
	})

	t.Run("unknown account", func(t *testing.T) {
		entry := &JournalEntry{
			EntryKind: KindSale,
			Lines: []JournalLine{
				line("999", 100.00, 0),
				line(AccountSalesRevenue, 0, 100.00),
			},
		}
		assertCode(t, validator.Validate(entry), CodeUnknownAccount)
	})

	t.Run("negative amount", func(t *testing.T) {
		entry := &JournalEntry{
			EntryKind: KindSale,
			Lines: []JournalLine{
				line(AccountReceivables, -100.00, 0),
				line(AccountSalesRevenue, 0, -100.00),
			},
		}
		assertCode(t, validator.Validate(entry), CodeNegativeAmount)
	})

	t.Run("validation has no side effects", func(t *testing.T) {
		entry := &JournalEntry{
			EntryKind: KindSale,
			Lines: []JournalLine{
				line(AccountReceivables, 118.00, 0),
				line(AccountSalesRevenue, 0, 100.00),
				line(AccountOutputVAT, 0, 18.00),
			},
		}
		before := *entry
		require.NoError(t, validator.Validate(entry))
		assert.Equal(t, before, *entry)
	})
}
