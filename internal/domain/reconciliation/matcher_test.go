package reconciliation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/domain/statement"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func saleDoc(counterparty string, issueDate string, total float64) document.CommercialDocument {
	return document.CommercialDocument{
		ID:               uuid.New(),
		DocumentType:     document.TypeInvoice,
		OperationKind:    document.OperationSale,
		CounterpartyName: counterparty,
		IssueDate:        day(issueDate),
		Total:            decimal.NewFromFloat(total),
	}
}

func movement(date, description string, amount float64) statement.BankMovement {
	return statement.BankMovement{
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Direction:   statement.DirectionCredit,
	}
}

func TestMatcherScenario(t *testing.T) {
	t.Run("ACME SAC transfer matches at 0.89 confidence", func(t *testing.T) {
		doc := saleDoc("ACME SAC", "2025-03-03", 1180.00)
		mv := movement("2025-03-05", "TRANSFERENCIA ACME SAC", 1180.00)

		result, err := NewMatcher().Match(
			[]statement.BankMovement{mv},
			[]document.CommercialDocument{doc},
		)
		require.NoError(t, err)
		require.Len(t, result.Paired, 1)

		// amount 1.0*0.50 + date(2d) 0.75*0.30 + description 0.8*0.20
		// = 0.885, rounded half-up
		pair := result.Paired[0]
		assert.Equal(t, doc.ID, pair.DocumentID)
		assert.Equal(t, "0.89", pair.Confidence.StringFixed(2))
		assert.False(t, pair.NeedsReview())
		assert.Empty(t, result.UnmatchedMovements)
		assert.Empty(t, result.UnmatchedDocuments)
	})
}

func TestMatcherConstraints(t *testing.T) {
	matcher := NewMatcher()

	t.Run("one to one matching", func(t *testing.T) {
		doc := saleDoc("ACME SAC", "2025-03-03", 500.00)
		movements := []statement.BankMovement{
			movement("2025-03-03", "PAGO ACME SAC", 500.00),
			movement("2025-03-04", "PAGO ACME SAC", 500.00),
		}

		result, err := matcher.Match(movements, []document.CommercialDocument{doc})
		require.NoError(t, err)
		require.Len(t, result.Paired, 1)
		// same-day movement wins on confidence
		assert.Equal(t, 0, result.Paired[0].MovementIndex)
		require.Len(t, result.UnmatchedMovements, 1)
		assert.Equal(t, "2025-03-04", result.UnmatchedMovements[0].Date)
	})

	t.Run("never returns confidence below the floor", func(t *testing.T) {
		// amount matches exactly but date is far and names share nothing
		doc := saleDoc("INVERSIONES DEL SUR", "2025-01-01", 300.00)
		mv := movement("2025-03-20", "XYZ", 300.00)

		result, err := matcher.Match(
			[]statement.BankMovement{mv},
			[]document.CommercialDocument{doc},
		)
		require.NoError(t, err)
		for _, pair := range result.Paired {
			assert.True(t, pair.Confidence.GreaterThanOrEqual(MinConfidence))
		}
	})

	t.Run("amount mismatch eliminates the pair", func(t *testing.T) {
		doc := saleDoc("ACME SAC", "2025-03-05", 1000.00)
		mv := movement("2025-03-05", "TRANSFERENCIA ACME SAC", 650.00)

		result, err := matcher.Match(
			[]statement.BankMovement{mv},
			[]document.CommercialDocument{doc},
		)
		require.NoError(t, err)
		assert.Empty(t, result.Paired)
		assert.Len(t, result.UnmatchedMovements, 1)
		assert.Len(t, result.UnmatchedDocuments, 1)
	})

	t.Run("empty inputs yield all-residue output", func(t *testing.T) {
		result, err := matcher.Match(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Paired)
		assert.Empty(t, result.UnmatchedMovements)
		assert.Empty(t, result.UnmatchedDocuments)
	})

	t.Run("unparseable movement date is a hard failure", func(t *testing.T) {
		mv := movement("marzo 5", "PAGO", 100.00)
		_, err := matcher.Match(
			[]statement.BankMovement{mv},
			[]document.CommercialDocument{saleDoc("ACME", "2025-03-05", 100.00)},
		)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		docs := []document.CommercialDocument{
			saleDoc("ACME SAC", "2025-03-03", 500.00),
			saleDoc("COMERCIAL LIMA", "2025-03-04", 500.00),
		}
		movements := []statement.BankMovement{
			movement("2025-03-04", "PAGO ACME SAC", 500.00),
			movement("2025-03-04", "TRANSFERENCIA COMERCIAL LIMA", 500.00),
		}

		first, err := matcher.Match(movements, docs)
		require.NoError(t, err)
		second, err := matcher.Match(movements, docs)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestAmountScore(t *testing.T) {
	tests := []struct {
		name     string
		movement float64
		total    float64
		want     string
	}{
		{"exact", 1180.00, 1180.00, "1"},
		{"within rounding tolerance", 1180.00, 1180.01, "0.98"},
		{"within relative tolerance", 10000.00, 10005.00, "0.95"},
		{"mismatch", 100.00, 200.00, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amountScore(decimal.NewFromFloat(tt.movement), decimal.NewFromFloat(tt.total))
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s", got)
		})
	}
}

func TestDateScore(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "1"}, {1, "0.9"}, {2, "0.75"}, {3, "0.6"}, {4, "0"}, {30, "0"},
	}
	base := day("2025-03-10")
	for _, tt := range tests {
		got := dateScore(base.AddDate(0, 0, tt.days), base)
		want, err := decimal.NewFromString(tt.want)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "days=%d got %s", tt.days, got)

		// symmetric in either direction
		got = dateScore(base, base.AddDate(0, 0, tt.days))
		assert.True(t, got.Equal(want), "days=-%d got %s", tt.days, got)
	}
}

func TestDescriptionScore(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		counterparty string
		want         string
	}{
		{"full containment", "TRANSFERENCIA ACME SAC", "ACME SAC", "0.8"},
		{"diacritics are ignored", "PAGO GESTION PERU", "Gestión Perú", "0.8"},
		{"majority word overlap", "PAGO COMERCIAL ANDINA", "COMERCIAL ANDINA NORTE", "0.6"},
		{"minority word overlap", "DEPOSITO ANDINA", "COMERCIAL ANDINA NORTE", "0.3"},
		{"no overlap", "RETIRO ATM", "ACME SAC", "0"},
		{"empty description", "", "ACME SAC", "0"},
		{"empty counterparty", "PAGO", "", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := descriptionScore(tt.description, tt.counterparty)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s", got)
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "acme sac", normalizeText("  ACME,  S.A.C. "))
	assert.Equal(t, "gestion peru", normalizeText("Gestión Perú"))
	assert.Equal(t, "", normalizeText("!!! ---"))
}
