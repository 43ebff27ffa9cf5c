package reconciliation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaflow/backend/internal/domain/shared/valueobject"
)

// Sub-score weights; the composite is rounded to 2 decimals.
var (
	weightAmount      = decimal.NewFromFloat(0.50)
	weightDate        = decimal.NewFromFloat(0.30)
	weightDescription = decimal.NewFromFloat(0.20)
)

// MinConfidence is the floor below which a candidate pair is discarded
var MinConfidence = decimal.NewFromFloat(0.40)

// ReviewConfidence marks accepted pairs that still deserve manual review
var ReviewConfidence = decimal.NewFromFloat(0.60)

var (
	scoreExact      = decimal.NewFromInt(1)
	scoreRounding   = decimal.NewFromFloat(0.98)
	scoreRelative   = decimal.NewFromFloat(0.95)
	relativeEpsilon = decimal.NewFromFloat(0.001)
)

// amountScore compares a movement amount against a document total.
// A zero score eliminates the pair entirely.
func amountScore(movement, total decimal.Decimal) decimal.Decimal {
	if movement.Equal(total) {
		return scoreExact
	}
	if valueobject.NewMoneyPEN(movement).EqualsWithinTolerance(valueobject.NewMoneyPEN(total)) {
		return scoreRounding
	}
	diff := movement.Sub(total).Abs()
	if !total.IsZero() && diff.Div(total.Abs()).LessThanOrEqual(relativeEpsilon) {
		return scoreRelative
	}
	return decimal.Zero
}

// dateScore maps the absolute calendar-day distance to a proximity
// score. Time-of-day and zone are irrelevant to posting dates.
func dateScore(movementDate, issueDate time.Time) decimal.Decimal {
	days := int(atMidnight(movementDate).Sub(atMidnight(issueDate)).Hours() / 24)
	if days < 0 {
		days = -days
	}
	switch days {
	case 0:
		return decimal.NewFromInt(1)
	case 1:
		return decimal.NewFromFloat(0.9)
	case 2:
		return decimal.NewFromFloat(0.75)
	case 3:
		return decimal.NewFromFloat(0.6)
	default:
		return decimal.Zero
	}
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// descriptionScore compares the movement's free text against the
// document counterparty name after normalization. Full containment in
// either direction scores highest; otherwise the fraction of
// counterparty words (length > 2) found in the description decides.
func descriptionScore(description, counterparty string) decimal.Decimal {
	desc := normalizeText(description)
	name := normalizeText(counterparty)
	if desc == "" || name == "" {
		return decimal.Zero
	}

	if strings.Contains(desc, name) || strings.Contains(name, desc) {
		return decimal.NewFromFloat(0.8)
	}

	var total, matched int
	for _, word := range strings.Fields(name) {
		if len(word) <= 2 {
			continue
		}
		total++
		if strings.Contains(desc, word) {
			matched++
		}
	}
	if total == 0 {
		return decimal.Zero
	}

	ratio := decimal.NewFromInt(int64(matched)).Div(decimal.NewFromInt(int64(total)))
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.6)):
		return decimal.NewFromFloat(0.6)
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.3)):
		return decimal.NewFromFloat(0.3)
	default:
		return decimal.Zero
	}
}

// confidence combines the three sub-scores, rounded half-up to 2 decimals
func confidence(amount, date, description decimal.Decimal) decimal.Decimal {
	return amount.Mul(weightAmount).
		Add(date.Mul(weightDate)).
		Add(description.Mul(weightDescription)).
		Round(2)
}
