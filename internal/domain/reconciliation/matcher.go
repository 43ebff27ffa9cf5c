package reconciliation

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/domain/statement"
)

// Pair is one accepted movement/document match
type Pair struct {
	MovementIndex int                    `json:"movement_index"`
	Movement      statement.BankMovement `json:"movement"`
	DocumentID    uuid.UUID              `json:"document_id"`
	Confidence    decimal.Decimal        `json:"confidence"`
}

// NeedsReview returns true when the pair was accepted below the review threshold
func (p Pair) NeedsReview() bool {
	return p.Confidence.LessThan(ReviewConfidence)
}

// Result holds the pairs plus the residues on each side, in input order
type Result struct {
	Paired             []Pair                        `json:"paired"`
	UnmatchedMovements []statement.BankMovement      `json:"unmatched_movements"`
	UnmatchedDocuments []document.CommercialDocument `json:"unmatched_documents"`
}

type candidate struct {
	movementIndex int
	documentIndex int
	confidence    decimal.Decimal
}

// Matcher pairs bank movements with outstanding commercial documents.
// It is stateless and deterministic for a given input.
type Matcher struct{}

// NewMatcher creates a reconciliation matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match scores every movement/document pair, keeps candidates at or
// above the confidence floor, and accepts them greedily by confidence
// descending under a 1:1 constraint. Documents are assumed pre-filtered
// to outstanding ones by the caller.
func (m *Matcher) Match(movements []statement.BankMovement, documents []document.CommercialDocument) (*Result, error) {
	dates, err := parseMovementDates(movements)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	for mi, movement := range movements {
		for di, doc := range documents {
			amount := amountScore(movement.Amount, doc.Total)
			if amount.IsZero() {
				continue
			}
			score := confidence(
				amount,
				dateScore(dates[mi], doc.IssueDate),
				descriptionScore(movement.Description, doc.CounterpartyName),
			)
			if score.LessThan(MinConfidence) {
				continue
			}
			candidates = append(candidates, candidate{
				movementIndex: mi,
				documentIndex: di,
				confidence:    score,
			})
		}
	}

	// stable sort keeps discovery order (movement index asc, then
	// document order) as the tie-break
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence.GreaterThan(candidates[j].confidence)
	})

	consumedMovements := make(map[int]bool)
	consumedDocuments := make(map[uuid.UUID]bool)

	result := &Result{Paired: []Pair{}}
	for _, c := range candidates {
		doc := documents[c.documentIndex]
		if consumedMovements[c.movementIndex] || consumedDocuments[doc.ID] {
			continue
		}
		consumedMovements[c.movementIndex] = true
		consumedDocuments[doc.ID] = true
		result.Paired = append(result.Paired, Pair{
			MovementIndex: c.movementIndex,
			Movement:      movements[c.movementIndex],
			DocumentID:    doc.ID,
			Confidence:    c.confidence,
		})
	}

	result.UnmatchedMovements = make([]statement.BankMovement, 0)
	for i, movement := range movements {
		if !consumedMovements[i] {
			result.UnmatchedMovements = append(result.UnmatchedMovements, movement)
		}
	}
	result.UnmatchedDocuments = make([]document.CommercialDocument, 0)
	for _, doc := range documents {
		if !consumedDocuments[doc.ID] {
			result.UnmatchedDocuments = append(result.UnmatchedDocuments, doc)
		}
	}
	return result, nil
}

// parseMovementDates resolves every movement date up front. Downstream
// aging depends on date correctness, so an unparseable date is a hard
// failure rather than a silently wrong proximity score.
func parseMovementDates(movements []statement.BankMovement) ([]time.Time, error) {
	dates := make([]time.Time, len(movements))
	for i, movement := range movements {
		t, err := time.Parse("2006-01-02", movement.Date)
		if err != nil {
			return nil, shared.NewDomainError(
				shared.ErrInvalidDate.Code,
				fmt.Sprintf("Movement %d has unparseable date %q", i, movement.Date),
			)
		}
		dates[i] = t
	}
	return dates, nil
}
