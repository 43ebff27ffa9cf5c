package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contaflow/backend/internal/domain/document"
)

// Run is one persisted reconciliation execution over a statement import
type Run struct {
	ID            uuid.UUID              `json:"id"`
	ImportID      uuid.UUID              `json:"import_id"`
	OperationKind document.OperationKind `json:"operation_kind"`
	Result        Result                 `json:"result"`
	ExecutedAt    time.Time              `json:"executed_at"`
}

// NewRun creates a run aggregate from a matcher result
func NewRun(importID uuid.UUID, kind document.OperationKind, result Result) *Run {
	return &Run{
		ID:            uuid.New(),
		ImportID:      importID,
		OperationKind: kind,
		Result:        result,
		ExecutedAt:    time.Now(),
	}
}

// MatchedCount returns the number of accepted pairs
func (r *Run) MatchedCount() int {
	return len(r.Result.Paired)
}

// ReviewCount returns the number of pairs below the review threshold
func (r *Run) ReviewCount() int {
	count := 0
	for _, pair := range r.Result.Paired {
		if pair.NeedsReview() {
			count++
		}
	}
	return count
}

// RunRepository persists reconciliation runs
type RunRepository interface {
	// Save persists the run with its pairs and residues
	Save(ctx context.Context, run *Run) error

	// FindByID loads a run
	FindByID(ctx context.Context, id uuid.UUID) (*Run, error)

	// List returns runs ordered by execution time descending
	List(ctx context.Context, limit, offset int) ([]*Run, int64, error)
}
