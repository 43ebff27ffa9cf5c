package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/reconciliation"
	"github.com/contaflow/backend/internal/domain/statement"
)

// ReconciliationService runs the matcher over stored imports and
// outstanding documents, and persists the runs
type ReconciliationService struct {
	matcher      *reconciliation.Matcher
	importRepo   statement.ImportRepository
	documentRepo document.Repository
	runRepo      reconciliation.RunRepository
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	matcher *reconciliation.Matcher,
	importRepo statement.ImportRepository,
	documentRepo document.Repository,
	runRepo reconciliation.RunRepository,
) *ReconciliationService {
	return &ReconciliationService{
		matcher:      matcher,
		importRepo:   importRepo,
		documentRepo: documentRepo,
		runRepo:      runRepo,
	}
}

// RunReconciliationRequest selects the import and the document side
type RunReconciliationRequest struct {
	ImportID      uuid.UUID `json:"import_id" binding:"required"`
	OperationKind string    `json:"operation_kind" binding:"required,oneof=SALE PURCHASE"`
}

// PairResponse represents one accepted pair in API responses
type PairResponse struct {
	MovementIndex int                    `json:"movement_index"`
	Movement      statement.BankMovement `json:"movement"`
	DocumentID    uuid.UUID              `json:"document_id"`
	Confidence    decimal.Decimal        `json:"confidence"`
	NeedsReview   bool                   `json:"needs_review"`
}

// ReconciliationRunResponse represents a run with its pairs and residues
type ReconciliationRunResponse struct {
	ID                 uuid.UUID                     `json:"id"`
	ImportID           uuid.UUID                     `json:"import_id"`
	OperationKind      string                        `json:"operation_kind"`
	Paired             []PairResponse                `json:"paired"`
	UnmatchedMovements []statement.BankMovement      `json:"unmatched_movements"`
	UnmatchedDocuments []document.CommercialDocument `json:"unmatched_documents"`
	MatchedCount       int                           `json:"matched_count"`
	ReviewCount        int                           `json:"review_count"`
	ExecutedAt         time.Time                     `json:"executed_at"`
}

// Run loads the import's movements and the outstanding documents of the
// requested operation kind, executes the matcher and persists the run.
func (s *ReconciliationService) Run(ctx context.Context, req RunReconciliationRequest) (*ReconciliationRunResponse, error) {
	imp, err := s.importRepo.FindByID(ctx, req.ImportID)
	if err != nil {
		return nil, err
	}

	kind := document.OperationKind(req.OperationKind)
	outstanding, err := s.documentRepo.FindOutstanding(ctx, kind)
	if err != nil {
		return nil, err
	}

	documents := make([]document.CommercialDocument, len(outstanding))
	for i, doc := range outstanding {
		documents[i] = *doc
	}

	result, err := s.matcher.Match(imp.Movements, documents)
	if err != nil {
		return nil, err
	}

	run := reconciliation.NewRun(imp.ID, kind, *result)
	if err := s.runRepo.Save(ctx, run); err != nil {
		return nil, err
	}
	return toRunResponse(run), nil
}

// GetRun loads a stored reconciliation run
func (s *ReconciliationService) GetRun(ctx context.Context, id uuid.UUID) (*ReconciliationRunResponse, error) {
	run, err := s.runRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRunResponse(run), nil
}

// ListRuns returns stored runs, newest first
func (s *ReconciliationService) ListRuns(ctx context.Context, limit, offset int) ([]*ReconciliationRunResponse, int64, error) {
	runs, total, err := s.runRepo.List(ctx, normalizeLimit(limit), offset)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]*ReconciliationRunResponse, len(runs))
	for i, run := range runs {
		responses[i] = toRunResponse(run)
	}
	return responses, total, nil
}

func toRunResponse(run *reconciliation.Run) *ReconciliationRunResponse {
	pairs := make([]PairResponse, len(run.Result.Paired))
	for i, pair := range run.Result.Paired {
		pairs[i] = PairResponse{
			MovementIndex: pair.MovementIndex,
			Movement:      pair.Movement,
			DocumentID:    pair.DocumentID,
			Confidence:    pair.Confidence,
			NeedsReview:   pair.NeedsReview(),
		}
	}
	return &ReconciliationRunResponse{
		ID:                 run.ID,
		ImportID:           run.ImportID,
		OperationKind:      run.OperationKind.String(),
		Paired:             pairs,
		UnmatchedMovements: run.Result.UnmatchedMovements,
		UnmatchedDocuments: run.Result.UnmatchedDocuments,
		MatchedCount:       run.MatchedCount(),
		ReviewCount:        run.ReviewCount(),
		ExecutedAt:         run.ExecutedAt,
	}
}
