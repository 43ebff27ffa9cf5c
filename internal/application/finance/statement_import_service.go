package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contaflow/backend/internal/domain/statement"
)

// StatementImportService runs statement ingestion and persists the results
type StatementImportService struct {
	parser     *statement.Parser
	importRepo statement.ImportRepository
}

// NewStatementImportService creates a new StatementImportService
func NewStatementImportService(parser *statement.Parser, importRepo statement.ImportRepository) *StatementImportService {
	return &StatementImportService{
		parser:     parser,
		importRepo: importRepo,
	}
}

// ImportStatementRequest carries the raw export text and an optional
// bank code selecting a dedicated layout
type ImportStatementRequest struct {
	BankCode string `json:"bank_code"`
	Content  string `json:"content" binding:"required"`
}

// StatementImportResponse represents a stored import in API responses
type StatementImportResponse struct {
	ID            uuid.UUID                `json:"id"`
	BankCode      string                   `json:"bank_code"`
	MovementCount int                      `json:"movement_count"`
	Movements     []statement.BankMovement `json:"movements"`
	ImportedAt    time.Time                `json:"imported_at"`
}

// Import parses the raw statement and persists the resulting movements.
// Malformed rows are dropped during parsing; an unusable input simply
// produces an import with zero movements.
func (s *StatementImportService) Import(ctx context.Context, req ImportStatementRequest) (*StatementImportResponse, error) {
	movements := s.parser.Parse(req.Content, req.BankCode)

	imp := statement.NewImport(req.BankCode, movements)
	if err := s.importRepo.Save(ctx, imp); err != nil {
		return nil, err
	}
	return toImportResponse(imp), nil
}

// GetImport loads a stored import with its movements
func (s *StatementImportService) GetImport(ctx context.Context, id uuid.UUID) (*StatementImportResponse, error) {
	imp, err := s.importRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toImportResponse(imp), nil
}

// ListImports returns stored imports, newest first
func (s *StatementImportService) ListImports(ctx context.Context, limit, offset int) ([]*StatementImportResponse, int64, error) {
	imports, total, err := s.importRepo.List(ctx, normalizeLimit(limit), offset)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]*StatementImportResponse, len(imports))
	for i, imp := range imports {
		responses[i] = toImportResponse(imp)
	}
	return responses, total, nil
}

func toImportResponse(imp *statement.Import) *StatementImportResponse {
	return &StatementImportResponse{
		ID:            imp.ID,
		BankCode:      imp.BankCode,
		MovementCount: imp.MovementCount(),
		Movements:     imp.Movements,
		ImportedAt:    imp.ImportedAt,
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
