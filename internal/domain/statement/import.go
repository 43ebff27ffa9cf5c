package statement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Import is one persisted statement ingestion run with its movements
type Import struct {
	ID         uuid.UUID      `json:"id"`
	BankCode   string         `json:"bank_code"`
	Movements  []BankMovement `json:"movements"`
	ImportedAt time.Time      `json:"imported_at"`
}

// NewImport creates an import aggregate from an ingestion result
func NewImport(bankCode string, movements []BankMovement) *Import {
	return &Import{
		ID:         uuid.New(),
		BankCode:   bankCode,
		Movements:  movements,
		ImportedAt: time.Now(),
	}
}

// MovementCount returns the number of ingested movements
func (i *Import) MovementCount() int {
	return len(i.Movements)
}

// ImportRepository persists statement imports
type ImportRepository interface {
	// Save persists the import with its movements
	Save(ctx context.Context, imp *Import) error

	// FindByID loads an import with its movements
	FindByID(ctx context.Context, id uuid.UUID) (*Import, error)

	// List returns imports ordered by import time descending
	List(ctx context.Context, limit, offset int) ([]*Import, int64, error)
}
