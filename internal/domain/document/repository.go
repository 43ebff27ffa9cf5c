package document

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter defines filtering options for document list queries
type ListFilter struct {
	PaymentStatus PaymentStatus
	OperationKind OperationKind
	Limit         int
	Offset        int
}

// Repository persists commercial documents
type Repository interface {
	// Save persists a document
	Save(ctx context.Context, doc *CommercialDocument) error

	// FindByID finds a document by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CommercialDocument, error)

	// List returns documents matching the filter plus the total count
	List(ctx context.Context, filter ListFilter) ([]*CommercialDocument, int64, error)

	// FindOutstanding returns pending and partially paid documents of the
	// given operation kind, in issue-date order
	FindOutstanding(ctx context.Context, kind OperationKind) ([]*CommercialDocument, error)
}
