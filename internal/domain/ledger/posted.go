package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contaflow/backend/internal/domain/document"
)

// PostedEntry is a journal entry accepted into the books, tied to the
// document it was generated from.
type PostedEntry struct {
	ID         uuid.UUID    `json:"id"`
	DocumentID uuid.UUID    `json:"document_id"`
	Entry      JournalEntry `json:"entry"`
	PostedAt   time.Time    `json:"posted_at"`
}

// NewPostedEntry creates a posted entry for a document
func NewPostedEntry(documentID uuid.UUID, entry JournalEntry) *PostedEntry {
	return &PostedEntry{
		ID:         uuid.New(),
		DocumentID: documentID,
		Entry:      entry,
		PostedAt:   time.Now(),
	}
}

// PostingStore persists a document together with its generated entry as
// one atomic unit. Either both rows land or neither does.
type PostingStore interface {
	PostDocument(ctx context.Context, doc *document.CommercialDocument, entry *PostedEntry) error
}

// EntryRepository persists posted journal entries
type EntryRepository interface {
	// Save persists the entry with its lines
	Save(ctx context.Context, entry *PostedEntry) error

	// FindByID loads a posted entry with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PostedEntry, error)

	// FindByDocumentID loads the entry generated for a document
	FindByDocumentID(ctx context.Context, documentID uuid.UUID) (*PostedEntry, error)

	// List returns entries ordered by posting time descending
	List(ctx context.Context, limit, offset int) ([]*PostedEntry, int64, error)
}
