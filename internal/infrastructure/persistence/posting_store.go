package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/ledger"
)

// GormPostingStore implements ledger.PostingStore using a database
// transaction, so a failed entry write never leaves a document behind
// without its journal entry.
type GormPostingStore struct {
	db *Database
}

// NewGormPostingStore creates a new GormPostingStore
func NewGormPostingStore(db *Database) *GormPostingStore {
	return &GormPostingStore{db: db}
}

// PostDocument persists the document and its entry in one transaction
func (s *GormPostingStore) PostDocument(ctx context.Context, doc *document.CommercialDocument, entry *ledger.PostedEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := NewGormDocumentRepository(tx).Save(ctx, doc); err != nil {
			return err
		}
		return NewGormJournalEntryRepository(tx).Save(ctx, entry)
	})
}
