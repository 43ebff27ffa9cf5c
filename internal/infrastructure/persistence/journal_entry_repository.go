package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contaflow/backend/internal/domain/ledger"
	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/infrastructure/persistence/models"
)

// GormJournalEntryRepository implements ledger.EntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// Save persists the entry with its lines
func (r *GormJournalEntryRepository) Save(ctx context.Context, entry *ledger.PostedEntry) error {
	var model models.JournalEntryModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID loads a posted entry with its lines in order
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PostedEntry, error) {
	var model models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocumentID loads the entry generated for a document
func (r *GormJournalEntryRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) (*ledger.PostedEntry, error) {
	var model models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "document_id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns entries ordered by posting time descending
func (r *GormJournalEntryRepository) List(ctx context.Context, limit, offset int) ([]*ledger.PostedEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entryModels []models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("posted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*ledger.PostedEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = model.ToDomain()
	}
	return entries, total, nil
}
