package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/domain/statement"
	"github.com/contaflow/backend/internal/infrastructure/persistence/models"
)

// GormStatementImportRepository implements statement.ImportRepository using GORM
type GormStatementImportRepository struct {
	db *gorm.DB
}

// NewGormStatementImportRepository creates a new GormStatementImportRepository
func NewGormStatementImportRepository(db *gorm.DB) *GormStatementImportRepository {
	return &GormStatementImportRepository{db: db}
}

// Save persists the import with its movements
func (r *GormStatementImportRepository) Save(ctx context.Context, imp *statement.Import) error {
	var model models.StatementImportModel
	model.FromDomain(imp)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID loads an import with its movements in file order
func (r *GormStatementImportRepository) FindByID(ctx context.Context, id uuid.UUID) (*statement.Import, error) {
	var model models.StatementImportModel
	if err := r.db.WithContext(ctx).
		Preload("Movements", func(db *gorm.DB) *gorm.DB {
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

// List returns imports ordered by import time descending
func (r *GormStatementImportRepository) List(ctx context.Context, limit, offset int) ([]*statement.Import, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.StatementImportModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var importModels []models.StatementImportModel
	if err := r.db.WithContext(ctx).
		Preload("Movements", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("imported_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&importModels).Error; err != nil {
		return nil, 0, err
	}

	imports := make([]*statement.Import, len(importModels))
	for i, model := range importModels {
		imports[i] = model.ToDomain()
	}
	return imports, total, nil
}
