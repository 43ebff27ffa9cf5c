package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contaflow/backend/internal/domain/reconciliation"
	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/infrastructure/persistence/models"
)

// GormReconciliationRunRepository implements reconciliation.RunRepository using GORM
type GormReconciliationRunRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRunRepository creates a new GormReconciliationRunRepository
func NewGormReconciliationRunRepository(db *gorm.DB) *GormReconciliationRunRepository {
	return &GormReconciliationRunRepository{db: db}
}

// Save persists the run with its pairs and residues
func (r *GormReconciliationRunRepository) Save(ctx context.Context, run *reconciliation.Run) error {
	var model models.ReconciliationRunModel
	if err := model.FromDomain(run); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID loads a run
func (r *GormReconciliationRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*reconciliation.Run, error) {
	var model models.ReconciliationRunModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// List returns runs ordered by execution time descending
func (r *GormReconciliationRunRepository) List(ctx context.Context, limit, offset int) ([]*reconciliation.Run, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ReconciliationRunModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var runModels []models.ReconciliationRunModel
	if err := r.db.WithContext(ctx).
		Order("executed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runModels).Error; err != nil {
		return nil, 0, err
	}

	runs := make([]*reconciliation.Run, len(runModels))
	for i, model := range runModels {
		run, err := model.ToDomain()
		if err != nil {
			return nil, 0, err
		}
		runs[i] = run
	}
	return runs, total, nil
}
