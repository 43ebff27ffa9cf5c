package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/infrastructure/persistence/models"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Save persists a document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.CommercialDocument) error {
	var model models.CommercialDocumentModel
	model.FromDomain(doc)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a document by ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.CommercialDocument, error) {
	var model models.CommercialDocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns documents matching the filter plus the total count
func (r *GormDocumentRepository) List(ctx context.Context, filter document.ListFilter) ([]*document.CommercialDocument, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CommercialDocumentModel{})
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus.String())
	}
	if filter.OperationKind != "" {
		query = query.Where("operation_kind = ?", filter.OperationKind.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documentModels []models.CommercialDocumentModel
	if err := query.
		Order("issue_date DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&documentModels).Error; err != nil {
		return nil, 0, err
	}

	documents := make([]*document.CommercialDocument, len(documentModels))
	for i, model := range documentModels {
		documents[i] = model.ToDomain()
	}
	return documents, total, nil
}

// FindOutstanding returns pending and partially paid documents of the
// given operation kind, in issue-date order
func (r *GormDocumentRepository) FindOutstanding(ctx context.Context, kind document.OperationKind) ([]*document.CommercialDocument, error) {
	var documentModels []models.CommercialDocumentModel
	if err := r.db.WithContext(ctx).
		Where("operation_kind = ? AND payment_status IN ?",
			kind.String(),
			[]string{document.PaymentPending.String(), document.PaymentPartial.String()}).
		Order("issue_date ASC, created_at ASC").
		Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]*document.CommercialDocument, len(documentModels))
	for i, model := range documentModels {
		documents[i] = model.ToDomain()
	}
	return documents, nil
}
