package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/ledger"
)

// JournalService registers commercial documents and posts their journal
// entries. A document whose generated entry fails validation is not
// persisted at all.
type JournalService struct {
	generator    *ledger.Generator
	validator    *ledger.Validator
	documentRepo document.Repository
	entryRepo    ledger.EntryRepository
	postingStore ledger.PostingStore
}

// NewJournalService creates a new JournalService
func NewJournalService(
	generator *ledger.Generator,
	validator *ledger.Validator,
	documentRepo document.Repository,
	entryRepo ledger.EntryRepository,
	postingStore ledger.PostingStore,
) *JournalService {
	return &JournalService{
		generator:    generator,
		validator:    validator,
		documentRepo: documentRepo,
		entryRepo:    entryRepo,
		postingStore: postingStore,
	}
}

// RegisterDocumentRequest represents a request to register a document
type RegisterDocumentRequest struct {
	DocumentType     string          `json:"document_type" binding:"required"`
	OperationKind    string          `json:"operation_kind" binding:"required,oneof=SALE PURCHASE"`
	Series           string          `json:"series"`
	Number           string          `json:"number" binding:"required"`
	CounterpartyName string          `json:"counterparty_name" binding:"required"`
	IssueDate        time.Time       `json:"issue_date" binding:"required"`
	Subtotal         decimal.Decimal `json:"subtotal" binding:"required"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total" binding:"required"`
}

// RegisterDocumentResponse carries the stored document and its posted entry
type RegisterDocumentResponse struct {
	Document *document.CommercialDocument `json:"document"`
	Entry    *ledger.PostedEntry          `json:"entry"`
}

// RegisterDocument validates the document invariants, generates and
// validates its journal entry, then persists both as one unit.
func (s *JournalService) RegisterDocument(ctx context.Context, req RegisterDocumentRequest) (*RegisterDocumentResponse, error) {
	doc, err := document.NewCommercialDocument(
		document.Type(req.DocumentType),
		document.OperationKind(req.OperationKind),
		req.Series,
		req.Number,
		req.CounterpartyName,
		req.IssueDate,
		req.Subtotal,
		req.Tax,
		req.Total,
	)
	if err != nil {
		return nil, err
	}

	entry, err := s.generator.Generate(doc)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(entry); err != nil {
		return nil, err
	}

	posted := ledger.NewPostedEntry(doc.ID, *entry)
	if err := s.postingStore.PostDocument(ctx, doc, posted); err != nil {
		return nil, err
	}

	return &RegisterDocumentResponse{Document: doc, Entry: posted}, nil
}

// JournalLineRequest is one line of an entry submitted for validation
type JournalLineRequest struct {
	AccountCode string          `json:"account_code" binding:"required"`
	Memo        string          `json:"memo"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// ValidateEntryRequest is an arbitrary entry submitted for validation
type ValidateEntryRequest struct {
	Description string               `json:"description"`
	EntryKind   string               `json:"entry_kind"`
	Lines       []JournalLineRequest `json:"lines" binding:"required"`
}

// ValidateEntry checks an arbitrary entry body against the structural
// invariants without persisting anything.
func (s *JournalService) ValidateEntry(req ValidateEntryRequest) error {
	lines := make([]ledger.JournalLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = ledger.JournalLine{
			AccountCode: line.AccountCode,
			Memo:        line.Memo,
			Debit:       line.Debit,
			Credit:      line.Credit,
		}
	}
	entry := &ledger.JournalEntry{
		Description: req.Description,
		EntryKind:   ledger.EntryKind(req.EntryKind),
		Lines:       lines,
	}
	return s.validator.Validate(entry)
}

// GetDocument loads a document by ID
func (s *JournalService) GetDocument(ctx context.Context, id uuid.UUID) (*document.CommercialDocument, error) {
	return s.documentRepo.FindByID(ctx, id)
}

// ListDocuments returns documents matching the filter plus the total count
func (s *JournalService) ListDocuments(ctx context.Context, filter document.ListFilter) ([]*document.CommercialDocument, int64, error) {
	filter.Limit = normalizeLimit(filter.Limit)
	return s.documentRepo.List(ctx, filter)
}

// GetEntryByDocument loads the posted entry generated for a document
func (s *JournalService) GetEntryByDocument(ctx context.Context, documentID uuid.UUID) (*ledger.PostedEntry, error) {
	return s.entryRepo.FindByDocumentID(ctx, documentID)
}

// ListEntries returns posted entries, newest first
func (s *JournalService) ListEntries(ctx context.Context, limit, offset int) ([]*ledger.PostedEntry, int64, error) {
	return s.entryRepo.List(ctx, normalizeLimit(limit), offset)
}
