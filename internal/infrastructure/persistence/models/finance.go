package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/ledger"
	"github.com/contaflow/backend/internal/domain/reconciliation"
	"github.com/contaflow/backend/internal/domain/statement"
)

// CommercialDocumentModel maps commercial documents to the database
type CommercialDocumentModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	DocumentType     string          `gorm:"type:varchar(20);not null;index"`
	OperationKind    string          `gorm:"type:varchar(10);not null;index"`
	Series           string          `gorm:"type:varchar(20)"`
	Number           string          `gorm:"type:varchar(30);not null"`
	CounterpartyName string          `gorm:"type:varchar(255);not null"`
	IssueDate        time.Time       `gorm:"not null;index"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tax              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentStatus    string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (CommercialDocumentModel) TableName() string {
	return "commercial_documents"
}

// ToDomain converts the model to a domain document
func (m *CommercialDocumentModel) ToDomain() *document.CommercialDocument {
	return &document.CommercialDocument{
		ID:               m.ID,
		DocumentType:     document.Type(m.DocumentType),
		OperationKind:    document.OperationKind(m.OperationKind),
		Series:           m.Series,
		Number:           m.Number,
		CounterpartyName: m.CounterpartyName,
		IssueDate:        m.IssueDate,
		Subtotal:         m.Subtotal,
		Tax:              m.Tax,
		Total:            m.Total,
		PaymentStatus:    document.PaymentStatus(m.PaymentStatus),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain populates the model from a domain document
func (m *CommercialDocumentModel) FromDomain(doc *document.CommercialDocument) {
	m.ID = doc.ID
	m.DocumentType = doc.DocumentType.String()
	m.OperationKind = doc.OperationKind.String()
	m.Series = doc.Series
	m.Number = doc.Number
	m.CounterpartyName = doc.CounterpartyName
	m.IssueDate = doc.IssueDate
	m.Subtotal = doc.Subtotal
	m.Tax = doc.Tax
	m.Total = doc.Total
	m.PaymentStatus = doc.PaymentStatus.String()
	m.CreatedAt = doc.CreatedAt
	m.UpdatedAt = doc.UpdatedAt
}

// StatementImportModel maps statement imports to the database
type StatementImportModel struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key"`
	BankCode   string              `gorm:"type:varchar(20)"`
	ImportedAt time.Time           `gorm:"not null;index"`
	Movements  []BankMovementModel `gorm:"foreignKey:ImportID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (StatementImportModel) TableName() string {
	return "statement_imports"
}

// BankMovementModel maps one ingested movement to the database.
// Position preserves file order within an import.
type BankMovementModel struct {
	ID             int64            `gorm:"primary_key;autoIncrement"`
	ImportID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Position       int              `gorm:"not null"`
	Date           string           `gorm:"type:varchar(20);not null"`
	Description    string           `gorm:"type:text"`
	Reference      string           `gorm:"type:varchar(50)"`
	Amount         decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	Direction      string           `gorm:"type:varchar(6);not null"`
	RunningBalance *decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the table name
func (BankMovementModel) TableName() string {
	return "bank_movements"
}

// ToDomain converts the import model with its movements
func (m *StatementImportModel) ToDomain() *statement.Import {
	movements := make([]statement.BankMovement, len(m.Movements))
	for i, movement := range m.Movements {
		movements[i] = statement.BankMovement{
			Date:           movement.Date,
			Description:    movement.Description,
			Reference:      movement.Reference,
			Amount:         movement.Amount,
			Direction:      statement.Direction(movement.Direction),
			RunningBalance: movement.RunningBalance,
		}
	}
	return &statement.Import{
		ID:         m.ID,
		BankCode:   m.BankCode,
		Movements:  movements,
		ImportedAt: m.ImportedAt,
	}
}

// FromDomain populates the model from an import aggregate
func (m *StatementImportModel) FromDomain(imp *statement.Import) {
	m.ID = imp.ID
	m.BankCode = imp.BankCode
	m.ImportedAt = imp.ImportedAt
	m.Movements = make([]BankMovementModel, len(imp.Movements))
	for i, movement := range imp.Movements {
		m.Movements[i] = BankMovementModel{
			ImportID:       imp.ID,
			Position:       i,
			Date:           movement.Date,
			Description:    movement.Description,
			Reference:      movement.Reference,
			Amount:         movement.Amount,
			Direction:      movement.Direction.String(),
			RunningBalance: movement.RunningBalance,
		}
	}
}

// ReconciliationRunModel maps reconciliation runs to the database.
// The full result (pairs and residues) is stored as JSONB; the counts
// are denormalized for listing.
type ReconciliationRunModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ImportID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OperationKind string    `gorm:"type:varchar(10);not null"`
	MatchedCount  int       `gorm:"not null"`
	ReviewCount   int       `gorm:"not null"`
	Result        []byte    `gorm:"type:jsonb;not null"`
	ExecutedAt    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name
func (ReconciliationRunModel) TableName() string {
	return "reconciliation_runs"
}

// ToDomain converts the model to a run aggregate
func (m *ReconciliationRunModel) ToDomain() (*reconciliation.Run, error) {
	var result reconciliation.Result
	if err := json.Unmarshal(m.Result, &result); err != nil {
		return nil, err
	}
	return &reconciliation.Run{
		ID:            m.ID,
		ImportID:      m.ImportID,
		OperationKind: document.OperationKind(m.OperationKind),
		Result:        result,
		ExecutedAt:    m.ExecutedAt,
	}, nil
}

// FromDomain populates the model from a run aggregate
func (m *ReconciliationRunModel) FromDomain(run *reconciliation.Run) error {
	payload, err := json.Marshal(run.Result)
	if err != nil {
		return err
	}
	m.ID = run.ID
	m.ImportID = run.ImportID
	m.OperationKind = run.OperationKind.String()
	m.MatchedCount = run.MatchedCount()
	m.ReviewCount = run.ReviewCount()
	m.Result = payload
	m.ExecutedAt = run.ExecutedAt
	return nil
}

// JournalEntryModel maps posted journal entries to the database
type JournalEntryModel struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key"`
	DocumentID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	Description string             `gorm:"type:varchar(255);not null"`
	EntryKind   string             `gorm:"type:varchar(30);not null"`
	PostedAt    time.Time          `gorm:"not null;index"`
	Lines       []JournalLineModel `gorm:"foreignKey:EntryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// JournalLineModel maps one journal line to the database.
// Position preserves line order within an entry.
type JournalLineModel struct {
	ID          int64           `gorm:"primary_key;autoIncrement"`
	EntryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	AccountCode string          `gorm:"type:varchar(10);not null"`
	Memo        string          `gorm:"type:varchar(255)"`
	Debit       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Credit      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName specifies the table name
func (JournalLineModel) TableName() string {
	return "journal_lines"
}

// ToDomain converts the model with its lines to a posted entry
func (m *JournalEntryModel) ToDomain() *ledger.PostedEntry {
	lines := make([]ledger.JournalLine, len(m.Lines))
	for i, line := range m.Lines {
		lines[i] = ledger.JournalLine{
			AccountCode: line.AccountCode,
			Memo:        line.Memo,
			Debit:       line.Debit,
			Credit:      line.Credit,
		}
	}
	return &ledger.PostedEntry{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		Entry: ledger.JournalEntry{
			Description: m.Description,
			EntryKind:   ledger.EntryKind(m.EntryKind),
			Lines:       lines,
		},
		PostedAt: m.PostedAt,
	}
}

// FromDomain populates the model from a posted entry
func (m *JournalEntryModel) FromDomain(entry *ledger.PostedEntry) {
	m.ID = entry.ID
	m.DocumentID = entry.DocumentID
	m.Description = entry.Entry.Description
	m.EntryKind = entry.Entry.EntryKind.String()
	m.PostedAt = entry.PostedAt
	m.Lines = make([]JournalLineModel, len(entry.Entry.Lines))
	for i, line := range entry.Entry.Lines {
		m.Lines[i] = JournalLineModel{
			EntryID:     entry.ID,
			Position:    i,
			AccountCode: line.AccountCode,
			Memo:        line.Memo,
			Debit:       line.Debit,
			Credit:      line.Credit,
		}
	}
}
