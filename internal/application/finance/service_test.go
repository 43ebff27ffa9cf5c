package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaflow/backend/internal/domain/document"
	"github.com/contaflow/backend/internal/domain/ledger"
	"github.com/contaflow/backend/internal/domain/reconciliation"
	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/domain/statement"
)

type fakeImportRepo struct {
	imports map[uuid.UUID]*statement.Import
}

func newFakeImportRepo() *fakeImportRepo {
	return &fakeImportRepo{imports: make(map[uuid.UUID]*statement.Import)}
}

func (r *fakeImportRepo) Save(_ context.Context, imp *statement.Import) error {
	r.imports[imp.ID] = imp
	return nil
}

func (r *fakeImportRepo) FindByID(_ context.Context, id uuid.UUID) (*statement.Import, error) {
	imp, ok := r.imports[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return imp, nil
}

func (r *fakeImportRepo) List(_ context.Context, _, _ int) ([]*statement.Import, int64, error) {
	out := make([]*statement.Import, 0, len(r.imports))
	for _, imp := range r.imports {
		out = append(out, imp)
	}
	return out, int64(len(out)), nil
}

type fakeDocumentRepo struct {
	docs []*document.CommercialDocument
}

func (r *fakeDocumentRepo) Save(_ context.Context, doc *document.CommercialDocument) error {
	r.docs = append(r.docs, doc)
	return nil
}

func (r *fakeDocumentRepo) FindByID(_ context.Context, id uuid.UUID) (*document.CommercialDocument, error) {
	for _, doc := range r.docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDocumentRepo) List(_ context.Context, _ document.ListFilter) ([]*document.CommercialDocument, int64, error) {
	return r.docs, int64(len(r.docs)), nil
}

func (r *fakeDocumentRepo) FindOutstanding(_ context.Context, kind document.OperationKind) ([]*document.CommercialDocument, error) {
	var out []*document.CommercialDocument
	for _, doc := range r.docs {
		if doc.OperationKind == kind && doc.PaymentStatus.IsOutstanding() {
			out = append(out, doc)
		}
	}
	return out, nil
}

type fakeRunRepo struct {
	runs map[uuid.UUID]*reconciliation.Run
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[uuid.UUID]*reconciliation.Run)}
}

func (r *fakeRunRepo) Save(_ context.Context, run *reconciliation.Run) error {
	r.runs[run.ID] = run
	return nil
}

func (r *fakeRunRepo) FindByID(_ context.Context, id uuid.UUID) (*reconciliation.Run, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return run, nil
}

func (r *fakeRunRepo) List(_ context.Context, _, _ int) ([]*reconciliation.Run, int64, error) {
	out := make([]*reconciliation.Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	return out, int64(len(out)), nil
}

type fakeEntryRepo struct {
	entries []*ledger.PostedEntry
}

func (r *fakeEntryRepo) Save(_ context.Context, entry *ledger.PostedEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.PostedEntry, error) {
	for _, entry := range r.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeEntryRepo) FindByDocumentID(_ context.Context, documentID uuid.UUID) (*ledger.PostedEntry, error) {
	for _, entry := range r.entries {
		if entry.DocumentID == documentID {
			return entry, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeEntryRepo) List(_ context.Context, _, _ int) ([]*ledger.PostedEntry, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

// fakePostingStore mirrors the transactional store: both writes land or,
// when failing is set, neither does.
type fakePostingStore struct {
	documentRepo *fakeDocumentRepo
	entryRepo    *fakeEntryRepo
	failing      error
}

func (s *fakePostingStore) PostDocument(ctx context.Context, doc *document.CommercialDocument, entry *ledger.PostedEntry) error {
	if s.failing != nil {
		return s.failing
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return err
	}
	return s.entryRepo.Save(ctx, entry)
}

func TestStatementImportService(t *testing.T) {
	repo := newFakeImportRepo()
	service := NewStatementImportService(statement.NewParser(), repo)

	t.Run("imports and persists movements", func(t *testing.T) {
		raw := "Fecha;Descripción;Operación;Cargo;Abono;Saldo\n" +
			"01/03/2025;PAGO PROVEEDOR ACME;OP123;1500.00;0.00;8500.00\n"

		resp, err := service.Import(context.Background(), ImportStatementRequest{
			BankCode: "BCP",
			Content:  raw,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.MovementCount)
		assert.Equal(t, "2025-03-01", resp.Movements[0].Date)

		stored, err := service.GetImport(context.Background(), resp.ID)
		require.NoError(t, err)
		assert.Equal(t, resp.MovementCount, stored.MovementCount)
	})

	t.Run("unusable input stores an empty import", func(t *testing.T) {
		resp, err := service.Import(context.Background(), ImportStatementRequest{
			Content: "Concepto,Importe\nALGO,100.00\n",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.MovementCount)
	})
}

func TestReconciliationService(t *testing.T) {
	importRepo := newFakeImportRepo()
	documentRepo := &fakeDocumentRepo{}
	runRepo := newFakeRunRepo()
	service := NewReconciliationService(reconciliation.NewMatcher(), importRepo, documentRepo, runRepo)

	doc, err := document.NewCommercialDocument(
		document.TypeInvoice, document.OperationSale,
		"F001", "000123", "ACME SAC",
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		decimal.NewFromFloat(1000.00),
		decimal.NewFromFloat(180.00),
		decimal.NewFromFloat(1180.00),
	)
	require.NoError(t, err)
	require.NoError(t, documentRepo.Save(context.Background(), doc))

	paidDoc, err := document.NewCommercialDocument(
		document.TypeInvoice, document.OperationSale,
		"F001", "000124", "OTRA EMPRESA",
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		decimal.NewFromFloat(1000.00),
		decimal.NewFromFloat(180.00),
		decimal.NewFromFloat(1180.00),
	)
	require.NoError(t, err)
	paidDoc.MarkPaid()
	require.NoError(t, documentRepo.Save(context.Background(), paidDoc))

	imp := statement.NewImport("BCP", []statement.BankMovement{{
		Date:        "2025-03-05",
		Description: "TRANSFERENCIA ACME SAC",
		Amount:      decimal.NewFromFloat(1180.00),
		Direction:   statement.DirectionCredit,
	}})
	require.NoError(t, importRepo.Save(context.Background(), imp))

	t.Run("matches against outstanding documents only", func(t *testing.T) {
		resp, err := service.Run(context.Background(), RunReconciliationRequest{
			ImportID:      imp.ID,
			OperationKind: "SALE",
		})
		require.NoError(t, err)
		require.Len(t, resp.Paired, 1)
		assert.Equal(t, doc.ID, resp.Paired[0].DocumentID)
		assert.Equal(t, "0.89", resp.Paired[0].Confidence.StringFixed(2))
		assert.False(t, resp.Paired[0].NeedsReview)
		assert.Equal(t, 1, resp.MatchedCount)
		assert.Equal(t, 0, resp.ReviewCount)

		stored, err := service.GetRun(context.Background(), resp.ID)
		require.NoError(t, err)
		assert.Equal(t, resp.MatchedCount, stored.MatchedCount)
	})

	t.Run("unknown import id fails", func(t *testing.T) {
		_, err := service.Run(context.Background(), RunReconciliationRequest{
			ImportID:      uuid.New(),
			OperationKind: "SALE",
		})
		assert.Error(t, err)
	})
}

func TestJournalService(t *testing.T) {
	newService := func() (*JournalService, *fakeDocumentRepo, *fakeEntryRepo, *fakePostingStore) {
		documentRepo := &fakeDocumentRepo{}
		entryRepo := &fakeEntryRepo{}
		store := &fakePostingStore{documentRepo: documentRepo, entryRepo: entryRepo}
		service := NewJournalService(
			ledger.NewGenerator(),
			ledger.NewValidator(ledger.DefaultCatalog()),
			documentRepo,
			entryRepo,
			store,
		)
		return service, documentRepo, entryRepo, store
	}

	validRequest := RegisterDocumentRequest{
		DocumentType:     "INVOICE",
		OperationKind:    "SALE",
		Series:           "F001",
		Number:           "000123",
		CounterpartyName: "ACME SAC",
		IssueDate:        time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Subtotal:         decimal.NewFromFloat(1000.00),
		Tax:              decimal.NewFromFloat(180.00),
		Total:            decimal.NewFromFloat(1180.00),
	}

	t.Run("registers document and posts its entry", func(t *testing.T) {
		service, documentRepo, entryRepo, _ := newService()

		resp, err := service.RegisterDocument(context.Background(), validRequest)
		require.NoError(t, err)
		assert.Len(t, documentRepo.docs, 1)
		assert.Len(t, entryRepo.entries, 1)
		assert.Equal(t, ledger.KindSale, resp.Entry.Entry.EntryKind)
		assert.Len(t, resp.Entry.Entry.Lines, 3)

		stored, err := service.GetEntryByDocument(context.Background(), resp.Document.ID)
		require.NoError(t, err)
		assert.Equal(t, resp.Entry.ID, stored.ID)
	})

	t.Run("total mismatch blocks persistence", func(t *testing.T) {
		service, documentRepo, entryRepo, _ := newService()

		req := validRequest
		req.Total = decimal.NewFromFloat(1200.00)
		_, err := service.RegisterDocument(context.Background(), req)
		require.Error(t, err)
		assert.Empty(t, documentRepo.docs)
		assert.Empty(t, entryRepo.entries)
	})

	t.Run("storage failure leaves no partial state", func(t *testing.T) {
		service, documentRepo, entryRepo, store := newService()
		store.failing = errors.New("db connection lost")

		_, err := service.RegisterDocument(context.Background(), validRequest)
		require.Error(t, err)
		assert.Empty(t, documentRepo.docs)
		assert.Empty(t, entryRepo.entries)
	})

	t.Run("validates an arbitrary entry body", func(t *testing.T) {
		service, _, _, _ := newService()

		err := service.ValidateEntry(ValidateEntryRequest{
			EntryKind: "SALE",
			Lines: []JournalLineRequest{
				{AccountCode: ledger.AccountReceivables, Debit: decimal.NewFromFloat(100.00)},
				{AccountCode: ledger.AccountSalesRevenue, Credit: decimal.NewFromFloat(99.99)},
			},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, ledger.CodeUnbalancedEntry, domainErr.Code)
	})
}
