package document

import (
	"fmt"
	"time"

	"github.com/contaflow/backend/internal/domain/shared"
	"github.com/contaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the kind of commercial document
type Type string

const (
	TypeInvoice    Type = "INVOICE"     // factura
	TypeReceipt    Type = "RECEIPT"     // boleta
	TypeTicket     Type = "TICKET"      // ticket de venta
	TypeCreditNote Type = "CREDIT_NOTE" // nota de crédito
	TypeDebitNote  Type = "DEBIT_NOTE"  // nota de débito
	TypeFeeReceipt Type = "FEE_RECEIPT" // recibo por honorarios
)

// IsValid checks if the document type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeInvoice, TypeReceipt, TypeTicket, TypeCreditNote, TypeDebitNote, TypeFeeReceipt:
		return true
	}
	return false
}

// String returns the string representation
func (t Type) String() string {
	return string(t)
}

// AllTypes returns all valid document types
func AllTypes() []Type {
	return []Type{TypeInvoice, TypeReceipt, TypeTicket, TypeCreditNote, TypeDebitNote, TypeFeeReceipt}
}

// OperationKind distinguishes purchases from sales
type OperationKind string

const (
	OperationSale     OperationKind = "SALE"
	OperationPurchase OperationKind = "PURCHASE"
)

// IsValid checks if the operation kind is valid
func (k OperationKind) IsValid() bool {
	return k == OperationSale || k == OperationPurchase
}

// String returns the string representation
func (k OperationKind) String() string {
	return string(k)
}

// PaymentStatus represents the settlement state of a document
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// IsOutstanding returns true if the document still has an unpaid balance
func (s PaymentStatus) IsOutstanding() bool {
	return s == PaymentPending || s == PaymentPartial
}

// CommercialDocument represents an invoice, receipt or note recorded in the
// system. Amounts are tax-exclusive subtotal, VAT amount and the gross total.
type CommercialDocument struct {
	ID               uuid.UUID       `json:"id"`
	DocumentType     Type            `json:"document_type"`
	OperationKind    OperationKind   `json:"operation_kind"`
	Series           string          `json:"series"`
	Number           string          `json:"number"`
	CounterpartyName string          `json:"counterparty_name"`
	IssueDate        time.Time       `json:"issue_date"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewCommercialDocument creates a validated commercial document
func NewCommercialDocument(
	docType Type,
	kind OperationKind,
	series, number, counterparty string,
	issueDate time.Time,
	subtotal, tax, total decimal.Decimal,
) (*CommercialDocument, error) {
	doc := &CommercialDocument{
		ID:               uuid.New(),
		DocumentType:     docType,
		OperationKind:    kind,
		Series:           series,
		Number:           number,
		CounterpartyName: counterparty,
		IssueDate:        issueDate,
		Subtotal:         subtotal,
		Tax:              tax,
		Total:            total,
		PaymentStatus:    PaymentPending,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks the structural invariants of the document
func (d *CommercialDocument) Validate() error {
	if !d.DocumentType.IsValid() {
		return shared.NewDomainError("INVALID_DOCUMENT_TYPE",
			fmt.Sprintf("Unknown document type %q", d.DocumentType))
	}
	if !d.OperationKind.IsValid() {
		return shared.NewDomainError("INVALID_OPERATION_KIND",
			fmt.Sprintf("Unknown operation kind %q", d.OperationKind))
	}
	if d.Subtotal.IsNegative() || d.Tax.IsNegative() || d.Total.IsNegative() {
		return shared.NewDomainError("NEGATIVE_AMOUNT", "Document amounts cannot be negative")
	}
	// total must equal subtotal + tax within the rounding tolerance
	total := valueobject.NewMoneyPEN(d.Total)
	expected := valueobject.NewMoneyPEN(d.Subtotal.Add(d.Tax))
	if !total.EqualsWithinTolerance(expected) {
		return shared.NewDomainError("TOTAL_MISMATCH",
			fmt.Sprintf("Total %s does not equal subtotal %s plus tax %s",
				d.Total.StringFixed(2), d.Subtotal.StringFixed(2), d.Tax.StringFixed(2)))
	}
	return nil
}

// FullNumber returns the display number in SERIES-NUMBER form
func (d *CommercialDocument) FullNumber() string {
	if d.Series == "" {
		return d.Number
	}
	return d.Series + "-" + d.Number
}

// MarkPaid sets the payment status to PAID
func (d *CommercialDocument) MarkPaid() {
	d.PaymentStatus = PaymentPaid
	d.UpdatedAt = time.Now()
}

// MarkPartial sets the payment status to PARTIAL
func (d *CommercialDocument) MarkPartial() {
	d.PaymentStatus = PaymentPartial
	d.UpdatedAt = time.Now()
}
