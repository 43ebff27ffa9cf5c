package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/contaflow/backend/internal/application/finance"
	"github.com/contaflow/backend/internal/domain/document"
)

// JournalHandler handles commercial document registration and journal
// entry endpoints
type JournalHandler struct {
	BaseHandler
	service *financeapp.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(service *financeapp.JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// RegisterDocument registers a commercial document and posts its journal
// entry. If the generated entry fails validation nothing is persisted.
func (h *JournalHandler) RegisterDocument(c *gin.Context) {
	var req financeapp.RegisterDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+bindingErrorMessage(err))
		return
	}

	resp, err := h.service.RegisterDocument(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetDocument returns a registered document
func (h *JournalHandler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.service.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// documentListQuery extends the common pagination query with document filters
type documentListQuery struct {
	listQuery
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=PENDING PARTIAL PAID"`
	OperationKind string `form:"operation_kind" binding:"omitempty,oneof=SALE PURCHASE"`
}

// ListDocuments returns registered documents, optionally filtered by
// payment status and operation kind
func (h *JournalHandler) ListDocuments(c *gin.Context) {
	var req documentListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+bindingErrorMessage(err))
		return
	}
	if req.Limit == 0 {
		req.Limit = 50
	}

	filter := document.ListFilter{
		PaymentStatus: document.PaymentStatus(req.PaymentStatus),
		OperationKind: document.OperationKind(req.OperationKind),
		Limit:         req.Limit,
		Offset:        req.Offset,
	}
	docs, total, err := h.service.ListDocuments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, docs, total, req.Limit, req.Offset, len(docs))
}

// GetDocumentEntry returns the journal entry posted for a document
func (h *JournalHandler) GetDocumentEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	entry, err := h.service.GetEntryByDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// ValidateEntry checks an arbitrary journal entry body against the
// structural invariants without persisting anything. A valid entry
// returns {"valid": true}; an invalid one returns the violation code.
func (h *JournalHandler) ValidateEntry(c *gin.Context) {
	var req financeapp.ValidateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+bindingErrorMessage(err))
		return
	}

	if err := h.service.ValidateEntry(req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"valid": true})
}

// ListEntries returns posted journal entries, newest first
func (h *JournalHandler) ListEntries(c *gin.Context) {
	var req listQuery
	if !req.bind(c, &h.BaseHandler) {
		return
	}

	entries, total, err := h.service.ListEntries(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, req.Limit, req.Offset, len(entries))
}

// RegisterRoutes registers document and journal routes
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.POST("", h.RegisterDocument)
		documents.GET("", h.ListDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.GET("/:id/entry", h.GetDocumentEntry)
	}

	journal := rg.Group("/journal")
	{
		journal.POST("/validate", h.ValidateEntry)
		journal.GET("/entries", h.ListEntries)
	}
}
