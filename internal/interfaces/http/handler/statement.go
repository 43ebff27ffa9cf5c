package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/contaflow/backend/internal/application/finance"
)

// StatementHandler handles bank statement import endpoints
type StatementHandler struct {
	BaseHandler
	service *financeapp.StatementImportService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(service *financeapp.StatementImportService) *StatementHandler {
	return &StatementHandler{service: service}
}

// Import parses a raw bank statement export and stores the resulting
// movements. Rows that cannot be interpreted are dropped, so an unusable
// payload still succeeds with zero movements.
func (h *StatementHandler) Import(c *gin.Context) {
	var req financeapp.ImportStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+bindingErrorMessage(err))
		return
	}

	resp, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a stored import with its movements
func (h *StatementHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid import ID")
		return
	}

	resp, err := h.service.GetImport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns stored imports, newest first
func (h *StatementHandler) List(c *gin.Context) {
	var req listQuery
	if !req.bind(c, &h.BaseHandler) {
		return
	}

	imports, total, err := h.service.ListImports(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, imports, total, req.Limit, req.Offset, len(imports))
}

// RegisterRoutes registers statement import routes
func (h *StatementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	statements := rg.Group("/statements")
	{
		statements.POST("/import", h.Import)
		statements.GET("", h.List)
		statements.GET("/:id", h.Get)
	}
}
