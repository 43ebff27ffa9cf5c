package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/contaflow/backend/internal/application/finance"
)

// ReconciliationHandler handles reconciliation run endpoints
type ReconciliationHandler struct {
	BaseHandler
	service *financeapp.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(service *financeapp.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// Run executes a reconciliation of an import's movements against the
// outstanding documents of the requested operation kind and stores the result.
func (h *ReconciliationHandler) Run(c *gin.Context) {
	var req financeapp.RunReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+bindingErrorMessage(err))
		return
	}

	resp, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a stored reconciliation run
func (h *ReconciliationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid run ID")
		return
	}

	resp, err := h.service.GetRun(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns stored reconciliation runs, newest first
func (h *ReconciliationHandler) List(c *gin.Context) {
	var req listQuery
	if !req.bind(c, &h.BaseHandler) {
		return
	}

	runs, total, err := h.service.ListRuns(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, runs, total, req.Limit, req.Offset, len(runs))
}

// RegisterRoutes registers reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	runs := rg.Group("/reconciliation/runs")
	{
		runs.POST("", h.Run)
		runs.GET("", h.List)
		runs.GET("/:id", h.Get)
	}
}
