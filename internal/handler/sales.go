package handler

import (
	"net/http"

	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Checkout registers a sale against the current session.
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Sync applies a batch of offline sales. The response carries one result
// per element; a rejected element never aborts the batch, so the caller
// always gets a 200 with per-sale statuses.
func (h *SalesHandler) Sync(c *gin.Context) {
	var req dto.SyncBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	results, err := h.svc.SyncBatch(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
