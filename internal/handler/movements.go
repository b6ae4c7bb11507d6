package handler

import (
	"net/http"

	"github.com/Ak3mix/ventas-pro/internal/apierror"
	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/service"

	"github.com/gin-gonic/gin"
)

type MovementsHandler struct{ svc service.InventoryService }

func NewMovementsHandler(svc service.InventoryService) *MovementsHandler {
	return &MovementsHandler{svc: svc}
}

// Record registers a manual entry or waste movement.
func (h *MovementsHandler) Record(c *gin.Context) {
	var req dto.RecordMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordMovement(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MovementsHandler) List(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
