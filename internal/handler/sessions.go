package handler

import (
	"fmt"
	"net/http"

	"github.com/Ak3mix/ventas-pro/internal/apierror"
	"github.com/Ak3mix/ventas-pro/internal/export"
	"github.com/Ak3mix/ventas-pro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SessionsHandler struct{ svc service.SessionService }

func NewSessionsHandler(svc service.SessionService) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

// Current returns the open session, creating it if none exists yet.
func (h *SessionsHandler) Current(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close ends the current session and opens its replacement.
func (h *SessionsHandler) Close(c *gin.Context) {
	resp, err := h.svc.Close(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionsHandler) ListClosed(c *gin.Context) {
	sessions, err := h.svc.ListClosed(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessions})
}

func (h *SessionsHandler) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid session id"))
		return
	}
	report, err := h.svc.Report(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportReport streams the session report as an xlsx workbook.
func (h *SessionsHandler) ExportReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid session id"))
		return
	}
	report, err := h.svc.Report(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("reporte-sesion-%s.xlsx", id.String()[:8])
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.SessionReportXLSX(report, c.Writer); err != nil {
		log.Error().Err(err).Str("session_id", id.String()).Msg("xlsx export failed")
	}
}
