package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/middleware"
	"github.com/octa-services/plant-tracker/internal/models"
	"github.com/octa-services/plant-tracker/internal/service"
	"github.com/octa-services/plant-tracker/pkg/response"
)

type dashboardService interface {
	Dashboard(ctx context.Context, site string, filter models.ProblemFilter) (*dto.DashboardResponse, bool, error)
	History(ctx context.Context, site, line, engineer string) (*dto.HistoryResponse, bool, error)
}

type historyExporter interface {
	History(history *dto.HistoryResponse, format service.ExportFormat) (*service.ExportResult, error)
}

// DashboardHandler serves the dashboard and history views.
type DashboardHandler struct {
	service dashboardService
	exports historyExporter
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, exports historyExporter) *DashboardHandler {
	return &DashboardHandler{service: service, exports: exports}
}

// Dashboard godoc
// @Summary Active problems dashboard
// @Tags Dashboard
// @Produce json
// @Param site path string true "Site"
// @Param line query string false "Line"
// @Param priority query string false "Priority"
// @Param status query string false "OPEN or IN PROGRESS"
// @Success 200 {object} response.Envelope
// @Router /sites/{site}/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	var query dto.ProblemQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid query parameters"))
		return
	}
	summary, cacheHit, err := h.service.Dashboard(c.Request.Context(), middleware.SiteFromContext(c), query.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, middleware.ResponseMeta(c, cacheHit))
}

// History godoc
// @Summary Resolved problems history
// @Tags Dashboard
// @Produce json
// @Param site path string true "Site"
// @Param line query string false "Line"
// @Param engineer query string false "Assigned engineer"
// @Success 200 {object} response.Envelope
// @Router /sites/{site}/history [get]
func (h *DashboardHandler) History(c *gin.Context) {
	line := strings.TrimSpace(c.Query("line"))
	engineer := strings.TrimSpace(c.Query("engineer"))
	history, cacheHit, err := h.service.History(c.Request.Context(), middleware.SiteFromContext(c), line, engineer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, middleware.ResponseMeta(c, cacheHit))
}

// ExportHistory godoc
// @Summary Export resolved problems history
// @Tags Dashboard
// @Produce text/csv
// @Produce application/pdf
// @Param site path string true "Site"
// @Param line query string false "Line"
// @Param engineer query string false "Assigned engineer"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /sites/{site}/history/export [get]
func (h *DashboardHandler) ExportHistory(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	line := strings.TrimSpace(c.Query("line"))
	engineer := strings.TrimSpace(c.Query("engineer"))
	history, _, err := h.service.History(c.Request.Context(), middleware.SiteFromContext(c), line, engineer)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.History(history, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
