package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/middleware"
	"github.com/octa-services/plant-tracker/internal/models"
	"github.com/octa-services/plant-tracker/pkg/response"
)

type problemService interface {
	Submit(ctx context.Context, site string, req dto.SubmitProblemRequest) (*models.ProblemRecord, error)
	List(ctx context.Context, site string, filter models.ProblemFilter) ([]models.ProblemRecord, error)
	Get(ctx context.Context, site string, id int) (*models.ProblemRecord, error)
	OpenSelector(ctx context.Context, site string) ([]dto.OpenProblemOption, error)
	UpdateStatus(ctx context.Context, site string, id int, req dto.UpdateStatusRequest) (*models.ProblemRecord, error)
}

// ProblemHandler exposes the submit and update flows.
type ProblemHandler struct {
	service problemService
}

// NewProblemHandler constructs the handler.
func NewProblemHandler(service problemService) *ProblemHandler {
	return &ProblemHandler{service: service}
}

// Submit godoc
// @Summary Submit a new problem
// @Description Records a new OPEN problem. A draft_id pulls in the draft's spare parts and steps.
// @Tags Problems
// @Accept json
// @Produce json
// @Param site path string true "Site"
// @Param payload body dto.SubmitProblemRequest true "Problem payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /sites/{site}/problems [post]
func (h *ProblemHandler) Submit(c *gin.Context) {
	var req dto.SubmitProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid problem payload"))
		return
	}
	record, err := h.service.Submit(c.Request.Context(), middleware.SiteFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// List godoc
// @Summary List problems
// @Tags Problems
// @Produce json
// @Param site path string true "Site"
// @Param line query string false "Line"
// @Param priority query string false "Priority"
// @Param status query string false "Status"
// @Param engineer query string false "Assigned engineer"
// @Success 200 {object} response.Envelope
// @Router /sites/{site}/problems [get]
func (h *ProblemHandler) List(c *gin.Context) {
	var query dto.ProblemQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid query parameters"))
		return
	}
	records, err := h.service.List(c.Request.Context(), middleware.SiteFromContext(c), query.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, map[string]interface{}{"total": len(records)})
}

// Get godoc
// @Summary Get a problem
// @Tags Problems
// @Produce json
// @Param site path string true "Site"
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sites/{site}/problems/{id} [get]
func (h *ProblemHandler) Get(c *gin.Context) {
	id, err := submissionIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.service.Get(c.Request.Context(), middleware.SiteFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// OpenSelector godoc
// @Summary List problems that can still be updated
// @Tags Problems
// @Produce json
// @Param site path string true "Site"
// @Success 200 {object} response.Envelope
// @Router /sites/{site}/problems/open [get]
func (h *ProblemHandler) OpenSelector(c *gin.Context) {
	options, err := h.service.OpenSelector(c.Request.Context(), middleware.SiteFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// UpdateStatus godoc
// @Summary Update a problem's status
// @Description Moves a problem forward through OPEN, IN PROGRESS and RESOLVED.
// @Tags Problems
// @Accept json
// @Produce json
// @Param site path string true "Site"
// @Param id path int true "Submission ID"
// @Param payload body dto.UpdateStatusRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /sites/{site}/problems/{id}/status [patch]
func (h *ProblemHandler) UpdateStatus(c *gin.Context) {
	id, err := submissionIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid update payload"))
		return
	}
	record, err := h.service.UpdateStatus(c.Request.Context(), middleware.SiteFromContext(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}
