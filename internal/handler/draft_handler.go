package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/middleware"
	"github.com/octa-services/plant-tracker/internal/models"
	"github.com/octa-services/plant-tracker/pkg/response"
)

type composerService interface {
	Create(site string) models.Draft
	Get(site, id string) (models.Draft, error)
	AddSparePart(site, id string, entry models.SparePart) (models.Draft, bool, error)
	AddStep(site, id, text string) (models.Draft, bool, error)
	Cancel(site, id string) error
}

// DraftHandler exposes the composer used to build up spare parts and
// troubleshooting steps before submitting.
type DraftHandler struct {
	composer composerService
}

// NewDraftHandler constructs the handler.
func NewDraftHandler(composer composerService) *DraftHandler {
	return &DraftHandler{composer: composer}
}

// Create godoc
// @Summary Open a draft
// @Tags Drafts
// @Produce json
// @Param site path string true "Site"
// @Success 201 {object} response.Envelope
// @Router /sites/{site}/drafts [post]
func (h *DraftHandler) Create(c *gin.Context) {
	response.Created(c, h.composer.Create(middleware.SiteFromContext(c)))
}

// Get godoc
// @Summary Get a draft
// @Tags Drafts
// @Produce json
// @Param site path string true "Site"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sites/{site}/drafts/{draftId} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.composer.Get(middleware.SiteFromContext(c), c.Param("draftId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// AddSparePart godoc
// @Summary Add a spare part to a draft
// @Description Entries without a part number or name are ignored; accepted reports whether it was kept.
// @Tags Drafts
// @Accept json
// @Produce json
// @Param site path string true "Site"
// @Param draftId path string true "Draft ID"
// @Param payload body dto.AddSparePartRequest true "Spare part"
// @Success 200 {object} response.Envelope
// @Router /sites/{site}/drafts/{draftId}/spare-parts [post]
func (h *DraftHandler) AddSparePart(c *gin.Context) {
	var req dto.AddSparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid spare part payload"))
		return
	}
	draft, accepted, err := h.composer.AddSparePart(middleware.SiteFromContext(c), c.Param("draftId"), models.SparePart{
		PartNumber: req.PartNumber,
		PartName:   req.PartName,
		InStock:    req.InStock,
		Quantity:   req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DraftResponse{Draft: draft, Accepted: accepted})
}

// AddStep godoc
// @Summary Add a troubleshooting step to a draft
// @Tags Drafts
// @Accept json
// @Produce json
// @Param site path string true "Site"
// @Param draftId path string true "Draft ID"
// @Param payload body dto.AddStepRequest true "Step"
// @Success 200 {object} response.Envelope
// @Router /sites/{site}/drafts/{draftId}/steps [post]
func (h *DraftHandler) AddStep(c *gin.Context) {
	var req dto.AddStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid step payload"))
		return
	}
	draft, accepted, err := h.composer.AddStep(middleware.SiteFromContext(c), c.Param("draftId"), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DraftResponse{Draft: draft, Accepted: accepted})
}

// Cancel godoc
// @Summary Cancel a draft
// @Tags Drafts
// @Param site path string true "Site"
// @Param draftId path string true "Draft ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /sites/{site}/drafts/{draftId} [delete]
func (h *DraftHandler) Cancel(c *gin.Context) {
	if err := h.composer.Cancel(middleware.SiteFromContext(c), c.Param("draftId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
