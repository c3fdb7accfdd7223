package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/pkg/response"
)

// SiteHandler serves the configured sites and form vocabularies.
type SiteHandler struct {
	catalog dto.SitesResponse
}

// NewSiteHandler constructs the handler.
func NewSiteHandler(catalog dto.SitesResponse) *SiteHandler {
	return &SiteHandler{catalog: catalog}
}

// List godoc
// @Summary List sites and form options
// @Tags Sites
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sites [get]
func (h *SiteHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog)
}
