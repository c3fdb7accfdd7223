package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/models"
)

func TestSiteHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSiteHandler(dto.SitesResponse{
		Sites:          []string{"plant-a", "plant-b"},
		Lines:          models.DefaultLines,
		ActiveStatuses: models.ActiveStatuses,
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/sites", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, []interface{}{"plant-a", "plant-b"}, envelope.Data["sites"])
	assert.Equal(t, []interface{}{"OPEN", "IN PROGRESS"}, envelope.Data["active_statuses"])
}
