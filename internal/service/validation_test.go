package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

func validSubmit() dto.SubmitProblemRequest {
	return dto.SubmitProblemRequest{
		LineNumber:          "Line 7",
		DateSubmitted:       "01/01/2025",
		Task:                "Motor overheating",
		Priority:            "High",
		SubmittedByEngineer: "M. Adel",
	}
}

func TestTrackerValidatorAcceptsValidSubmission(t *testing.T) {
	v := NewTrackerValidator(models.DefaultLines, []string{"M. Adel"})
	assert.NoError(t, v.Struct(validSubmit()))
}

func TestTrackerValidatorReportsFields(t *testing.T) {
	v := NewTrackerValidator(models.DefaultLines, []string{"M. Adel"})

	req := validSubmit()
	req.LineNumber = "Line 99"
	req.DateSubmitted = "2025-01-01"
	req.Priority = "Urgent"
	req.SubmittedByEngineer = "Stranger"
	req.ExpectedDueDate = "31/02/2025"
	req.SpareParts = []models.SparePart{{PartNumber: "P:1", PartName: "Fuse", Quantity: 0}}
	req.TroubleshootingSteps = []string{"a | b", "N/A"}

	err := validationError(v.Struct(req), "invalid problem submission")
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.ElementsMatch(t, []string{
		"line_number",
		"date_submitted",
		"priority",
		"submitted_by_engineer",
		"expected_due_date",
		"spare_parts[0].part_number",
		"spare_parts[0].quantity",
		"troubleshooting_steps[0]",
		"troubleshooting_steps[1]",
	}, appErr.Fields)
}

func TestTrackerValidatorAnyEngineerWhenUnconfigured(t *testing.T) {
	v := NewTrackerValidator(models.DefaultLines, nil)
	req := validSubmit()
	req.SubmittedByEngineer = "Anyone"
	assert.NoError(t, v.Struct(req))

	req.SubmittedByEngineer = ""
	assert.Error(t, v.Struct(req))
}

func TestTrackerValidatorUpdateStatus(t *testing.T) {
	v := NewTrackerValidator(models.DefaultLines, nil)
	assert.NoError(t, v.Struct(dto.UpdateStatusRequest{Status: "IN PROGRESS", AssignedEngineer: "A. Hassan"}))
	assert.Error(t, v.Struct(dto.UpdateStatusRequest{Status: "DONE", AssignedEngineer: "A. Hassan"}))
	assert.Error(t, v.Struct(dto.UpdateStatusRequest{Status: "RESOLVED", AssignedEngineer: "A. Hassan", DateResolved: "yesterday"}))
}
