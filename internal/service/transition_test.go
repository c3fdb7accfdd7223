package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

func openRecord() models.ProblemRecord {
	return models.ProblemRecord{
		SubmissionID:        3,
		LineNumber:          "Line 7",
		DateSubmitted:       "01/01/2025",
		Task:                "Conveyor jam",
		Priority:            models.PriorityHigh,
		Status:              models.StatusOpen,
		SubmittedByEngineer: "M. Adel",
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.Status
		want     bool
	}{
		{models.StatusOpen, models.StatusInProgress, true},
		{models.StatusOpen, models.StatusResolved, true},
		{models.StatusOpen, models.StatusOpen, true},
		{models.StatusInProgress, models.StatusResolved, true},
		{models.StatusInProgress, models.StatusInProgress, true},
		{models.StatusInProgress, models.StatusOpen, false},
		{models.StatusResolved, models.StatusOpen, false},
		{models.StatusResolved, models.StatusInProgress, false},
		{models.StatusResolved, models.StatusResolved, false},
		{models.Status("CLOSED"), models.StatusResolved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplyUpdateResolvedRequiresNotes(t *testing.T) {
	_, _, err := ApplyUpdate(openRecord(), dto.UpdateStatusRequest{
		Status:           string(models.StatusResolved),
		AssignedEngineer: "A. Hassan",
		DateResolved:     "04/01/2025",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, []string{"resolution_notes"}, appErr.Fields)
}

func TestApplyUpdateRequiresEngineer(t *testing.T) {
	_, _, err := ApplyUpdate(openRecord(), dto.UpdateStatusRequest{Status: string(models.StatusInProgress), AssignedEngineer: "  "})
	require.Error(t, err)
	assert.Equal(t, []string{"assigned_engineer"}, appErrors.FromError(err).Fields)
}

func TestApplyUpdateResolves(t *testing.T) {
	record := openRecord()
	updated, changes, err := ApplyUpdate(record, dto.UpdateStatusRequest{
		Status:           string(models.StatusResolved),
		AssignedEngineer: "A. Hassan",
		DateResolved:     "04/01/2025",
		ResolutionNotes:  "replaced fuse",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusResolved, updated.Status)
	assert.Equal(t, "3", updated.DaysToResolve)
	assert.Equal(t, record.Task, updated.Task)
	assert.Equal(t, record.SubmissionID, updated.SubmissionID)

	fields := make([]models.Field, len(changes))
	for i, c := range changes {
		fields[i] = c.Field
		assert.True(t, c.Field.Updatable())
	}
	assert.Equal(t, []models.Field{
		models.FieldStatus,
		models.FieldAssignedEngineer,
		models.FieldDateResolved,
		models.FieldResolutionNotes,
		models.FieldDaysToResolve,
	}, fields)
}

func TestApplyUpdateUnparseableDateGivesNA(t *testing.T) {
	record := openRecord()
	record.DateSubmitted = "sometime"
	updated, _, err := ApplyUpdate(record, dto.UpdateStatusRequest{
		Status:           string(models.StatusResolved),
		AssignedEngineer: "A. Hassan",
		DateResolved:     "04/01/2025",
		ResolutionNotes:  "replaced fuse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.NotAvailable, updated.DaysToResolve)
}

func TestApplyUpdateWritesOnlyChangedColumns(t *testing.T) {
	record := openRecord()
	record.Status = models.StatusInProgress
	record.AssignedEngineer = "A. Hassan"

	_, changes, err := ApplyUpdate(record, dto.UpdateStatusRequest{
		Status:           string(models.StatusInProgress),
		AssignedEngineer: "B. Nabil",
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, models.FieldAssignedEngineer, changes[0].Field)
	assert.Equal(t, "B. Nabil", changes[0].Value)
}

func TestApplyUpdateRejectsLeavingResolved(t *testing.T) {
	record := openRecord()
	record.Status = models.StatusResolved
	record.AssignedEngineer = "A. Hassan"

	_, _, err := ApplyUpdate(record, dto.UpdateStatusRequest{Status: string(models.StatusOpen), AssignedEngineer: "A. Hassan"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidTransition))
}
