package service

import (
	"fmt"
	"strings"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

// allowedTransitions lists the target states reachable from each state.
// Staying in an active state is allowed so the assigned engineer can change.
// RESOLVED is terminal.
var allowedTransitions = map[models.Status][]models.Status{
	models.StatusOpen:       {models.StatusOpen, models.StatusInProgress, models.StatusResolved},
	models.StatusInProgress: {models.StatusInProgress, models.StatusResolved},
}

// CanTransition reports whether a record in state from may move to state to.
func CanTransition(from, to models.Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// FieldChange is one column the update flow must write back.
type FieldChange struct {
	Field models.Field
	Value string
}

// ApplyUpdate validates req against the current record and returns the
// updated record plus the columns whose stored text changed, in schema order.
// Fields outside the update set are never touched.
func ApplyUpdate(record models.ProblemRecord, req dto.UpdateStatusRequest) (models.ProblemRecord, []FieldChange, error) {
	target := models.Status(strings.TrimSpace(req.Status))
	engineer := strings.TrimSpace(req.AssignedEngineer)
	dateResolved := strings.TrimSpace(req.DateResolved)
	notes := strings.TrimSpace(req.ResolutionNotes)

	var missing []string
	if !target.Valid() {
		missing = append(missing, "status")
	}
	if engineer == "" {
		missing = append(missing, "assigned_engineer")
	}
	if target == models.StatusResolved {
		if dateResolved == "" {
			missing = append(missing, "date_resolved")
		}
		if notes == "" {
			missing = append(missing, "resolution_notes")
		}
	}
	if len(missing) > 0 {
		return record, nil, appErrors.Validation("update is missing required fields", missing...)
	}

	if !CanTransition(record.Status, target) {
		return record, nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move problem %d from %s to %s", record.SubmissionID, record.Status, target))
	}

	updated := record
	updated.Status = target
	updated.AssignedEngineer = engineer
	updated.ResolutionNotes = notes
	if target == models.StatusResolved {
		updated.DateResolved = dateResolved
		updated.DaysToResolve = models.FormatDays(models.ComputeDaysToResolve(record.DateSubmitted, dateResolved))
	} else {
		updated.DateResolved = ""
		updated.DaysToResolve = ""
	}

	var changes []FieldChange
	for _, field := range models.UpdatableFields {
		if value := updated.Value(field); value != record.Value(field) {
			changes = append(changes, FieldChange{Field: field, Value: value})
		}
	}
	return updated, changes, nil
}
