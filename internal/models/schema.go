package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a sheet column. The value is the header text written to row 1.
type Field string

const (
	FieldSubmissionID         Field = "Submission_ID"
	FieldLineNumber           Field = "Line_Number"
	FieldDateSubmitted        Field = "Date_Submitted"
	FieldTask                 Field = "Task"
	FieldSpareParts           Field = "Spare_Parts_Data"
	FieldPriority             Field = "Priority"
	FieldNotes                Field = "Notes"
	FieldStatus               Field = "Status"
	FieldSubmittedByEngineer  Field = "Submitted_By_Engineer"
	FieldExpectedDueDate      Field = "Expected_Due_Date"
	FieldTroubleshootingSteps Field = "Troubleshooting_Steps"
	FieldAssignedEngineer     Field = "Assigned_Engineer"
	FieldDateResolved         Field = "Date_Resolved"
	FieldResolutionNotes      Field = "Resolution_Notes"
	FieldDaysToResolve        Field = "Days_To_Resolve"
)

// Columns is the canonical column order. Positions are significant: the store
// addresses cells by 1-based column index derived from this table only.
var Columns = []Field{
	FieldSubmissionID,
	FieldLineNumber,
	FieldDateSubmitted,
	FieldTask,
	FieldSpareParts,
	FieldPriority,
	FieldNotes,
	FieldStatus,
	FieldSubmittedByEngineer,
	FieldExpectedDueDate,
	FieldTroubleshootingSteps,
	FieldAssignedEngineer,
	FieldDateResolved,
	FieldResolutionNotes,
	FieldDaysToResolve,
}

// UpdatableFields are the columns the status update flow may write.
var UpdatableFields = []Field{
	FieldStatus,
	FieldAssignedEngineer,
	FieldDateResolved,
	FieldResolutionNotes,
	FieldDaysToResolve,
}

var columnIndex = func() map[Field]int {
	idx := make(map[Field]int, len(Columns))
	for i, f := range Columns {
		idx[f] = i + 1
	}
	return idx
}()

// ColumnIndex returns the 1-based column of f.
func ColumnIndex(f Field) (int, bool) {
	i, ok := columnIndex[f]
	return i, ok
}

// Header returns the canonical header row.
func Header() []string {
	header := make([]string, len(Columns))
	for i, f := range Columns {
		header[i] = string(f)
	}
	return header
}

// Updatable reports whether f may be changed after creation.
func (f Field) Updatable() bool {
	for _, u := range UpdatableFields {
		if f == u {
			return true
		}
	}
	return false
}

// Value returns the stored text of a column for the record.
func (r ProblemRecord) Value(f Field) string {
	switch f {
	case FieldSubmissionID:
		return strconv.Itoa(r.SubmissionID)
	case FieldLineNumber:
		return r.LineNumber
	case FieldDateSubmitted:
		return r.DateSubmitted
	case FieldTask:
		return r.Task
	case FieldSpareParts:
		return SerializeSpareParts(r.SpareParts)
	case FieldPriority:
		return string(r.Priority)
	case FieldNotes:
		if strings.TrimSpace(r.Notes) == "" {
			return NotAvailable
		}
		return r.Notes
	case FieldStatus:
		return string(r.Status)
	case FieldSubmittedByEngineer:
		return r.SubmittedByEngineer
	case FieldExpectedDueDate:
		return r.ExpectedDueDate
	case FieldTroubleshootingSteps:
		return SerializeSteps(r.TroubleshootingSteps)
	case FieldAssignedEngineer:
		return r.AssignedEngineer
	case FieldDateResolved:
		return r.DateResolved
	case FieldResolutionNotes:
		return r.ResolutionNotes
	case FieldDaysToResolve:
		return r.DaysToResolve
	}
	return ""
}

// Row renders the record in canonical column order.
func (r ProblemRecord) Row() []string {
	row := make([]string, len(Columns))
	for i, f := range Columns {
		row[i] = r.Value(f)
	}
	return row
}

// RecordFromRow parses a stored row. Short rows are padded with blanks since
// sheets drop trailing empty cells.
func RecordFromRow(row []string) (ProblemRecord, error) {
	cell := func(f Field) string {
		i := columnIndex[f] - 1
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	id, err := strconv.Atoi(cell(FieldSubmissionID))
	if err != nil {
		return ProblemRecord{}, fmt.Errorf("invalid %s %q", FieldSubmissionID, cell(FieldSubmissionID))
	}
	parts, err := ParseSpareParts(cell(FieldSpareParts))
	if err != nil {
		return ProblemRecord{}, fmt.Errorf("submission %d: %w", id, err)
	}

	notes := cell(FieldNotes)
	if notes == NotAvailable {
		notes = ""
	}

	return ProblemRecord{
		SubmissionID:         id,
		LineNumber:           cell(FieldLineNumber),
		DateSubmitted:        cell(FieldDateSubmitted),
		Task:                 cell(FieldTask),
		SpareParts:           parts,
		Priority:             Priority(cell(FieldPriority)),
		Notes:                notes,
		Status:               Status(cell(FieldStatus)),
		SubmittedByEngineer:  cell(FieldSubmittedByEngineer),
		ExpectedDueDate:      cell(FieldExpectedDueDate),
		TroubleshootingSteps: ParseSteps(cell(FieldTroubleshootingSteps)),
		AssignedEngineer:     cell(FieldAssignedEngineer),
		DateResolved:         cell(FieldDateResolved),
		ResolutionNotes:      cell(FieldResolutionNotes),
		DaysToResolve:        cell(FieldDaysToResolve),
	}, nil
}
