package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Submission_ID", "Line_Number", "Date_Submitted", "Task", "Spare_Parts_Data",
		"Priority", "Notes", "Status", "Submitted_By_Engineer", "Expected_Due_Date",
		"Troubleshooting_Steps", "Assigned_Engineer", "Date_Resolved", "Resolution_Notes",
		"Days_To_Resolve",
	}, Header())
}

func TestColumnIndexIsOneBased(t *testing.T) {
	idx, ok := ColumnIndex(FieldSubmissionID)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = ColumnIndex(FieldStatus)
	require.True(t, ok)
	assert.Equal(t, 8, idx)

	_, ok = ColumnIndex(Field("Engineer_Name"))
	assert.False(t, ok)
}

func TestUpdatableFields(t *testing.T) {
	assert.True(t, FieldStatus.Updatable())
	assert.True(t, FieldDaysToResolve.Updatable())
	assert.False(t, FieldSubmissionID.Updatable())
	assert.False(t, FieldTask.Updatable())
}

func TestRecordRowRoundTrip(t *testing.T) {
	record := ProblemRecord{
		SubmissionID:         12,
		LineNumber:           "Line 7",
		DateSubmitted:        "01/03/2025",
		Task:                 "Conveyor stops intermittently",
		SpareParts:           []SparePart{{PartNumber: "S-1", PartName: "Sensor", Quantity: 1, InStock: true}},
		Priority:             PriorityHigh,
		Status:               StatusOpen,
		SubmittedByEngineer:  "M. Adel",
		TroubleshootingSteps: []string{"Cleaned sensor"},
	}

	row := record.Row()
	require.Len(t, row, len(Columns))
	assert.Equal(t, "12", row[0])
	assert.Equal(t, "N/A", row[6], "blank notes stored as N/A")

	parsed, err := RecordFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, record, parsed)
}

func TestRecordFromShortRow(t *testing.T) {
	parsed, err := RecordFromRow([]string{"3", "Line 9", "02/02/2025", "Leak", "N/A", "Low", "N/A", "OPEN"})
	require.NoError(t, err)

	assert.Equal(t, 3, parsed.SubmissionID)
	assert.Equal(t, StatusOpen, parsed.Status)
	assert.Empty(t, parsed.SpareParts)
	assert.Empty(t, parsed.TroubleshootingSteps)
	assert.Empty(t, parsed.AssignedEngineer)
	assert.Empty(t, parsed.Notes)
}

func TestRecordFromRowRejectsBadID(t *testing.T) {
	_, err := RecordFromRow([]string{"abc", "Line 9"})
	assert.Error(t, err)

	_, err = RecordFromRow([]string{"4", "Line 9", "02/02/2025", "Leak", "broken-parts"})
	assert.Error(t, err)
}
