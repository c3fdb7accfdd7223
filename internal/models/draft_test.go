package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftAddSparePartIgnoresIncompleteEntries(t *testing.T) {
	d := &Draft{}

	assert.False(t, d.AddSparePart(SparePart{PartNumber: "P-1"}))
	assert.False(t, d.AddSparePart(SparePart{PartName: "Belt"}))
	assert.False(t, d.AddSparePart(SparePart{PartNumber: "  ", PartName: "Belt"}))
	assert.Empty(t, d.SpareParts)

	assert.True(t, d.AddSparePart(SparePart{PartNumber: " P-1 ", PartName: "Belt", Quantity: 0}))
	assert.Equal(t, []SparePart{{PartNumber: "P-1", PartName: "Belt", Quantity: 1}}, d.SpareParts)
}

func TestDraftAddStep(t *testing.T) {
	d := &Draft{}

	assert.False(t, d.AddStep(""))
	assert.False(t, d.AddStep("   "))
	assert.True(t, d.AddStep("Reset the PLC"))
	assert.True(t, d.AddStep("Checked air pressure"))
	assert.Equal(t, []string{"Reset the PLC", "Checked air pressure"}, d.Steps)
}

func TestDraftClearAndSnapshot(t *testing.T) {
	d := &Draft{ID: "d1"}
	d.AddStep("one")
	d.AddSparePart(SparePart{PartNumber: "P", PartName: "N", Quantity: 2})

	snap := d.Snapshot()
	d.AddStep("two")
	assert.Len(t, snap.Steps, 1, "snapshot is detached")

	d.Clear()
	assert.Empty(t, d.Steps)
	assert.Empty(t, d.SpareParts)
	assert.Equal(t, "d1", d.ID)
}

func TestDraftRejectsEntriesTheEncodingCannotHold(t *testing.T) {
	d := &Draft{}

	assert.False(t, d.AddSparePart(SparePart{PartNumber: "A:1", PartName: "Belt"}))
	assert.False(t, d.AddSparePart(SparePart{PartNumber: "A-1", PartName: "Belt | pulley"}))
	assert.False(t, d.AddStep("check a | b"))
	assert.False(t, d.AddStep(" N/A "))
	assert.Empty(t, d.SpareParts)
	assert.Empty(t, d.Steps)

	assert.True(t, d.AddStep("checked N/A reading on HMI"))
	assert.True(t, d.AddSparePart(SparePart{PartNumber: "A-1", PartName: "Belt", Quantity: 1}))
}
