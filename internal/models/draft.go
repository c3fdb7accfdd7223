package models

import (
	"strings"
	"time"
)

// Draft is the composer state of one in-progress submission: spare parts and
// troubleshooting steps accumulated before the problem is submitted. It has no
// remove operation; a user who wants to start over cancels the draft.
type Draft struct {
	ID         string      `json:"id"`
	Site       string      `json:"site"`
	SpareParts []SparePart `json:"spare_parts"`
	Steps      []string    `json:"troubleshooting_steps"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// AddSparePart appends entry when both its number and name are present and
// encodable, and reports whether it did. Other entries are ignored without
// error so a draft never holds something submit would reject.
func (d *Draft) AddSparePart(entry SparePart) bool {
	entry.PartNumber = strings.TrimSpace(entry.PartNumber)
	entry.PartName = strings.TrimSpace(entry.PartName)
	if entry.PartNumber == "" || entry.PartName == "" {
		return false
	}
	if ContainsDelimiter(entry.PartNumber) || ContainsDelimiter(entry.PartName) {
		return false
	}
	if entry.Quantity < 1 {
		entry.Quantity = 1
	}
	d.SpareParts = append(d.SpareParts, entry)
	return true
}

// AddStep appends a non-empty, encodable troubleshooting step and reports
// whether it did.
func (d *Draft) AddStep(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || !StorableStep(text) {
		return false
	}
	d.Steps = append(d.Steps, text)
	return true
}

// Clear resets the accumulated entries.
func (d *Draft) Clear() {
	d.SpareParts = nil
	d.Steps = nil
}

// Snapshot returns a copy safe to hand out while the draft keeps changing.
func (d *Draft) Snapshot() Draft {
	cp := *d
	cp.SpareParts = append([]SparePart(nil), d.SpareParts...)
	cp.Steps = append([]string(nil), d.Steps...)
	return cp
}
