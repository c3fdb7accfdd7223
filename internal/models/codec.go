package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// NotAvailable is the sentinel stored for empty lists and unknown values.
	NotAvailable = "N/A"
	// DateLayout is DD/MM/YYYY, used on input and in storage.
	DateLayout = "02/01/2006"

	ListSeparator  = " | "
	FieldSeparator = ":"

	quantityPrefix = "Qty"
	stockPrefix    = "Stock-"
	stockYes       = "Yes"
	stockNo        = "No"
)

// ParseDate parses a DD/MM/YYYY date. Single digit day and month are accepted.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(DateLayout, raw)
	if err == nil {
		return t, nil
	}
	if t, lenient := time.Parse("2/1/2006", raw); lenient == nil {
		return t, nil
	}
	return time.Time{}, err
}

// FormatDate renders t as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ComputeDaysToResolve returns the whole-day difference between the two dates.
// The result may be negative when the resolution predates the submission. ok is
// false when either date does not parse.
func ComputeDaysToResolve(dateSubmitted, dateResolved string) (days int, ok bool) {
	submitted, err := ParseDate(dateSubmitted)
	if err != nil {
		return 0, false
	}
	resolved, err := ParseDate(dateResolved)
	if err != nil {
		return 0, false
	}
	return int((resolved.Unix() - submitted.Unix()) / secondsPerDay), true
}

const secondsPerDay = 24 * 60 * 60

// FormatDays renders a days-to-resolve value for storage.
func FormatDays(days int, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return strconv.Itoa(days)
}

// NextSubmissionID derives the id for a new record: one past the record count.
// If external edits left ids above the count, it moves past the highest id so
// an id is never handed out twice.
func NextSubmissionID(records []ProblemRecord) int {
	next := len(records) + 1
	for _, r := range records {
		if r.SubmissionID >= next {
			next = r.SubmissionID + 1
		}
	}
	return next
}

// SerializeSpareParts flattens parts to "number:name:Qty<n>:Stock-<Yes|No>"
// entries joined by " | ". An empty list is stored as "N/A".
func SerializeSpareParts(parts []SparePart) string {
	if len(parts) == 0 {
		return NotAvailable
	}
	entries := make([]string, len(parts))
	for i, p := range parts {
		stock := stockNo
		if p.InStock {
			stock = stockYes
		}
		entries[i] = strings.Join([]string{
			p.PartNumber,
			p.PartName,
			quantityPrefix + strconv.Itoa(p.Quantity),
			stockPrefix + stock,
		}, FieldSeparator)
	}
	return strings.Join(entries, ListSeparator)
}

// ParseSpareParts is the inverse of SerializeSpareParts. "N/A" and blank text
// decode to an empty list.
func ParseSpareParts(raw string) ([]SparePart, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NotAvailable {
		return []SparePart{}, nil
	}
	entries := strings.Split(raw, ListSeparator)
	parts := make([]SparePart, 0, len(entries))
	for i, entry := range entries {
		fields := strings.Split(entry, FieldSeparator)
		if len(fields) != 4 {
			return nil, fmt.Errorf("spare part %d: expected 4 fields, got %d", i+1, len(fields))
		}
		qtyText, ok := strings.CutPrefix(fields[2], quantityPrefix)
		if !ok {
			return nil, fmt.Errorf("spare part %d: malformed quantity %q", i+1, fields[2])
		}
		qty, err := strconv.Atoi(qtyText)
		if err != nil {
			return nil, fmt.Errorf("spare part %d: malformed quantity %q", i+1, fields[2])
		}
		stock, ok := strings.CutPrefix(fields[3], stockPrefix)
		if !ok || (stock != stockYes && stock != stockNo) {
			return nil, fmt.Errorf("spare part %d: malformed stock flag %q", i+1, fields[3])
		}
		parts = append(parts, SparePart{
			PartNumber: fields[0],
			PartName:   fields[1],
			Quantity:   qty,
			InStock:    stock == stockYes,
		})
	}
	return parts, nil
}

// SerializeSteps joins troubleshooting steps with " | ". An empty list is
// stored as "N/A".
func SerializeSteps(steps []string) string {
	if len(steps) == 0 {
		return NotAvailable
	}
	return strings.Join(steps, ListSeparator)
}

// ParseSteps is the inverse of SerializeSteps.
func ParseSteps(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NotAvailable {
		return []string{}
	}
	return strings.Split(raw, ListSeparator)
}

// ContainsDelimiter reports whether text would break the flattened encoding.
func ContainsDelimiter(text string) bool {
	return strings.Contains(text, "|") || strings.Contains(text, FieldSeparator)
}

// StorableStep reports whether a troubleshooting step survives the step
// encoding: it may not contain "|" nor be the empty-list marker itself.
func StorableStep(text string) bool {
	return !strings.Contains(text, "|") && strings.TrimSpace(text) != NotAvailable
}
