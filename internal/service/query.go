package service

import (
	"strconv"
	"strings"

	"github.com/octa-services/plant-tracker/internal/models"
)

// Query functions below never modify their input; each returns a new slice.

// Active returns the records still needing attention.
func Active(records []models.ProblemRecord) []models.ProblemRecord {
	out := make([]models.ProblemRecord, 0, len(records))
	for _, r := range records {
		if r.Status.Active() {
			out = append(out, r)
		}
	}
	return out
}

// Resolved returns the resolved records.
func Resolved(records []models.ProblemRecord) []models.ProblemRecord {
	out := make([]models.ProblemRecord, 0, len(records))
	for _, r := range records {
		if r.Status == models.StatusResolved {
			out = append(out, r)
		}
	}
	return out
}

// Filter returns the records matching every set predicate. Engineer matches
// the assigned engineer.
func Filter(records []models.ProblemRecord, f models.ProblemFilter) []models.ProblemRecord {
	out := make([]models.ProblemRecord, 0, len(records))
	for _, r := range records {
		if f.Line != "" && r.LineNumber != f.Line {
			continue
		}
		if f.Priority != "" && r.Priority != f.Priority {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Engineer != "" && r.AssignedEngineer != f.Engineer {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CountByLine counts active records per line. Every requested line is present
// in the result, zero when nothing is active on it.
func CountByLine(records []models.ProblemRecord, lines []string) map[string]int {
	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		counts[line] = 0
	}
	for _, r := range records {
		if !r.Status.Active() {
			continue
		}
		if _, ok := counts[r.LineNumber]; ok {
			counts[r.LineNumber]++
		}
	}
	return counts
}

// AverageDaysToResolve averages days-to-resolve over resolved records. With
// zeroFill, blank or "N/A" values count as 0 days; otherwise they are left out
// of the average. Returns 0 when nothing is averaged.
func AverageDaysToResolve(records []models.ProblemRecord, zeroFill bool) float64 {
	var total float64
	var n int
	for _, r := range records {
		if r.Status != models.StatusResolved {
			continue
		}
		days, err := strconv.Atoi(strings.TrimSpace(r.DaysToResolve))
		if err != nil {
			if !zeroFill {
				continue
			}
			days = 0
		}
		total += float64(days)
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// TopEngineer returns the assigned engineer with the most resolved records.
// Ties go to the engineer encountered first. Empty when nothing is resolved.
func TopEngineer(records []models.ProblemRecord) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if r.Status != models.StatusResolved || r.AssignedEngineer == "" {
			continue
		}
		if _, seen := counts[r.AssignedEngineer]; !seen {
			order = append(order, r.AssignedEngineer)
		}
		counts[r.AssignedEngineer]++
	}
	var top string
	best := 0
	for _, name := range order {
		if counts[name] > best {
			top, best = name, counts[name]
		}
	}
	return top
}

// CountWhere counts records whose stored field text equals value.
func CountWhere(records []models.ProblemRecord, field models.Field, value string) int {
	n := 0
	for _, r := range records {
		if r.Value(field) == value {
			n++
		}
	}
	return n
}

// EngineerOptions lists distinct assigned engineers in first-seen order.
func EngineerOptions(records []models.ProblemRecord) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		if r.AssignedEngineer == "" {
			continue
		}
		if _, ok := seen[r.AssignedEngineer]; ok {
			continue
		}
		seen[r.AssignedEngineer] = struct{}{}
		out = append(out, r.AssignedEngineer)
	}
	return out
}

func recordsOf(stored []models.StoredProblem) []models.ProblemRecord {
	out := make([]models.ProblemRecord, len(stored))
	for i, s := range stored {
		out[i] = s.Record
	}
	return out
}
