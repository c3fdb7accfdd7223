package models

// Status is the lifecycle state of a maintenance problem.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN PROGRESS"
	StatusResolved   Status = "RESOLVED"
)

// Statuses lists every lifecycle state in forward order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved}

// ActiveStatuses are the states shown on the dashboard.
var ActiveStatuses = []Status{StatusOpen, StatusInProgress}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active reports whether the problem still needs attention.
func (s Status) Active() bool {
	return s == StatusOpen || s == StatusInProgress
}

// Priority ranks how urgently a problem must be handled.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists the priority levels from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// DefaultLines are the production lines of the reference plant.
var DefaultLines = []string{"Line 3", "Line 7", "Line 9", "Line 10", "Line 12", "Line 13"}

// SparePart is one spare part entry attached to a problem.
type SparePart struct {
	PartNumber string `json:"part_number" validate:"required,nodelim"`
	PartName   string `json:"part_name" validate:"required,nodelim"`
	InStock    bool   `json:"in_stock"`
	Quantity   int    `json:"quantity" validate:"min=1"`
}

// ProblemRecord is one tracked maintenance problem with its full lifecycle state.
type ProblemRecord struct {
	SubmissionID         int         `json:"submission_id"`
	LineNumber           string      `json:"line_number"`
	DateSubmitted        string      `json:"date_submitted"`
	Task                 string      `json:"task"`
	SpareParts           []SparePart `json:"spare_parts"`
	Priority             Priority    `json:"priority"`
	Notes                string      `json:"notes"`
	Status               Status      `json:"status"`
	SubmittedByEngineer  string      `json:"submitted_by_engineer"`
	ExpectedDueDate      string      `json:"expected_due_date"`
	TroubleshootingSteps []string    `json:"troubleshooting_steps"`
	AssignedEngineer     string      `json:"assigned_engineer"`
	DateResolved         string      `json:"date_resolved"`
	ResolutionNotes      string      `json:"resolution_notes"`
	DaysToResolve        string      `json:"days_to_resolve"`
}

// StoredProblem pairs a record with its 0-based logical row position in the
// site's sheet.
type StoredProblem struct {
	Position int
	Record   ProblemRecord
}

// ProblemFilter narrows a record set. Empty fields match everything.
type ProblemFilter struct {
	Line     string
	Priority Priority
	Status   Status
	Engineer string
}

// IsZero reports whether no predicate is set.
func (f ProblemFilter) IsZero() bool {
	return f.Line == "" && f.Priority == "" && f.Status == "" && f.Engineer == ""
}
