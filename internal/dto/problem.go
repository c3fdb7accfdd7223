package dto

import (
	"time"

	"github.com/octa-services/plant-tracker/internal/models"
)

// SubmitProblemRequest is the Submit flow payload. When DraftID is set the
// draft's spare parts and troubleshooting steps are appended to the ones sent
// inline.
type SubmitProblemRequest struct {
	DraftID              string             `json:"draft_id" validate:"omitempty,uuid"`
	LineNumber           string             `json:"line_number" validate:"required,line"`
	DateSubmitted        string             `json:"date_submitted" validate:"required,ddmmyyyy"`
	Task                 string             `json:"task" validate:"required"`
	SpareParts           []models.SparePart `json:"spare_parts" validate:"dive"`
	Priority             string             `json:"priority" validate:"required,priority"`
	Notes                string             `json:"notes"`
	SubmittedByEngineer  string             `json:"submitted_by_engineer" validate:"required,engineer"`
	ExpectedDueDate      string             `json:"expected_due_date" validate:"omitempty,ddmmyyyy"`
	TroubleshootingSteps []string           `json:"troubleshooting_steps" validate:"dive,required,step"`
}

// UpdateStatusRequest is the Update flow payload.
type UpdateStatusRequest struct {
	Status           string `json:"status" validate:"required,status"`
	AssignedEngineer string `json:"assigned_engineer" validate:"required"`
	DateResolved     string `json:"date_resolved" validate:"omitempty,ddmmyyyy"`
	ResolutionNotes  string `json:"resolution_notes"`
}

// ProblemQuery carries the list filters accepted on query strings.
type ProblemQuery struct {
	Line     string `form:"line"`
	Priority string `form:"priority"`
	Status   string `form:"status"`
	Engineer string `form:"engineer"`
}

// Filter converts the query into a record filter.
func (q ProblemQuery) Filter() models.ProblemFilter {
	return models.ProblemFilter{
		Line:     q.Line,
		Priority: models.Priority(q.Priority),
		Status:   models.Status(q.Status),
		Engineer: q.Engineer,
	}
}

// AddSparePartRequest appends one spare part to a draft.
type AddSparePartRequest struct {
	PartNumber string `json:"part_number"`
	PartName   string `json:"part_name"`
	InStock    bool   `json:"in_stock"`
	Quantity   int    `json:"quantity"`
}

// AddStepRequest appends one troubleshooting step to a draft.
type AddStepRequest struct {
	Text string `json:"text"`
}

// DraftResponse reports the draft state and whether the last add was accepted.
type DraftResponse struct {
	Draft    models.Draft `json:"draft"`
	Accepted bool         `json:"accepted"`
}

// SitesResponse lists the configured sites and the form vocabularies.
type SitesResponse struct {
	Sites          []string          `json:"sites"`
	Lines          []string          `json:"lines"`
	Priorities     []models.Priority `json:"priorities"`
	Statuses       []models.Status   `json:"statuses"`
	ActiveStatuses []models.Status   `json:"active_statuses"`
	Engineers      []string          `json:"engineers"`
}

// LineCount is the number of active problems on a production line.
type LineCount struct {
	Line  string `json:"line"`
	Count int    `json:"count"`
}

// DashboardResponse is the dashboard payload: active counts per line and the
// active problems matching the filters.
type DashboardResponse struct {
	Site          string                 `json:"site"`
	ActiveTotal   int                    `json:"active_total"`
	ByLine        []LineCount            `json:"by_line"`
	Problems      []models.ProblemRecord `json:"problems"`
	StatusOptions []models.Status        `json:"status_options"`
	GeneratedAt   time.Time              `json:"generated_at"`
}

// HistoryResponse is the resolved-problem history with its statistics.
type HistoryResponse struct {
	Site                 string                 `json:"site"`
	TotalResolved        int                    `json:"total_resolved"`
	Matching             int                    `json:"matching"`
	AverageDaysToResolve float64                `json:"average_days_to_resolve"`
	TopContributor       string                 `json:"top_contributor"`
	CriticalResolved     int                    `json:"critical_resolved"`
	EngineerOptions      []string               `json:"engineer_options"`
	Problems             []models.ProblemRecord `json:"problems"`
	GeneratedAt          time.Time              `json:"generated_at"`
}

// OpenProblemOption is one entry of the update selector.
type OpenProblemOption struct {
	SubmissionID int           `json:"submission_id"`
	LineNumber   string        `json:"line_number"`
	Status       models.Status `json:"status"`
	Label        string        `json:"label"`
}
