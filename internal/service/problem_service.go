package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

const taskPreviewLength = 50

type recordStore interface {
	List(ctx context.Context, site string) ([]models.StoredProblem, error)
	Append(ctx context.Context, site string, record models.ProblemRecord) error
	UpdateField(ctx context.Context, site string, position int, field models.Field, value string) error
}

type draftSource interface {
	Get(site, id string) (models.Draft, error)
	Complete(site, id string)
}

// ProblemServiceConfig tunes problem flows.
type ProblemServiceConfig struct {
	Lines               []string
	ZeroFillUnknownDays bool
}

// ProblemServiceParams groups constructor dependencies.
type ProblemServiceParams struct {
	Store     recordStore
	Drafts    draftSource
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    ProblemServiceConfig
}

// ProblemService implements the submit, update, dashboard and history flows
// over a site's record store.
type ProblemService struct {
	store     recordStore
	drafts    draftSource
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ProblemServiceConfig
	now       func() time.Time
}

// NewProblemService constructs a ProblemService with sane defaults.
func NewProblemService(params ProblemServiceParams) *ProblemService {
	cfg := params.Config
	if len(cfg.Lines) == 0 {
		cfg.Lines = models.DefaultLines
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = NewTrackerValidator(cfg.Lines, nil)
	}
	return &ProblemService{
		store:     params.Store,
		drafts:    params.Drafts,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Submit records a new OPEN problem. The draft named by req.DraftID, if any,
// contributes its spare parts and steps and is closed only once the record is
// stored.
func (s *ProblemService) Submit(ctx context.Context, site string, req dto.SubmitProblemRequest) (*models.ProblemRecord, error) {
	req = normaliseSubmit(req)
	if req.DraftID != "" {
		if s.drafts == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
		}
		draft, err := s.drafts.Get(site, req.DraftID)
		if err != nil {
			return nil, err
		}
		req.SpareParts = append(req.SpareParts, draft.SpareParts...)
		req.TroubleshootingSteps = append(req.TroubleshootingSteps, draft.Steps...)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid problem submission")
	}

	existing, err := s.store.List(ctx, site)
	if err != nil {
		return nil, err
	}

	record := models.ProblemRecord{
		SubmissionID:         models.NextSubmissionID(recordsOf(existing)),
		LineNumber:           req.LineNumber,
		DateSubmitted:        req.DateSubmitted,
		Task:                 req.Task,
		SpareParts:           append([]models.SparePart{}, req.SpareParts...),
		Priority:             models.Priority(req.Priority),
		Notes:                req.Notes,
		Status:               models.StatusOpen,
		SubmittedByEngineer:  req.SubmittedByEngineer,
		ExpectedDueDate:      req.ExpectedDueDate,
		TroubleshootingSteps: append([]string{}, req.TroubleshootingSteps...),
	}
	if err := s.store.Append(ctx, site, record); err != nil {
		return nil, err
	}

	if req.DraftID != "" {
		s.drafts.Complete(site, req.DraftID)
	}
	s.cache.InvalidateSite(ctx, site)
	s.metrics.RecordSubmission(site, record.LineNumber)
	s.logger.Info("problem submitted",
		zap.String("site", site),
		zap.Int("submission_id", record.SubmissionID),
		zap.String("line", record.LineNumber),
		zap.String("priority", string(record.Priority)),
	)
	return &record, nil
}

// List returns the site's records matching filter.
func (s *ProblemService) List(ctx context.Context, site string, filter models.ProblemFilter) ([]models.ProblemRecord, error) {
	records, err := s.records(ctx, site)
	if err != nil {
		return nil, err
	}
	return Filter(records, filter), nil
}

// Get returns one record by submission id.
func (s *ProblemService) Get(ctx context.Context, site string, id int) (*models.ProblemRecord, error) {
	stored, err := s.store.List(ctx, site)
	if err != nil {
		return nil, err
	}
	found, ok := findByID(stored, id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("problem %d not found", id))
	}
	return &found.Record, nil
}

// OpenSelector lists the records that can still be updated, labelled for a
// picker.
func (s *ProblemService) OpenSelector(ctx context.Context, site string) ([]dto.OpenProblemOption, error) {
	records, err := s.records(ctx, site)
	if err != nil {
		return nil, err
	}
	active := Active(records)
	options := make([]dto.OpenProblemOption, 0, len(active))
	for _, r := range active {
		options = append(options, dto.OpenProblemOption{
			SubmissionID: r.SubmissionID,
			LineNumber:   r.LineNumber,
			Status:       r.Status,
			Label:        fmt.Sprintf("ID #%d - %s - %s", r.SubmissionID, r.LineNumber, preview(r.Task, taskPreviewLength)),
		})
	}
	return options, nil
}

// UpdateStatus applies an update to the record with the given id and writes
// back the changed columns only. The record is looked up in a fresh listing so
// its row position reflects the store as it is now.
func (s *ProblemService) UpdateStatus(ctx context.Context, site string, id int, req dto.UpdateStatusRequest) (*models.ProblemRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid status update")
	}

	stored, err := s.store.List(ctx, site)
	if err != nil {
		return nil, err
	}
	current, ok := findByID(stored, id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("problem %d not found", id))
	}

	updated, changes, err := ApplyUpdate(current.Record, req)
	if err != nil {
		return nil, err
	}
	for _, change := range changes {
		if err := s.store.UpdateField(ctx, site, current.Position, change.Field, change.Value); err != nil {
			return nil, err
		}
	}

	if len(changes) > 0 {
		s.cache.InvalidateSite(ctx, site)
	}
	s.metrics.RecordTransition(site, current.Record.Status, updated.Status)
	s.logger.Info("problem updated",
		zap.String("site", site),
		zap.Int("submission_id", id),
		zap.String("from", string(current.Record.Status)),
		zap.String("to", string(updated.Status)),
		zap.Int("fields_written", len(changes)),
	)
	return &updated, nil
}

// Dashboard returns active counts per line and the active records matching
// the filter. Only active statuses may be filtered on. The flag reports a
// cache hit.
func (s *ProblemService) Dashboard(ctx context.Context, site string, filter models.ProblemFilter) (*dto.DashboardResponse, bool, error) {
	if filter.Status != "" && !filter.Status.Active() {
		return nil, false, appErrors.Validation("dashboard status filter must be OPEN or IN PROGRESS", "status")
	}
	filter.Engineer = ""

	key := SiteKey(site, "dashboard", filter.Line, string(filter.Priority), string(filter.Status))
	var cached dto.DashboardResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	records, err := s.records(ctx, site)
	if err != nil {
		return nil, false, err
	}
	active := Active(records)
	counts := CountByLine(active, s.cfg.Lines)
	byLine := make([]dto.LineCount, 0, len(s.cfg.Lines))
	for _, line := range s.cfg.Lines {
		byLine = append(byLine, dto.LineCount{Line: line, Count: counts[line]})
	}

	resp := &dto.DashboardResponse{
		Site:          site,
		ActiveTotal:   len(active),
		ByLine:        byLine,
		Problems:      Filter(active, filter),
		StatusOptions: models.ActiveStatuses,
		GeneratedAt:   s.now().UTC(),
	}
	s.cache.Set(ctx, key, resp)
	return resp, false, nil
}

// History returns resolved records narrowed by line and assigned engineer,
// together with resolution statistics over the narrowed set. Engineer options
// are drawn from every resolved record. The flag reports a cache hit.
func (s *ProblemService) History(ctx context.Context, site, line, engineer string) (*dto.HistoryResponse, bool, error) {
	key := SiteKey(site, "history", line, engineer)
	var cached dto.HistoryResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	records, err := s.records(ctx, site)
	if err != nil {
		return nil, false, err
	}
	resolved := Resolved(records)
	matching := Filter(resolved, models.ProblemFilter{Line: line, Engineer: engineer})

	resp := &dto.HistoryResponse{
		Site:                 site,
		TotalResolved:        len(resolved),
		Matching:             len(matching),
		AverageDaysToResolve: AverageDaysToResolve(matching, s.cfg.ZeroFillUnknownDays),
		TopContributor:       TopEngineer(matching),
		CriticalResolved:     CountWhere(matching, models.FieldPriority, string(models.PriorityCritical)),
		EngineerOptions:      EngineerOptions(resolved),
		Problems:             matching,
		GeneratedAt:          s.now().UTC(),
	}
	s.cache.Set(ctx, key, resp)
	return resp, false, nil
}

func (s *ProblemService) records(ctx context.Context, site string) ([]models.ProblemRecord, error) {
	stored, err := s.store.List(ctx, site)
	if err != nil {
		return nil, err
	}
	return recordsOf(stored), nil
}

func findByID(stored []models.StoredProblem, id int) (models.StoredProblem, bool) {
	for _, s := range stored {
		if s.Record.SubmissionID == id {
			return s, true
		}
	}
	return models.StoredProblem{}, false
}

func normaliseSubmit(req dto.SubmitProblemRequest) dto.SubmitProblemRequest {
	req.DraftID = strings.TrimSpace(req.DraftID)
	req.LineNumber = strings.TrimSpace(req.LineNumber)
	req.DateSubmitted = strings.TrimSpace(req.DateSubmitted)
	req.Task = strings.TrimSpace(req.Task)
	req.Priority = strings.TrimSpace(req.Priority)
	req.Notes = strings.TrimSpace(req.Notes)
	req.SubmittedByEngineer = strings.TrimSpace(req.SubmittedByEngineer)
	req.ExpectedDueDate = strings.TrimSpace(req.ExpectedDueDate)

	parts := make([]models.SparePart, len(req.SpareParts))
	for i, p := range req.SpareParts {
		p.PartNumber = strings.TrimSpace(p.PartNumber)
		p.PartName = strings.TrimSpace(p.PartName)
		parts[i] = p
	}
	req.SpareParts = parts

	steps := make([]string, len(req.TroubleshootingSteps))
	for i, step := range req.TroubleshootingSteps {
		steps[i] = strings.TrimSpace(step)
	}
	req.TroubleshootingSteps = steps
	return req
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
