package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/models"
	"github.com/octa-services/plant-tracker/internal/repository"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

type fieldWrite struct {
	position int
	field    models.Field
	value    string
}

type mockRecordStore struct {
	stored    []models.StoredProblem
	appended  []models.ProblemRecord
	writes    []fieldWrite
	listErr   error
	appendErr error
	updateErr error
	lists     int
}

func (m *mockRecordStore) List(ctx context.Context, site string) ([]models.StoredProblem, error) {
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.StoredProblem(nil), m.stored...), nil
}

func (m *mockRecordStore) Append(ctx context.Context, site string, record models.ProblemRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, record)
	m.stored = append(m.stored, models.StoredProblem{Position: len(m.stored), Record: record})
	return nil
}

func (m *mockRecordStore) UpdateField(ctx context.Context, site string, position int, field models.Field, value string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.writes = append(m.writes, fieldWrite{position: position, field: field, value: value})
	return nil
}

func newTestProblemService(store recordStore, drafts draftSource) *ProblemService {
	return NewProblemService(ProblemServiceParams{
		Store:     store,
		Drafts:    drafts,
		Validator: NewTrackerValidator(models.DefaultLines, nil),
		Logger:    zap.NewNop(),
		Config:    ProblemServiceConfig{Lines: models.DefaultLines, ZeroFillUnknownDays: true},
	})
}

func TestProblemLifecycleEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := repository.NewRecordStore(repository.NewMemorySheet(), nil, zap.NewNop())
	svc := newTestProblemService(store, nil)

	// One unrelated record already on the sheet.
	_, err := svc.Submit(ctx, "plant-a", dto.SubmitProblemRequest{
		LineNumber: "Line 3", DateSubmitted: "20/12/2024", Task: "Leaking valve", Priority: "Low", SubmittedByEngineer: "M. Adel",
	})
	require.NoError(t, err)

	created, err := svc.Submit(ctx, "plant-a", dto.SubmitProblemRequest{
		LineNumber:          "Line 7",
		DateSubmitted:       "01/01/2025",
		Task:                "Motor overheating",
		Priority:            "High",
		SubmittedByEngineer: "M. Adel",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.SubmissionID)
	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Equal(t, models.NotAvailable, created.Value(models.FieldSpareParts))
	assert.Equal(t, models.NotAvailable, created.Value(models.FieldTroubleshootingSteps))
	assert.Empty(t, created.AssignedEngineer)

	resolved, err := svc.UpdateStatus(ctx, "plant-a", created.SubmissionID, dto.UpdateStatusRequest{
		Status:           string(models.StatusResolved),
		AssignedEngineer: "A. Hassan",
		DateResolved:     "04/01/2025",
		ResolutionNotes:  "replaced fuse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, resolved.Status)
	assert.Equal(t, "3", resolved.DaysToResolve)

	stored, err := svc.Get(ctx, "plant-a", created.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, "3", stored.DaysToResolve)
	assert.Equal(t, "Motor overheating", stored.Task)

	all, err := svc.List(ctx, "plant-a", models.ProblemFilter{})
	require.NoError(t, err)
	assert.Equal(t, "A. Hassan", TopEngineer(Resolved(all)))

	history, _, err := svc.History(ctx, "plant-a", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, history.TotalResolved)
	assert.Equal(t, "A. Hassan", history.TopContributor)
	assert.InDelta(t, 3.0, history.AverageDaysToResolve, 0.0001)
}

func TestSubmitAssignsCountPlusOne(t *testing.T) {
	store := &mockRecordStore{stored: []models.StoredProblem{
		{Position: 0, Record: models.ProblemRecord{SubmissionID: 1}},
		{Position: 1, Record: models.ProblemRecord{SubmissionID: 2}},
	}}
	svc := newTestProblemService(store, nil)

	record, err := svc.Submit(context.Background(), "plant-a", validSubmit())
	require.NoError(t, err)
	assert.Equal(t, 3, record.SubmissionID)
	require.Len(t, store.appended, 1)
}

func TestSubmitValidationFailureWritesNothing(t *testing.T) {
	store := &mockRecordStore{}
	svc := newTestProblemService(store, nil)

	req := validSubmit()
	req.Task = "   "
	_, err := svc.Submit(context.Background(), "plant-a", req)
	require.Error(t, err)
	assert.Equal(t, []string{"task"}, appErrors.FromError(err).Fields)
	assert.Empty(t, store.appended)
	assert.Zero(t, store.lists)
}

func TestSubmitWithDraftClearsOnlyOnSuccess(t *testing.T) {
	composer := NewComposerService(time.Hour, nil)
	draft := composer.Create("plant-a")
	_, _, _ = composer.AddSparePart("plant-a", draft.ID, models.SparePart{PartNumber: "P-100", PartName: "Fuse", Quantity: 2})
	_, _, _ = composer.AddStep("plant-a", draft.ID, "checked breaker")

	store := &mockRecordStore{}
	svc := newTestProblemService(store, composer)

	bad := validSubmit()
	bad.DraftID = draft.ID
	bad.Priority = "Urgent"
	_, err := svc.Submit(context.Background(), "plant-a", bad)
	require.Error(t, err)
	kept, err := composer.Get("plant-a", draft.ID)
	require.NoError(t, err, "draft survives a validation failure")
	assert.Len(t, kept.SpareParts, 1)

	store.appendErr = appErrors.Store(errors.New("quota"), "failed to append record")
	good := validSubmit()
	good.DraftID = draft.ID
	_, err = svc.Submit(context.Background(), "plant-a", good)
	require.Error(t, err)
	_, err = composer.Get("plant-a", draft.ID)
	require.NoError(t, err, "draft survives a store failure")

	store.appendErr = nil
	record, err := svc.Submit(context.Background(), "plant-a", good)
	require.NoError(t, err)
	assert.Equal(t, "P-100:Fuse:Qty2:Stock-No", record.Value(models.FieldSpareParts))
	assert.Equal(t, []string{"checked breaker"}, record.TroubleshootingSteps)

	_, err = composer.Get("plant-a", draft.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestSubmitWithDraftAfterRefusedEntries(t *testing.T) {
	composer := NewComposerService(time.Hour, nil)
	draft := composer.Create("plant-a")
	_, _, _ = composer.AddSparePart("plant-a", draft.ID, models.SparePart{PartNumber: "A:1", PartName: "Belt", Quantity: 1})
	_, _, _ = composer.AddStep("plant-a", draft.ID, "check a | b")
	_, _, _ = composer.AddStep("plant-a", draft.ID, "checked belt tension")

	svc := newTestProblemService(&mockRecordStore{}, composer)
	req := validSubmit()
	req.DraftID = draft.ID

	record, err := svc.Submit(context.Background(), "plant-a", req)
	require.NoError(t, err)
	assert.Empty(t, record.SpareParts)
	assert.Equal(t, []string{"checked belt tension"}, record.TroubleshootingSteps)
}

func TestSubmitUnknownDraft(t *testing.T) {
	svc := newTestProblemService(&mockRecordStore{}, NewComposerService(time.Hour, nil))
	req := validSubmit()
	req.DraftID = "5f1c7a52-8c39-4a8e-9d0e-3c1f0d9b2a11"
	_, err := svc.Submit(context.Background(), "plant-a", req)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestUpdateStatusNotFound(t *testing.T) {
	store := &mockRecordStore{stored: []models.StoredProblem{{Position: 0, Record: openRecord()}}}
	svc := newTestProblemService(store, nil)

	_, err := svc.UpdateStatus(context.Background(), "plant-a", 42, dto.UpdateStatusRequest{Status: "IN PROGRESS", AssignedEngineer: "A. Hassan"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, store.writes)
}

func TestUpdateStatusWritesChangedFieldsAtPosition(t *testing.T) {
	record := openRecord()
	store := &mockRecordStore{stored: []models.StoredProblem{
		{Position: 0, Record: models.ProblemRecord{SubmissionID: 1, Status: models.StatusOpen}},
		{Position: 2, Record: record},
	}}
	svc := newTestProblemService(store, nil)

	_, err := svc.UpdateStatus(context.Background(), "plant-a", record.SubmissionID, dto.UpdateStatusRequest{
		Status:           "IN PROGRESS",
		AssignedEngineer: "A. Hassan",
	})
	require.NoError(t, err)
	require.Len(t, store.writes, 2)
	assert.Equal(t, fieldWrite{position: 2, field: models.FieldStatus, value: "IN PROGRESS"}, store.writes[0])
	assert.Equal(t, fieldWrite{position: 2, field: models.FieldAssignedEngineer, value: "A. Hassan"}, store.writes[1])
}

func TestUpdateStatusRejectsRegression(t *testing.T) {
	record := openRecord()
	record.Status = models.StatusResolved
	store := &mockRecordStore{stored: []models.StoredProblem{{Position: 0, Record: record}}}
	svc := newTestProblemService(store, nil)

	_, err := svc.UpdateStatus(context.Background(), "plant-a", record.SubmissionID, dto.UpdateStatusRequest{Status: "OPEN", AssignedEngineer: "A. Hassan"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidTransition))
	assert.Empty(t, store.writes)
}

func TestStoreErrorsPropagate(t *testing.T) {
	store := &mockRecordStore{listErr: appErrors.Store(errors.New("timeout"), "failed to list records")}
	svc := newTestProblemService(store, nil)

	_, err := svc.List(context.Background(), "plant-a", models.ProblemFilter{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStore.Code, appErr.Code)
	assert.True(t, appErr.Retryable)
}

func TestDashboardCountsAndFilters(t *testing.T) {
	stored := make([]models.StoredProblem, 0)
	for i, r := range fixtureRecords() {
		stored = append(stored, models.StoredProblem{Position: i, Record: r})
	}
	svc := newTestProblemService(&mockRecordStore{stored: stored}, nil)

	resp, hit, err := svc.Dashboard(context.Background(), "plant-a", models.ProblemFilter{Priority: models.PriorityLow, Engineer: "ignored"})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, resp.ActiveTotal)
	require.Len(t, resp.ByLine, len(models.DefaultLines))
	assert.Equal(t, dto.LineCount{Line: "Line 7", Count: 2}, resp.ByLine[1])
	require.Len(t, resp.Problems, 1)
	assert.Equal(t, 3, resp.Problems[0].SubmissionID)
	assert.Equal(t, models.ActiveStatuses, resp.StatusOptions)

	_, _, err = svc.Dashboard(context.Background(), "plant-a", models.ProblemFilter{Status: models.StatusResolved})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestHistoryStatistics(t *testing.T) {
	stored := make([]models.StoredProblem, 0)
	for i, r := range fixtureRecords() {
		stored = append(stored, models.StoredProblem{Position: i, Record: r})
	}
	svc := newTestProblemService(&mockRecordStore{stored: stored}, nil)

	resp, _, err := svc.History(context.Background(), "plant-a", "", "B. Nabil")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalResolved)
	assert.Equal(t, 2, resp.Matching)
	assert.InDelta(t, 2.0, resp.AverageDaysToResolve, 0.0001)
	assert.Equal(t, "B. Nabil", resp.TopContributor)
	assert.Equal(t, 1, resp.CriticalResolved)
	assert.Equal(t, []string{"B. Nabil", "A. Hassan"}, resp.EngineerOptions)
}

func TestOpenSelectorLabels(t *testing.T) {
	long := openRecord()
	long.Task = "Main drive motor on the palletiser keeps tripping after roughly ten minutes"
	store := &mockRecordStore{stored: []models.StoredProblem{
		{Position: 0, Record: long},
		{Position: 1, Record: models.ProblemRecord{SubmissionID: 9, LineNumber: "Line 3", Task: "Done", Status: models.StatusResolved}},
	}}
	svc := newTestProblemService(store, nil)

	options, err := svc.OpenSelector(context.Background(), "plant-a")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "ID #3 - Line 7 - Main drive motor on the palletiser keeps tripping...", options[0].Label)
}

func TestHistoryCacheKeepsFiltersApart(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCacheService(repository.NewStatsCache(client, zap.NewNop()), nil, time.Minute, zap.NewNop(), true)

	svc := NewProblemService(ProblemServiceParams{
		Store:  &mockRecordStore{},
		Cache:  cache,
		Config: ProblemServiceConfig{Lines: models.DefaultLines},
	})
	ctx := context.Background()

	_, hit, err := svc.History(ctx, "plant-a", "a:b", "")
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = svc.History(ctx, "plant-a", "a", "b:")
	require.NoError(t, err)
	assert.False(t, hit, "a different filter must not reuse the cached payload")

	_, hit, err = svc.History(ctx, "plant-a", "a:b", "")
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestStatsCacheInvalidatedOnSubmit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCacheService(repository.NewStatsCache(client, zap.NewNop()), nil, time.Minute, zap.NewNop(), true)

	store := &mockRecordStore{}
	svc := NewProblemService(ProblemServiceParams{
		Store:     store,
		Cache:     cache,
		Validator: NewTrackerValidator(models.DefaultLines, nil),
		Config:    ProblemServiceConfig{Lines: models.DefaultLines},
	})
	ctx := context.Background()

	first, hit, err := svc.Dashboard(ctx, "plant-a", models.ProblemFilter{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, first.ActiveTotal)

	_, hit, err = svc.Dashboard(ctx, "plant-a", models.ProblemFilter{})
	require.NoError(t, err)
	assert.True(t, hit)

	_, err = svc.Submit(ctx, "plant-a", validSubmit())
	require.NoError(t, err)

	fresh, hit, err := svc.Dashboard(ctx, "plant-a", models.ProblemFilter{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, fresh.ActiveTotal)
}
