package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

// headerRows is the number of sheet rows above the first record.
const headerRows = 1

type storeObserver interface {
	ObserveStoreCall(op string, duration time.Duration, err error)
}

// RecordStore adapts a Sheet into a problem record store. Callers address
// records by 0-based logical position and fields by name; the store translates
// both into the sheet's 1-based cell coordinates using the schema table.
type RecordStore struct {
	sheet   Sheet
	metrics storeObserver
	logger  *zap.Logger

	mu      sync.Mutex
	ensured map[string]bool
}

// NewRecordStore constructs a RecordStore.
func NewRecordStore(sheet Sheet, metrics storeObserver, logger *zap.Logger) *RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore{sheet: sheet, metrics: metrics, logger: logger, ensured: make(map[string]bool)}
}

// EnsureSchema writes the canonical header into an empty sheet. It is
// idempotent and remembers sites it has already verified.
func (s *RecordStore) EnsureSchema(ctx context.Context, site string) error {
	s.mu.Lock()
	done := s.ensured[site]
	s.mu.Unlock()
	if done {
		return nil
	}

	rows, err := s.rows(ctx, site)
	if err != nil {
		return appErrors.Store(err, "failed to read sheet header")
	}

	if len(rows) == 0 {
		if err := s.call(ctx, "append_row", func(ctx context.Context) error {
			return s.sheet.AppendRow(ctx, site, models.Header())
		}); err != nil {
			return appErrors.Store(err, "failed to initialise sheet header")
		}
		s.logger.Info("sheet initialised", zap.String("site", site))
	} else if err := checkHeader(rows[0]); err != nil {
		return appErrors.Store(err, "sheet header does not match schema")
	}

	s.mu.Lock()
	s.ensured[site] = true
	s.mu.Unlock()
	return nil
}

// List returns the site's records in sheet order with their row positions.
func (s *RecordStore) List(ctx context.Context, site string) ([]models.StoredProblem, error) {
	if err := s.EnsureSchema(ctx, site); err != nil {
		return nil, err
	}
	rows, err := s.rows(ctx, site)
	if err != nil {
		return nil, appErrors.Store(err, "failed to list records")
	}
	if len(rows) <= headerRows {
		return []models.StoredProblem{}, nil
	}

	records := make([]models.StoredProblem, 0, len(rows)-headerRows)
	for i, row := range rows[headerRows:] {
		if isBlankRow(row) {
			continue
		}
		record, err := models.RecordFromRow(row)
		if err != nil {
			return nil, appErrors.Store(fmt.Errorf("sheet row %d: %w", i+headerRows+1, err), "sheet contains an unreadable record")
		}
		records = append(records, models.StoredProblem{Position: i, Record: record})
	}
	return records, nil
}

// Append writes record as a new row at the end of the sheet.
func (s *RecordStore) Append(ctx context.Context, site string, record models.ProblemRecord) error {
	if err := s.EnsureSchema(ctx, site); err != nil {
		return err
	}
	if err := s.call(ctx, "append_row", func(ctx context.Context) error {
		return s.sheet.AppendRow(ctx, site, record.Row())
	}); err != nil {
		return appErrors.Store(err, "failed to append record")
	}
	return nil
}

// UpdateField overwrites one named field of the record at position. Only
// fields the update flow owns may be written.
func (s *RecordStore) UpdateField(ctx context.Context, site string, position int, field models.Field, value string) error {
	col, ok := models.ColumnIndex(field)
	if !ok {
		return appErrors.Wrap(fmt.Errorf("unknown field %q", field), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unknown record field")
	}
	if !field.Updatable() {
		return appErrors.Wrap(fmt.Errorf("field %q is immutable", field), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "record field cannot be updated")
	}
	if position < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "record position out of range")
	}
	if err := s.EnsureSchema(ctx, site); err != nil {
		return err
	}

	row := position + headerRows + 1
	if err := s.call(ctx, "update_cell", func(ctx context.Context) error {
		return s.sheet.UpdateCell(ctx, site, row, col, value)
	}); err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "record no longer exists")
		}
		return appErrors.Store(err, "failed to update record")
	}
	return nil
}

func (s *RecordStore) rows(ctx context.Context, site string) ([][]string, error) {
	var rows [][]string
	err := s.call(ctx, "rows", func(ctx context.Context) error {
		var err error
		rows, err = s.sheet.Rows(ctx, site)
		return err
	})
	return rows, err
}

func (s *RecordStore) call(ctx context.Context, op string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if s.metrics != nil {
		s.metrics.ObserveStoreCall(op, time.Since(start), err)
	}
	if err != nil {
		s.logger.Warn("sheet call failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

func checkHeader(row []string) error {
	expected := models.Header()
	for i, name := range expected {
		var got string
		if i < len(row) {
			got = strings.TrimSpace(row[i])
		}
		if got != name {
			return fmt.Errorf("column %d is %q, want %q", i+1, got, name)
		}
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
