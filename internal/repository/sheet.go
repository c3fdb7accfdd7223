package repository

import (
	"context"
	"errors"
)

// ErrRowNotFound is returned when a cell update addresses a missing row.
var ErrRowNotFound = errors.New("sheet row not found")

// Sheet is the tabular store collaborator: one worksheet per site, rows and
// columns addressed 1-based as a spreadsheet does, row 1 holding the header.
type Sheet interface {
	// Rows returns every row of the site's sheet, header first. A site that
	// was never written returns no rows.
	Rows(ctx context.Context, site string) ([][]string, error)
	AppendRow(ctx context.Context, site string, cells []string) error
	UpdateCell(ctx context.Context, site string, row, col int, value string) error
}
