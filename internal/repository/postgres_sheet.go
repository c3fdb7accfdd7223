package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const sheetTableDDL = `CREATE TABLE IF NOT EXISTS sheet_rows (
	site TEXT NOT NULL,
	row_number INTEGER NOT NULL,
	cells TEXT[] NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (site, row_number)
)`

type sheetRow struct {
	RowNumber int            `db:"row_number"`
	Cells     pq.StringArray `db:"cells"`
}

// PostgresSheet stores each site's worksheet as rows of TEXT[] cells. Postgres
// arrays are 1-based, so cell addressing matches the spreadsheet convention.
type PostgresSheet struct {
	db *sqlx.DB
}

// NewPostgresSheet constructs a PostgresSheet.
func NewPostgresSheet(db *sqlx.DB) *PostgresSheet {
	return &PostgresSheet{db: db}
}

// Migrate creates the backing table when missing.
func (s *PostgresSheet) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sheetTableDDL); err != nil {
		return fmt.Errorf("migrate sheet_rows: %w", err)
	}
	return nil
}

// Rows returns every row of the site's sheet ordered by row number.
func (s *PostgresSheet) Rows(ctx context.Context, site string) ([][]string, error) {
	const query = `SELECT row_number, cells FROM sheet_rows WHERE site = $1 ORDER BY row_number`
	var rows []sheetRow
	if err := s.db.SelectContext(ctx, &rows, query, site); err != nil {
		return nil, fmt.Errorf("list sheet rows: %w", err)
	}
	result := make([][]string, len(rows))
	for i, r := range rows {
		result[i] = []string(r.Cells)
	}
	return result, nil
}

// AppendRow writes cells below the last row of the site's sheet.
func (s *PostgresSheet) AppendRow(ctx context.Context, site string, cells []string) error {
	const query = `INSERT INTO sheet_rows (site, row_number, cells, updated_at)
		SELECT $1, COALESCE(MAX(row_number), 0) + 1, $2, $3 FROM sheet_rows WHERE site = $1`
	if _, err := s.db.ExecContext(ctx, query, site, pq.StringArray(cells), time.Now().UTC()); err != nil {
		return fmt.Errorf("append sheet row: %w", err)
	}
	return nil
}

// UpdateCell overwrites a single cell.
func (s *PostgresSheet) UpdateCell(ctx context.Context, site string, row, col int, value string) error {
	const query = `UPDATE sheet_rows SET cells[$3] = $4, updated_at = $5 WHERE site = $1 AND row_number = $2`
	res, err := s.db.ExecContext(ctx, query, site, row, col, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update sheet cell: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sheet cell: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update sheet cell row %d: %w", row, ErrRowNotFound)
	}
	return nil
}
