package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemorySheet keeps worksheets in process memory. It backs local development
// and tests; data is lost on restart.
type MemorySheet struct {
	mu     sync.RWMutex
	sheets map[string][][]string
}

// NewMemorySheet constructs an empty MemorySheet.
func NewMemorySheet() *MemorySheet {
	return &MemorySheet{sheets: make(map[string][][]string)}
}

// Rows returns a copy of every row of the site's sheet.
func (m *MemorySheet) Rows(_ context.Context, site string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.sheets[site]
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

// AppendRow adds a row at the bottom of the site's sheet.
func (m *MemorySheet) AppendRow(_ context.Context, site string, cells []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[site] = append(m.sheets[site], append([]string(nil), cells...))
	return nil
}

// UpdateCell overwrites one cell, growing the row when the column lies beyond
// its current end.
func (m *MemorySheet) UpdateCell(_ context.Context, site string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.sheets[site]
	if row < 1 || row > len(rows) {
		return fmt.Errorf("update cell row %d: %w", row, ErrRowNotFound)
	}
	if col < 1 {
		return fmt.Errorf("update cell: invalid column %d", col)
	}
	cells := rows[row-1]
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	rows[row-1] = cells
	return nil
}
