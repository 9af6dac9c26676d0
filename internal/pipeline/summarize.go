package pipeline

import (
	"context"
	"maps"
	"slices"

	"github.com/couchcryptid/fars-report/internal/domain"
)

// Summarize builds the month-by-year accident count matrix for the
// requested years. Years whose file cannot be read are skipped with a
// warning; when no records survive at all there is nothing to pivot and
// domain.ErrEmptyAggregate is returned.
func (l *Loader) Summarize(ctx context.Context, years []int) (*domain.SummaryMatrix, error) {
	tables := l.LoadYears(ctx, years)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byYear := make(map[int]*[12]int)
	totalRows := 0
	for _, table := range tables {
		if table == nil {
			continue
		}
		cells, ok := byYear[table.Year]
		if !ok {
			cells = new([12]int)
			byYear[table.Year] = cells
		}
		for _, month := range table.Months {
			totalRows++
			if month < 1 || month > 12 {
				// FARS encodes an unknown month as 99; such rows count
				// toward the aggregate but fit no matrix row.
				l.logger.Debug("dropping row with out-of-range month", "year", table.Year, "month", month)
				continue
			}
			cells[month-1]++
		}
	}

	if totalRows == 0 {
		return nil, domain.ErrEmptyAggregate
	}

	matrix := &domain.SummaryMatrix{
		Years:       slices.Sorted(maps.Keys(byYear)),
		GeneratedAt: domain.Now(),
	}
	for _, year := range matrix.Years {
		cells := byYear[year]
		for m := 0; m < 12; m++ {
			matrix.Cells[m] = append(matrix.Cells[m], cells[m])
		}
	}

	return matrix, nil
}
