package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

// Loader drives the per-year extract step and the cross-year summary.
type Loader struct {
	source  domain.RecordSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Loader reading census files from the given source.
func New(source domain.RecordSource, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
}

// LoadYears reads each requested year independently and projects it to
// its (month, year) table. The result is aligned positionally with
// years: a year whose file is missing or malformed contributes a nil
// entry and a warning, never an abort of the remaining years.
func (l *Loader) LoadYears(ctx context.Context, years []int) []*domain.YearMonthTable {
	tables := make([]*domain.YearMonthTable, len(years))
	for i, year := range years {
		if ctx.Err() != nil {
			l.logger.Warn("year loading cancelled", "reason", ctx.Err())
			return tables
		}

		table, err := l.loadYear(ctx, year)
		if err != nil {
			l.logger.Warn("skipping invalid year", "year", year, "error", err)
			l.metrics.YearsSkipped.Inc()
			continue
		}
		tables[i] = table
	}
	return tables
}

func (l *Loader) loadYear(ctx context.Context, year int) (*domain.YearMonthTable, error) {
	set, err := l.source.Read(ctx, domain.Filename(year))
	if err != nil {
		return nil, err
	}

	months := make([]int, 0, len(set.Records))
	for _, rec := range set.Records {
		months = append(months, rec.Month)
	}
	return &domain.YearMonthTable{Year: year, Months: months}, nil
}
