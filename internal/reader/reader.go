package reader

import (
	"compress/bzip2"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

// contextCheckInterval is how many rows are parsed between context
// cancellation checks.
const contextCheckInterval = 4096

// Reader loads yearly accident census files from a local data directory.
type Reader struct {
	dataDir          string
	suppressProgress bool
	logger           *slog.Logger
	metrics          *observability.Metrics
}

// New creates a Reader rooted at dataDir. When suppressProgress is set,
// per-file progress output is skipped; warnings still flow.
func New(dataDir string, suppressProgress bool, logger *slog.Logger, metrics *observability.Metrics) *Reader {
	return &Reader{
		dataDir:          dataDir,
		suppressProgress: suppressProgress,
		logger:           logger,
		metrics:          metrics,
	}
}

// Read parses one census file into a YearRecordSet. A file that does not
// exist yields a *domain.NotFoundError carrying the file name.
func (r *Reader) Read(ctx context.Context, filename string) (*domain.YearRecordSet, error) {
	start := time.Now()

	path := filepath.Join(r.dataDir, filename)
	f, err := os.Open(path)
	if err != nil {
		r.metrics.ReadErrors.Inc()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Filename: filename}
		}
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	set, err := r.parse(ctx, filename, bzip2.NewReader(f))
	if err != nil {
		r.metrics.ReadErrors.Inc()
		return nil, err
	}

	r.metrics.FilesRead.Inc()
	r.metrics.RecordsParsed.Add(float64(len(set.Records)))
	r.metrics.ReadDuration.Observe(time.Since(start).Seconds())

	if !r.suppressProgress {
		r.logger.Info("census file loaded",
			"file", filename,
			"records", len(set.Records),
			"duration", time.Since(start),
		)
	}
	return set, nil
}

// columnIndex locates the pipeline's typed columns in a header row.
// FARS spells longitude LONGITUD; the full spelling is also accepted.
type columnIndex struct {
	state, month, longitude, latitude int
}

func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{state: -1, month: -1, longitude: -1, latitude: -1}
	for i, name := range header {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "STATE":
			idx.state = i
		case "MONTH":
			idx.month = i
		case "LONGITUD", "LONGITUDE":
			idx.longitude = i
		case "LATITUDE":
			idx.latitude = i
		}
	}
	switch {
	case idx.state < 0:
		return idx, errors.New("missing STATE column")
	case idx.month < 0:
		return idx, errors.New("missing MONTH column")
	case idx.longitude < 0:
		return idx, errors.New("missing LONGITUD column")
	case idx.latitude < 0:
		return idx, errors.New("missing LATITUDE column")
	}
	return idx, nil
}

func (r *Reader) parse(ctx context.Context, filename string, src io.Reader) (*domain.YearRecordSet, error) {
	cr := csv.NewReader(src)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", filename, err)
	}
	idx, err := indexColumns(header)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	set := &domain.YearRecordSet{SourceFile: filename}
	for row := 1; ; row++ {
		if row%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("read %s: %w", filename, err)
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", filename, row, err)
		}

		rec, err := parseRecord(header, idx, fields)
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", filename, row, err)
		}
		set.Records = append(set.Records, rec)
	}

	return set, nil
}

// parseRecord builds a typed record from one CSV row. STATE and MONTH
// must be integers; a coordinate that is blank or unparsable is treated
// as the FARS missing sentinel rather than a hard failure.
func parseRecord(header []string, idx columnIndex, fields []string) (domain.AccidentRecord, error) {
	state, err := strconv.Atoi(strings.TrimSpace(fields[idx.state]))
	if err != nil {
		return domain.AccidentRecord{}, fmt.Errorf("bad STATE %q", fields[idx.state])
	}
	month, err := strconv.Atoi(strings.TrimSpace(fields[idx.month]))
	if err != nil {
		return domain.AccidentRecord{}, fmt.Errorf("bad MONTH %q", fields[idx.month])
	}

	rec := domain.AccidentRecord{
		State:     state,
		Month:     month,
		Longitude: parseCoordinate(fields[idx.longitude], 999.9999),
		Latitude:  parseCoordinate(fields[idx.latitude], 99.9999),
	}

	for i, name := range header {
		if i == idx.state || i == idx.month || i == idx.longitude || i == idx.latitude {
			continue
		}
		if i >= len(fields) {
			break
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string, len(header)-4)
		}
		rec.Extra[strings.ToUpper(strings.TrimSpace(name))] = fields[i]
	}

	return rec, nil
}

// parseCoordinate parses a decimal-degree field, mapping blank or
// unparsable values to the given unknown sentinel.
func parseCoordinate(s string, unknown float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknown
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return unknown
	}
	return v
}
