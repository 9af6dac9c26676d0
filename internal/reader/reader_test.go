package reader

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRead_ParsesCensusFile(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	r := New("testdata", true, testLogger(), metrics)

	set, err := r.Read(context.Background(), "accident_2014.csv.bz2")
	require.NoError(t, err)

	assert.Equal(t, "accident_2014.csv.bz2", set.SourceFile)
	require.Len(t, set.Records, 7)

	first := set.Records[0]
	assert.Equal(t, 1, first.State)
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, -86.1234, first.Longitude)
	assert.Equal(t, 32.5678, first.Latitude)

	// Unused columns land in the open bag, typed columns do not.
	assert.Equal(t, "10001", first.Extra["ST_CASE"])
	assert.Equal(t, "15", first.Extra["DAY"])
	assert.Equal(t, "2", first.Extra["PERSONS"])
	assert.NotContains(t, first.Extra, "STATE")
	assert.NotContains(t, first.Extra, "LONGITUD")

	// Sentinel coordinates are preserved verbatim for downstream filtering.
	assert.Equal(t, 999.9999, set.Records[2].Longitude)
	assert.False(t, set.Records[2].HasCoordinates())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FilesRead))
	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.RecordsParsed))
}

func TestRead_MissingFile(t *testing.T) {
	r := New("testdata", true, testLogger(), observability.NewMetricsForTesting())

	_, err := r.Read(context.Background(), "accident_2049.csv.bz2")
	require.Error(t, err)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "accident_2049.csv.bz2", notFound.Filename)
	assert.Contains(t, err.Error(), "accident_2049.csv.bz2")
}

func TestRead_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accident_2020.csv.bz2")
	require.NoError(t, os.WriteFile(path, []byte("this is not a bzip2 stream"), 0o644))

	metrics := observability.NewMetricsForTesting()
	r := New(dir, true, testLogger(), metrics)

	_, err := r.Read(context.Background(), "accident_2020.csv.bz2")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReadErrors))
}

func TestRead_MissingColumn(t *testing.T) {
	r := New("testdata", true, testLogger(), observability.NewMetricsForTesting())

	_, err := r.Read(context.Background(), "accident_1999.csv.bz2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONTH")
}

func TestIndexColumns(t *testing.T) {
	t.Run("accepts full longitude spelling", func(t *testing.T) {
		idx, err := indexColumns([]string{"STATE", "MONTH", "LONGITUDE", "LATITUDE"})
		require.NoError(t, err)
		assert.Equal(t, 2, idx.longitude)
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		_, err := indexColumns([]string{" state", "Month ", "longitud", "latitude"})
		require.NoError(t, err)
	})

	t.Run("reports missing column", func(t *testing.T) {
		_, err := indexColumns([]string{"STATE", "MONTH", "LONGITUD"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LATITUDE")
	})
}

func TestParseCoordinate(t *testing.T) {
	assert.Equal(t, -86.5, parseCoordinate("-86.5", 999.9999))
	assert.Equal(t, 999.9999, parseCoordinate("", 999.9999))
	assert.Equal(t, 99.9999, parseCoordinate("n/a", 99.9999))
}
