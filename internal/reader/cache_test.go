package reader

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

type countingSource struct {
	sets  map[string]*domain.YearRecordSet
	calls int
}

func (s *countingSource) Read(_ context.Context, filename string) (*domain.YearRecordSet, error) {
	s.calls++
	set, ok := s.sets[filename]
	if !ok {
		return nil, &domain.NotFoundError{Filename: filename}
	}
	return set, nil
}

func TestCachedReader_HitAvoidsReread(t *testing.T) {
	inner := &countingSource{sets: map[string]*domain.YearRecordSet{
		"accident_2014.csv.bz2": {SourceFile: "accident_2014.csv.bz2"},
	}}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedReader(inner, 4, metrics)

	first, err := cached.Read(context.Background(), "accident_2014.csv.bz2")
	require.NoError(t, err)
	second, err := cached.Read(context.Background(), "accident_2014.csv.bz2")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))
}

func TestCachedReader_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingSource{sets: map[string]*domain.YearRecordSet{
		"accident_2013.csv.bz2": {},
		"accident_2014.csv.bz2": {},
	}}
	cached := NewCachedReader(inner, 1, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, err := cached.Read(ctx, "accident_2013.csv.bz2")
	require.NoError(t, err)
	_, err = cached.Read(ctx, "accident_2014.csv.bz2") // evicts 2013
	require.NoError(t, err)
	_, err = cached.Read(ctx, "accident_2013.csv.bz2") // rereads
	require.NoError(t, err)

	assert.Equal(t, 3, inner.calls)
}

func TestCachedReader_ErrorsNotCached(t *testing.T) {
	inner := &countingSource{sets: map[string]*domain.YearRecordSet{}}
	cached := NewCachedReader(inner, 4, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, err := cached.Read(ctx, "accident_2049.csv.bz2")
	require.Error(t, err)

	// The file shows up later; the failure must not have been cached.
	inner.sets["accident_2049.csv.bz2"] = &domain.YearRecordSet{}
	_, err = cached.Read(ctx, "accident_2049.csv.bz2")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
