package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/access-cli/internal/model"
)

func newTestCache() *Cache {
	return NewCache(model.DefaultFieldMap(), model.DefaultColumnMap())
}

func TestCache_FeaturesMemoised(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catchment.geojson", catchmentGeoJSON)
	c := newTestCache()
	ctx := context.Background()

	first, err := c.Features(ctx, path)
	require.NoError(t, err)
	require.Len(t, first.Features, 3)

	// Removing the file proves the second call never re-reads it.
	require.NoError(t, os.Remove(path))

	second, err := c.Features(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Collections)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCache_EquivalentPathsShareEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catchment.geojson", catchmentGeoJSON)
	c := newTestCache()
	ctx := context.Background()

	a, err := c.Features(ctx, path)
	require.NoError(t, err)
	b, err := c.Features(ctx, filepath.Join(dir, ".", "sub", "..", "catchment.geojson"))
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCache_SummaryMemoised(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lga.csv", summaryCSV)
	c := newTestCache()
	ctx := context.Background()

	first, err := c.Summary(ctx, path)
	require.NoError(t, err)
	second, err := c.Summary(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, path, first.Path)
	assert.Equal(t, 1, c.Stats().Tables)
}

func TestCache_ConcurrentFirstLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catchment.geojson", catchmentGeoJSON)
	c := newTestCache()

	var wg sync.WaitGroup
	results := make([]*model.FeatureCollection, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fc, err := c.Features(context.Background(), path)
			assert.NoError(t, err)
			results[i] = fc
		}(i)
	}
	wg.Wait()

	for _, fc := range results[1:] {
		assert.Same(t, results[0], fc)
	}
	assert.Equal(t, 1, c.Stats().Collections)
}

func TestCache_NotFound(t *testing.T) {
	c := newTestCache()
	missing := filepath.Join(t.TempDir(), "nope.geojson")

	_, err := c.Features(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, missing, FailedPath(err))

	_, err = c.Summary(context.Background(), "")
	assert.True(t, IsNotFound(err))
}

func TestCache_ParseErrorNotMemoised(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.geojson", "{not json")
	c := newTestCache()
	ctx := context.Background()

	_, err := c.Features(ctx, path)
	require.Error(t, err)
	assert.True(t, IsParse(err))
	assert.Equal(t, 0, c.Stats().Collections)

	writeFile(t, dir, "broken.geojson", catchmentGeoJSON)
	fc, err := c.Features(ctx, path)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 3)
}
