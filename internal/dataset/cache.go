// Package dataset loads the precomputed accessibility datasets and memoises
// them per path for the life of the process.
package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/access-cli/internal/model"
)

// Cache parses each distinct input path once and returns the same parsed
// value on every later call. Entries are never evicted. Concurrent first
// loads of a path share one parse; failed loads are not remembered.
type Cache struct {
	fields  model.FieldMap
	columns model.ColumnMap

	mu          sync.RWMutex
	collections map[string]*model.FeatureCollection
	tables      map[string]*model.SummaryTable
	group       singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Collections int   `json:"collections"`
	Tables      int   `json:"tables"`
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
}

// NewCache creates an empty Cache reading the given property and column names.
func NewCache(fields model.FieldMap, columns model.ColumnMap) *Cache {
	return &Cache{
		fields:      fields,
		columns:     columns,
		collections: make(map[string]*model.FeatureCollection),
		tables:      make(map[string]*model.SummaryTable),
	}
}

// Features returns the feature collection stored at path.
func (c *Cache) Features(ctx context.Context, path string) (*model.FeatureCollection, error) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	fc, ok := c.collections[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return fc, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do("features:"+key, func() (any, error) {
		c.mu.RLock()
		existing, ok := c.collections[key]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}

		parsed, err := ReadFeatures(ctx, path, c.fields)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.collections[key] = parsed
		c.mu.Unlock()

		zap.L().Info("dataset: features loaded",
			zap.String("component", "dataset.cache"),
			zap.String("path", path),
			zap.Int("features", len(parsed.Features)),
		)
		return parsed, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.FeatureCollection), nil
}

// Summary returns the region summary table stored at path.
func (c *Cache) Summary(ctx context.Context, path string) (*model.SummaryTable, error) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	tbl, ok := c.tables[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return tbl, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do("summary:"+key, func() (any, error) {
		c.mu.RLock()
		existing, ok := c.tables[key]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}

		parsed, err := ReadSummary(ctx, path, c.columns)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.tables[key] = parsed
		c.mu.Unlock()

		zap.L().Info("dataset: summary table loaded",
			zap.String("component", "dataset.cache"),
			zap.String("path", path),
			zap.Int("rows", len(parsed.Rows)),
		)
		return parsed, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.SummaryTable), nil
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Collections: len(c.collections),
		Tables:      len(c.tables),
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
	}
}

// cacheKey resolves path to a cleaned absolute path so that equivalent
// spellings share an entry.
func cacheKey(path string) (string, error) {
	if path == "" {
		return "", &NotFoundError{Path: path, Err: os.ErrNotExist}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &NotFoundError{Path: path, Err: err}
	}
	return filepath.Clean(abs), nil
}
