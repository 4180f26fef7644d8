// Package dashboard assembles the Service Intensity and Underserved Severity
// views from the loaded datasets for a filter selection.
package dashboard

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/access-cli/internal/aggregate"
	"github.com/sells-group/access-cli/internal/config"
	"github.com/sells-group/access-cli/internal/dataset"
	"github.com/sells-group/access-cli/internal/model"
)

// Dashboard owns the dataset cache and the configured input paths. After
// Load succeeds it is safe for concurrent readers.
type Dashboard struct {
	cache *dataset.Cache
	data  config.DataConfig
	view  config.MapConfig

	catchment   *model.FeatureCollection
	underserved *model.FeatureCollection
	summary     *model.SummaryTable
}

// New creates a Dashboard over cache. Passing a shared cache lets several
// dashboards reuse parsed datasets.
func New(cache *dataset.Cache, data config.DataConfig, view config.MapConfig) *Dashboard {
	if data.TopN <= 0 {
		data.TopN = aggregate.DefaultTopN
	}
	return &Dashboard{cache: cache, data: data, view: view}
}

// Load reads all three datasets concurrently. The returned error is the
// loader's *dataset.NotFoundError or *dataset.ParseError for the first
// failing path.
func (d *Dashboard) Load(ctx context.Context) error {
	var (
		catchment   *model.FeatureCollection
		underserved *model.FeatureCollection
		summary     *model.SummaryTable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catchment, err = d.cache.Features(gctx, d.data.Catchment)
		return err
	})
	g.Go(func() error {
		var err error
		underserved, err = d.cache.Features(gctx, d.data.Underserved)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = d.cache.Summary(gctx, d.data.Summary)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	d.catchment = catchment
	d.underserved = underserved
	d.summary = summary

	if missing := dataset.MissingRegions(catchment, summary); len(missing) > 0 {
		zap.L().Warn("dashboard: catchment regions missing from summary table",
			zap.Strings("regions", missing),
		)
	}
	return nil
}

// Loaded reports whether Load has completed successfully.
func (d *Dashboard) Loaded() bool {
	return d.catchment != nil && d.underserved != nil && d.summary != nil
}

// Catchment returns the loaded catchment collection.
func (d *Dashboard) Catchment() *model.FeatureCollection { return d.catchment }

// Underserved returns the loaded underserved collection.
func (d *Dashboard) Underserved() *model.FeatureCollection { return d.underserved }

// Summary returns the loaded region summary table.
func (d *Dashboard) Summary() *model.SummaryTable { return d.summary }

// CacheStats returns the statistics of the backing dataset cache.
func (d *Dashboard) CacheStats() dataset.CacheStats { return d.cache.Stats() }

// Options lists the values the filter controls offer.
type Options struct {
	LandUses []string `json:"land_uses"`
	Regions  []string `json:"regions"`
	Map      MapView  `json:"map"`
}

// MapView is the initial map viewport.
type MapView struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Zoom      int     `json:"zoom"`
}

// Options returns the land-use enumeration and the region choices, with the
// all-regions sentinel first.
func (d *Dashboard) Options() Options {
	regions := []string{model.AllRegions}
	if d.summary != nil {
		regions = append(regions, aggregate.RegionNames(d.summary.Rows)...)
	}
	return Options{
		LandUses: model.LandUses(),
		Regions:  regions,
		Map: MapView{
			CenterLat: d.view.CenterLat,
			CenterLon: d.view.CenterLon,
			Zoom:      d.view.Zoom,
		},
	}
}

// HasRegion reports whether region is a selectable region or the
// all-regions sentinel.
func (d *Dashboard) HasRegion(region string) bool {
	if region == "" || region == model.AllRegions {
		return true
	}
	if d.summary == nil {
		return false
	}
	for _, r := range d.summary.Rows {
		if r.Region == region {
			return true
		}
	}
	return false
}

// ErrNotLoaded is returned by view builders before Load succeeds.
var ErrNotLoaded = eris.New("dashboard: datasets not loaded")
