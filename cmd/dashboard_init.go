package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/access-cli/internal/dashboard"
	"github.com/sells-group/access-cli/internal/dataset"
	"github.com/sells-group/access-cli/internal/model"
)

// initDashboard validates the data config and loads all three datasets.
// Load failures name the offending path.
func initDashboard(ctx context.Context, mode string) (*dashboard.Dashboard, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	cache := dataset.NewCache(cfg.Data.Fields, cfg.Data.Columns)
	d := dashboard.New(cache, cfg.Data, cfg.Map)
	if err := d.Load(ctx); err != nil {
		path := dataset.FailedPath(err)
		zap.L().Error("dataset load failed", zap.String("path", path), zap.Error(err))
		switch {
		case dataset.IsNotFound(err):
			return nil, eris.Wrapf(err, "dataset not found: %s", path)
		case dataset.IsParse(err):
			return nil, eris.Wrapf(err, "dataset unreadable: %s", path)
		default:
			return nil, eris.Wrap(err, "load datasets")
		}
	}

	zap.L().Info("datasets loaded",
		zap.Int("catchment", d.Catchment().Len()),
		zap.Int("underserved", d.Underserved().Len()),
		zap.Int("regions", len(d.Summary().Rows)),
	)
	return d, nil
}

// addSelectionFlags registers the shared --region and --landuse flags.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("region", model.AllRegions, "region to show, or All")
	cmd.Flags().StringSlice("landuse", model.LandUses(), "land-use categories to include")
}

// selectionFromFlags reads and checks the selection flags against d.
func selectionFromFlags(cmd *cobra.Command, d *dashboard.Dashboard) (model.Selection, error) {
	region, _ := cmd.Flags().GetString("region")
	landUses, _ := cmd.Flags().GetStringSlice("landuse")

	for _, lu := range landUses {
		if !model.IsLandUse(lu) {
			return model.Selection{}, eris.Errorf("unknown land use %q (want one of %v)", lu, model.LandUses())
		}
	}
	if !d.HasRegion(region) {
		return model.Selection{}, eris.Errorf("unknown region %q", region)
	}
	return model.NewSelection(landUses, region), nil
}
