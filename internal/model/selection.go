package model

import "strings"

// AllRegions is the region sentinel that disables region filtering.
const AllRegions = "All"

// Selection is the user's current filter choice. It is scoped to a single
// request and never persisted.
type Selection struct {
	LandUses []string `json:"land_uses" yaml:"land_uses"`
	Region   string   `json:"region" yaml:"region"`
}

// NewSelection builds a Selection, normalising an empty region to AllRegions.
func NewSelection(landUses []string, region string) Selection {
	region = strings.TrimSpace(region)
	if region == "" {
		region = AllRegions
	}
	lu := make([]string, 0, len(landUses))
	for _, l := range landUses {
		if l = strings.TrimSpace(l); l != "" {
			lu = append(lu, l)
		}
	}
	return Selection{LandUses: lu, Region: region}
}

// DefaultSelection selects every land use in every region.
func DefaultSelection() Selection {
	return NewSelection(LandUses(), AllRegions)
}

// IsAllRegions reports whether the selection spans every region.
func (s Selection) IsAllRegions() bool {
	return s.Region == "" || s.Region == AllRegions
}

// HasLandUse reports whether lu is selected. An empty lu never matches.
func (s Selection) HasLandUse(lu string) bool {
	if lu == "" {
		return false
	}
	for _, l := range s.LandUses {
		if l == lu {
			return true
		}
	}
	return false
}

// MatchesRegion reports whether region passes the region filter. An empty
// region never matches.
func (s Selection) MatchesRegion(region string) bool {
	if region == "" {
		return false
	}
	return s.IsAllRegions() || s.Region == region
}
