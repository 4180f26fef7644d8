package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelection_NormalisesRegion(t *testing.T) {
	sel := NewSelection([]string{"Industrial", " ", ""}, "  ")
	assert.Equal(t, AllRegions, sel.Region)
	assert.Equal(t, []string{"Industrial"}, sel.LandUses)
	assert.True(t, sel.IsAllRegions())
}

func TestSelection_HasLandUse(t *testing.T) {
	sel := NewSelection([]string{LandUseIndustrial}, "Hume")
	assert.True(t, sel.HasLandUse(LandUseIndustrial))
	assert.False(t, sel.HasLandUse(LandUsePrimaryProduction))
	assert.False(t, sel.HasLandUse(""))
}

func TestSelection_MatchesRegion(t *testing.T) {
	all := DefaultSelection()
	assert.True(t, all.MatchesRegion("Hume"))
	assert.False(t, all.MatchesRegion(""))

	hume := NewSelection(LandUses(), "Hume")
	assert.True(t, hume.MatchesRegion("Hume"))
	assert.False(t, hume.MatchesRegion("hume"))
	assert.False(t, hume.MatchesRegion("Melton"))
}

func TestRegionSummary_UnderservedPct(t *testing.T) {
	r := RegionSummary{Region: "Melton", ServedPct: 22.5}
	assert.InDelta(t, 77.5, r.UnderservedPct(), 1e-9)
}
