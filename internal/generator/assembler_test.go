package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-tracker/internal/models"
)

func TestProjectsForCategory_CuratedThenSynthesized(t *testing.T) {
	g := New(NewSource(41))
	projects := g.ProjectsForCategory(models.CategoryGeneration, 14)
	require.Len(t, projects, 14)

	curated := CuratedNames(models.CategoryGeneration)
	require.Len(t, curated, 8)
	for i, p := range projects {
		assert.Equal(t, fmt.Sprintf("gen_发电_%d", i), p.ID)
		assert.Equal(t, models.CategoryGeneration, p.Type)
		if i < 8 {
			assert.Equal(t, curated[i], p.Name)
			continue
		}
		assert.NotContains(t, curated, p.Name)
		assert.Contains(t, p.Name, "发电")
		assert.True(t, hasAnySuffix(p.Name, domesticNameSuffixes), p.Name)
		assert.Contains(t, domesticLocations, p.Location)
	}
}

func TestProjectsForCategory_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := New(NewSource(seed))
		for _, category := range models.AllCategories() {
			for _, p := range g.ProjectsForCategory(category, 14) {
				require.Empty(t, Validate(p), "seed %d", seed)

				lo, hi := ProgressBand(p.Status)
				assert.GreaterOrEqual(t, p.Progress, lo)
				assert.LessOrEqual(t, p.Progress, hi)

				if want, ok := ExtractCapacity(p.Name); ok {
					assert.Equal(t, want, p.Capacity)
				} else if category == models.CategoryGrid {
					assert.True(t, strings.HasSuffix(p.Capacity, "MVA"), p.Capacity)
				}

				assert.GreaterOrEqual(t, len(p.Stakeholders), 1)
				assert.LessOrEqual(t, len(p.Stakeholders), 3)
				assert.True(t, p.BusinessType.Valid())
				assert.NotEmpty(t, p.Manager)
				if category.IsInternational() {
					assert.Contains(t, internationalLocations, p.Location)
				} else {
					assert.Contains(t, domesticLocations, p.Location)
				}
			}
		}
	}
}

func TestProjectsForCategory_InfersCuratedLocation(t *testing.T) {
	g := New(NewSource(42))
	projects := g.ProjectsForCategory(models.CategoryNewEnergy, 1)
	assert.Equal(t, "广东省阳江市", projects[0].Location)
	assert.Equal(t, "300MW", projects[0].Capacity)

	intl := g.ProjectsForCategory(models.CategoryInternational, 3)
	assert.Equal(t, "越南·海阳省", intl[2].Location)
	assert.Equal(t, "2×600MW", intl[2].Capacity)
}

func TestProjectsForCategory_BusinessTypeOdds(t *testing.T) {
	g := New(NewSource(43))
	share := func(category models.ProjectCategory) float64 {
		epc := 0
		projects := g.ProjectsForCategory(category, 1500)
		for _, p := range projects {
			if p.BusinessType == models.BusinessEPC {
				epc++
			}
		}
		return float64(epc) / float64(len(projects))
	}
	assert.InDelta(t, 0.6, share(models.CategoryMunicipal), 0.06)
	assert.InDelta(t, 0.3, share(models.CategorySurvey), 0.06)
}

func TestProgressBand(t *testing.T) {
	tests := []struct {
		status models.ProjectStatus
		lo, hi int
	}{
		{models.StatusProposal, 0, 10},
		{models.StatusFeasibility, 10, 30},
		{models.StatusPrelimDesign, 30, 50},
		{models.StatusDrawing, 50, 70},
		{models.StatusConstruction, 20, 95},
		{models.StatusCompleted, 100, 100},
	}
	for _, tt := range tests {
		lo, hi := ProgressBand(tt.status)
		assert.Equal(t, tt.lo, lo, tt.status)
		assert.Equal(t, tt.hi, hi, tt.status)
	}
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
