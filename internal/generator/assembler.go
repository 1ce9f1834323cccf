package generator

import (
	"fmt"

	"project-tracker/internal/models"
)

// Generator fabricates projects, ownership structures and stakeholders.
// It is deterministic for a given Source and never fails.
type Generator struct {
	s *Sampler
}

// New returns a generator drawing from src; nil means a clock-seeded source.
func New(src Source) *Generator {
	if src == nil {
		src = NewRandomSource()
	}
	return &Generator{s: NewSampler(src)}
}

// Fork returns a generator with an independent derived source.
func (g *Generator) Fork() *Generator {
	return &Generator{s: g.s.Fork()}
}

// ProgressBand is the inclusive progress range allowed for a status.
// Construction is deliberately wide.
func ProgressBand(status models.ProjectStatus) (lo, hi int) {
	switch status {
	case models.StatusProposal:
		return 0, 10
	case models.StatusFeasibility:
		return 10, 30
	case models.StatusPrelimDesign:
		return 30, 50
	case models.StatusDrawing:
		return 50, 70
	case models.StatusConstruction:
		return 20, 95
	case models.StatusCompleted:
		return 100, 100
	}
	return 0, 100
}

// epcLikely categories win general-contracting work more often.
func epcLikely(category models.ProjectCategory) bool {
	switch category {
	case models.CategoryInternational, models.CategoryNewEnergy, models.CategoryMunicipal:
		return true
	}
	return false
}

// ProjectsForCategory builds count projects. Curated names are used in order
// first, then names are synthesized from location and category.
func (g *Generator) ProjectsForCategory(category models.ProjectCategory, count int) []models.Project {
	projects := make([]models.Project, 0, count)
	for i := 0; i < count; i++ {
		projects = append(projects, g.project(category, i))
	}
	return projects
}

func (g *Generator) project(category models.ProjectCategory, index int) models.Project {
	international := category.IsInternational()
	short := category.ShortName()

	status := Pick(g.s, models.AllStatuses())
	lo, hi := ProgressBand(status)
	progress := g.s.IntRange(lo, hi)

	id := fmt.Sprintf("gen_%s_%d", short, index)

	locations := domesticLocations
	suffixes := domesticNameSuffixes
	if international {
		locations = internationalLocations
		suffixes = intlNameSuffixes
	}

	var name, location string
	if curated := curatedNames[category]; index < len(curated) {
		name = curated[index]
		if inferred, ok := InferLocation(name, international); ok {
			location = inferred
		} else {
			location = g.s.Pick(locations)
		}
	} else {
		location = g.s.Pick(locations)
		name = placeName(location) + short + g.s.Pick(suffixes)
	}

	capacity := g.Capacity(name, category)

	stakeholders := make([]models.Stakeholder, 0, 3)
	for j, n := 0, g.s.IntRange(1, 3); j < n; j++ {
		stakeholders = append(stakeholders, g.Stakeholder(id, j, international, location))
	}

	investor := g.InvestorProfile(international, location)

	epcOdds := 0.3
	if epcLikely(category) {
		epcOdds = 0.6
	}
	businessType := models.BusinessDesign
	if g.s.Chance(epcOdds) {
		businessType = models.BusinessEPC
	}

	contract, received := g.Financials(businessType, progress)

	return models.Project{
		ID:              id,
		Name:            name,
		Type:            category,
		BusinessType:    businessType,
		Status:          status,
		Location:        location,
		Investor:        investor,
		Capacity:        capacity,
		Manager:         g.Name(false, location),
		Stakeholders:    stakeholders,
		Progress:        progress,
		ContractValue:   contract,
		PaymentReceived: received,
	}
}
