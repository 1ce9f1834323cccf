package generator

import "project-tracker/internal/models"

// ChildBand names the life stage a child's status is drawn for.
type ChildBand string

const (
	BandPreschool ChildBand = "preschool"
	BandPrimary   ChildBand = "primary"
	BandSecondary ChildBand = "secondary"
	BandTertiary  ChildBand = "tertiary"
	BandEmployed  ChildBand = "employed"
)

// StatusBand maps a child's age to its band.
func StatusBand(age int) ChildBand {
	switch {
	case age < 6:
		return BandPreschool
	case age < 12:
		return BandPrimary
	case age < 18:
		return BandSecondary
	case age < 23:
		return BandTertiary
	default:
		return BandEmployed
	}
}

// BandPool returns the status pool for a band.
func BandPool(band ChildBand) []string {
	var pool []string
	switch band {
	case BandPreschool:
		pool = childPreschool
	case BandPrimary:
		pool = childPrimary
	case BandSecondary:
		pool = childSecondary
	case BandTertiary:
		pool = childTertiary
	case BandEmployed:
		pool = childEmployed
	}
	return append([]string(nil), pool...)
}

// bandOfStatus reports which band pool a status belongs to, if any.
func bandOfStatus(status string) (ChildBand, bool) {
	for _, band := range []ChildBand{BandPreschool, BandPrimary, BandSecondary, BandTertiary, BandEmployed} {
		for _, s := range BandPool(band) {
			if s == status {
				return band, true
			}
		}
	}
	return "", false
}

// Children draws one or two children for a parent. The first child is born
// when the parent is 24-30; siblings are 2-5 years apart and never younger
// than one. A parent too young for the offset has no children.
func (g *Generator) Children(parentAge int) []models.ChildInfo {
	count := g.s.IntRange(1, 2)
	base := parentAge - g.s.IntRange(24, 30)
	if base < 0 {
		return nil
	}

	children := make([]models.ChildInfo, 0, count)
	for i := 0; i < count; i++ {
		age := base - i*g.s.IntRange(2, 5)
		if age < 1 {
			age = 1
		}
		gender := models.GenderFemale
		if g.s.Chance(0.5) {
			gender = models.GenderMale
		}
		children = append(children, models.ChildInfo{
			Gender: gender,
			Age:    age,
			Status: g.s.Pick(BandPool(StatusBand(age))),
		})
	}
	return children
}
