package generator

import (
	"fmt"

	"project-tracker/internal/models"
)

const minMinorityShare = 5

// InvestorProfile synthesizes the ownership structure of a project company:
// one controlling holder at 51-75% and one to three minority holders, each
// with at least 5%, summing to exactly 100.
func (g *Generator) InvestorProfile(international bool, location string) models.InvestorProfile {
	majorPool, minorPool := domesticMajorShareholders, domesticMinorShareholders
	if international {
		majorPool, minorPool = intlMajorShareholders, intlMinorShareholders
	}

	count := g.s.IntRange(2, 4)
	controlling := g.s.IntRange(51, 75)
	majorName := g.s.Pick(majorPool)

	holders := make([]models.Shareholder, 0, count)
	holders = append(holders, models.Shareholder{
		Name:       majorName,
		Type:       models.ShareholderControlling,
		Percentage: percent(controlling),
	})

	used := map[string]bool{majorName: true}
	remaining := 100 - controlling
	minorities := count - 1
	for k := 0; k < minorities-1; k++ {
		after := minorities - 1 - k
		share := g.s.IntRange(minMinorityShare, remaining-minMinorityShare*after)
		remaining -= share

		name := g.pickUnused(minorPool, used)
		used[name] = true
		holders = append(holders, models.Shareholder{
			Name:       name,
			Type:       models.ShareholderMinority,
			Percentage: percent(share),
		})
	}

	lastName := "Local Gov Investment"
	if !international {
		lastName = firstRunes(location, 3) + "城市建设投资集团"
	}
	holders = append(holders, models.Shareholder{
		Name:       lastName,
		Type:       models.ShareholderMinority,
		Percentage: percent(remaining),
	})

	return models.InvestorProfile{
		Name:         companyName(majorName, location, international),
		Shareholders: holders,
	}
}

func (g *Generator) pickUnused(pool []string, used map[string]bool) string {
	free := make([]string, 0, len(pool))
	for _, name := range pool {
		if !used[name] {
			free = append(free, name)
		}
	}
	if len(free) == 0 {
		return g.s.Pick(pool)
	}
	return g.s.Pick(free)
}

// companyName joins the head of the controlling holder's name, the head of
// the location and the locale suffix.
func companyName(majorName, location string, international bool) string {
	suffix := "发电有限公司"
	if international {
		suffix = "Power Company Ltd."
	}
	return firstRunes(majorName, 4) + firstRunes(location, 2) + suffix
}

func percent(v int) string {
	return fmt.Sprintf("%d%%", v)
}
