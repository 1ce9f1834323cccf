package generator

import (
	"fmt"
	"regexp"
	"strings"

	"project-tracker/internal/models"
)

// number, optional "<glyph> number", then a MW/GW unit.
var capacityPattern = regexp.MustCompile(`(?i)\d+(?:\.\d+)?(?:\s*[x×*]\s*\d+(?:\.\d+)?)?\s*(?:MW|GW)`)

var multiplierPattern = regexp.MustCompile(`\s*[xX×*]\s*`)

// ExtractCapacity pulls the leftmost rating token out of a project name,
// normalizing the multiplier glyph to "×" and the unit to upper case.
func ExtractCapacity(name string) (string, bool) {
	token := capacityPattern.FindString(name)
	if token == "" {
		return "", false
	}
	token = multiplierPattern.ReplaceAllString(token, "×")
	unit := token[len(token)-2:]
	value := strings.TrimSpace(token[:len(token)-2])
	return value + strings.ToUpper(unit), true
}

// SynthesizeCapacity invents a plausible rating. Grid projects are rated in MVA.
func (g *Generator) SynthesizeCapacity(category models.ProjectCategory) string {
	unit := "MW"
	if category == models.CategoryGrid {
		unit = "MVA"
	}
	return fmt.Sprintf("%d%s", g.s.IntRange(100, 1000), unit)
}

// Capacity returns the rating embedded in name, or a synthesized one.
func (g *Generator) Capacity(name string, category models.ProjectCategory) string {
	if c, ok := ExtractCapacity(name); ok {
		return c
	}
	return g.SynthesizeCapacity(category)
}
