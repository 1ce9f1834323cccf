// internal/workers/generation/generate-stakeholder/models.go
package generatestakeholder

import "project-tracker/internal/models"

// Input either names a catalog project, from which prefix, region and
// index are derived, or spells them out.
type Input struct {
	ProjectID     string `json:"projectId,omitempty"`
	IDPrefix      string `json:"idPrefix,omitempty"`
	Index         int    `json:"index,omitempty"`
	International bool   `json:"international,omitempty"`
	Location      string `json:"location,omitempty"`
	Seed          int64  `json:"seed,omitempty"`
}

type Output struct {
	Stakeholder models.Stakeholder `json:"stakeholder"`
	Seed        int64              `json:"seed"`
}
