// internal/workers/generation/generate-investor-profile/models.go
package generateinvestorprofile

import "project-tracker/internal/models"

type Input struct {
	ProjectID     string `json:"projectId,omitempty"`
	International bool   `json:"international,omitempty"`
	Location      string `json:"location,omitempty"`
	Seed          int64  `json:"seed,omitempty"`
}

type Output struct {
	Investor           models.InvestorProfile `json:"investor"`
	ControllingPercent int                    `json:"controllingPercent"`
	Seed               int64                  `json:"seed"`
}
