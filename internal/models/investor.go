// internal/models/investor.go
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ShareholderType marks a holder as controlling or minority.
type ShareholderType string

const (
	ShareholderControlling ShareholderType = "控股"
	ShareholderMinority    ShareholderType = "参股"
)

type Shareholder struct {
	Name       string          `json:"name"`
	Type       ShareholderType `json:"type"`
	Percentage string          `json:"percentage"`
}

// Percent parses the "65%" form.
func (s Shareholder) Percent() (int, error) {
	v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s.Percentage), "%"))
	if err != nil {
		return 0, fmt.Errorf("shareholder %q: bad percentage %q", s.Name, s.Percentage)
	}
	return v, nil
}

type InvestorProfile struct {
	Name         string        `json:"name"`
	Shareholders []Shareholder `json:"shareholders"`
}

// Validate checks the sum-to-100 and single-controller rules.
func (p InvestorProfile) Validate() []string {
	var problems []string
	total := 0
	controlling := 0
	for _, sh := range p.Shareholders {
		pct, err := sh.Percent()
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		total += pct
		if sh.Type == ShareholderControlling {
			controlling++
			if pct < 51 || pct > 75 {
				problems = append(problems, fmt.Sprintf("controlling holder %q has %d%%, want 51-75", sh.Name, pct))
			}
		}
	}
	if total != 100 {
		problems = append(problems, fmt.Sprintf("shareholdings sum to %d%%", total))
	}
	if controlling != 1 {
		problems = append(problems, fmt.Sprintf("%d controlling holders", controlling))
	}
	return problems
}
