package generator

import (
	"fmt"

	"project-tracker/internal/models"
)

// Validate reports every consistency rule a project breaks. An empty result
// means the record is sound. Child statuses written by hand (outside every
// band pool) are not checked against the age bands.
func Validate(p models.Project) []string {
	var violations []string
	add := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf("%s: ", p.ID)+fmt.Sprintf(format, args...))
	}

	if !p.Type.Valid() {
		add("unknown category %q", p.Type)
	}
	if !p.Status.Valid() {
		add("unknown status %q", p.Status)
	} else if lo, hi := ProgressBand(p.Status); p.Progress < lo || p.Progress > hi {
		add("progress %d outside %s band [%d, %d]", p.Progress, p.Status, lo, hi)
	}
	if p.PaymentReceived < 0 || p.PaymentReceived > p.ContractValue {
		add("payment %d outside [0, %d]", p.PaymentReceived, p.ContractValue)
	}
	if embedded, ok := ExtractCapacity(p.Name); ok && embedded != normalizeCapacity(p.Capacity) {
		add("capacity %q does not match %q in name", p.Capacity, embedded)
	}
	for _, problem := range p.Investor.Validate() {
		add("investor: %s", problem)
	}

	for _, s := range p.Stakeholders {
		if s.Influence != models.InfluenceHigh && s.Influence != models.InfluenceMedium && s.Influence != models.InfluenceLow {
			add("stakeholder %s has influence %q", s.ID, s.Influence)
		}
		for _, c := range s.Children {
			if c.Age < 1 {
				add("stakeholder %s has a child aged %d", s.ID, c.Age)
			}
			if band, ok := bandOfStatus(c.Status); ok && band != StatusBand(c.Age) {
				add("stakeholder %s child aged %d has %s status %q", s.ID, c.Age, band, c.Status)
			}
		}
	}
	return violations
}

func normalizeCapacity(c string) string {
	if n, ok := ExtractCapacity(c); ok {
		return n
	}
	return c
}
