// internal/workers/generation/rebuild-catalog/models.go
package rebuildcatalog

type Input struct {
	Seed int64 `json:"seed,omitempty"`
}

type Output struct {
	Seed       int64          `json:"seed"`
	Projects   int            `json:"projects"`
	Violations int            `json:"violations"`
	DurationMs int64          `json:"durationMs"`
	ByCategory map[string]int `json:"byCategory"`
}
