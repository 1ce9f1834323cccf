// internal/workers/generation/generate-stakeholder/config.go
package generatestakeholder

import "time"

type Config struct {
	Timeout time.Duration
	// Seed 0 draws a fresh seed per job unless the job supplies one.
	Seed int64
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
