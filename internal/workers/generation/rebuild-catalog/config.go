// internal/workers/generation/rebuild-catalog/config.go
package rebuildcatalog

import "time"

type Config struct {
	Timeout time.Duration
	Seed    int64
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
