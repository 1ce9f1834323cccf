// internal/workers/generation/generate-investor-profile/config.go
package generateinvestorprofile

import "time"

type Config struct {
	Timeout time.Duration
	Seed    int64
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
