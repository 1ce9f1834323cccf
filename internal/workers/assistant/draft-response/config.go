// internal/workers/assistant/draft-response/config.go
package draftresponse

import "time"

type Config struct {
	GenAIBaseURL string
	APIKey       string
	Timeout      time.Duration
	MaxTokens    int
	Temperature  float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     60 * time.Second,
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}
