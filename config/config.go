// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	// DefaultSystemPromptBaseURL is the production SystemPrompt API endpoint.
	DefaultSystemPromptBaseURL = "https://api.systemprompt.io/v1"

	envSystemPromptAPIKey  = "SYSTEMPROMPT_API_KEY"
	envNotionAPIKey        = "NOTION_API_KEY"
	envSystemPromptBaseURL = "SYSTEMPROMPT_BASE_URL"
)

// Config holds the credentials and endpoints the server needs at startup.
type Config struct {
	SystemPromptAPIKey  string
	NotionAPIKey        string
	SystemPromptBaseURL string
}

// Load reads configuration from the environment, falling back to a .env
// file in the current directory if present. Both API keys are required.
func Load() (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	apiKey := os.Getenv(envSystemPromptAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is required", envSystemPromptAPIKey)
	}

	notionKey := os.Getenv(envNotionAPIKey)
	if notionKey == "" {
		return nil, fmt.Errorf("%s environment variable is required", envNotionAPIKey)
	}

	baseURL := os.Getenv(envSystemPromptBaseURL)
	if baseURL == "" {
		baseURL = DefaultSystemPromptBaseURL
	}

	return &Config{
		SystemPromptAPIKey:  apiKey,
		NotionAPIKey:        notionKey,
		SystemPromptBaseURL: baseURL,
	}, nil
}
