package backend

import "fmt"

// OpenAI-compatible providers and their base URLs
var openAICompatibleProviders = map[string]string{
	"mistral":  "https://api.mistral.ai/v1",
	"groq":     "https://api.groq.com/openai/v1",
	"deepseek": "https://api.deepseek.com/v1",
}

func New(cfg Config) (Backend, error) {
	switch cfg.Provider {
	case "claude":
		return newClaude(cfg), nil
	case "openai":
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://api.openai.com/v1"
		}

		if cfg.Model == "" {
			cfg.Model = "gpt-4o-mini"
		}

		return newOpenAICompatible(cfg), nil
	case "ollama":
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434"
		}

		// Ollama's OpenAI-compatible endpoint
		cfg.BaseURL += "/v1"
		cfg.APIKey = "ollama"

		return newOpenAICompatible(cfg), nil
	default:
		if baseURL, ok := openAICompatibleProviders[cfg.Provider]; ok {
			if cfg.BaseURL == "" {
				cfg.BaseURL = baseURL
			}
			return newOpenAICompatible(cfg), nil
		}
		return nil, fmt.Errorf("unknown backend provider: %s", cfg.Provider)
	}
}
