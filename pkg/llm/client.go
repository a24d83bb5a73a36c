// Package llm provides the completion clients used to generate website
// code. A completion is a single request/response exchange: one system
// prompt plus one user prompt in, one text blob out.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/weftdev/weft/pkg/config"
)

// ErrMissingAPIKey is returned before any network attempt when the selected
// provider requires a credential that is not configured.
var ErrMissingAPIKey = errors.New("API key is not configured (set WEFT_OPENROUTER_API_KEY or openrouter.api_key)")

// Client is the completion service used by the generation pipeline.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// New creates the completion client for the configured provider.
func New(cfg *config.Config) (Client, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaClient(cfg.Ollama.URL, cfg.Ollama.Model)
	case "openrouter", "":
		return NewOpenRouterClient(cfg.OpenRouter.BaseURL, cfg.OpenRouter.APIKey, cfg.OpenRouter.Model, cfg.OpenRouter.Timeout)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
