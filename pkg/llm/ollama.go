package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient implements Client against a local Ollama server through
// LangChain Go, for running the builder without a hosted provider.
type OllamaClient struct {
	llm   llms.Model
	model string
}

// NewOllamaClient creates a LangChain-backed Ollama completion client.
func NewOllamaClient(serverURL, model string) (*OllamaClient, error) {
	var opts []ollama.Option
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}
	if model != "" {
		opts = append(opts, ollama.WithModel(model))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaClient{llm: llm, model: model}, nil
}

// Complete implements Client using LangChain Go content generation.
func (c *OllamaClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	response, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Content == "" {
		return "", fmt.Errorf("response contained no content")
	}

	return response.Choices[0].Content, nil
}
