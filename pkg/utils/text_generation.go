package utils

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator sends a prompt to a generative text service and returns the raw text.
// Implementations do not retry; retry policy belongs to the caller.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextGeneratorFunc adapts a plain function to TextGenerator.
type TextGeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f TextGeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewTextGenerator Factory function to create either OpenAI or Gemini client based on config
// When apiKey is empty the returned generator fails every call with a GenerationError.
func NewTextGenerator(provider, apiKey, model string) (TextGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		switch strings.ToLower(provider) {
		case "openai", "gemini", "":
			return unconfiguredGenerator(provider), nil
		}
	}

	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAITextClient(apiKey, model), nil
	case "gemini", "":
		client, err := NewGeminiTextClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s. Use 'openai' or 'gemini'", provider)
	}
}

func unconfiguredGenerator(provider string) TextGenerator {
	return TextGeneratorFunc(func(context.Context, string) (string, error) {
		return "", &GenerationError{
			Message: "Text generation is not configured",
			Err:     fmt.Errorf("missing API key for provider %q", provider),
		}
	})
}
