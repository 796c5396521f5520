package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiTextClient implements TextGenerator using Google's Gemini models
type GeminiTextClient struct {
	client *genai.Client
	model  string
}

// NewGeminiTextClient creates a new Gemini client
func NewGeminiTextClient(apiKey, model string) (*GeminiTextClient, error) {
	if model == "" {
		model = defaultGeminiModel
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTextClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiTextClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", &GenerationError{Message: "prompt cannot be empty"}
	}

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.4)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &GenerationError{Message: fmt.Sprintf("gemini API call failed: %v", err), Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &GenerationError{Message: "no content generated by Gemini", Err: errors.New("empty candidates")}
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return out.String(), nil
}

// Close closes the Gemini client
func (c *GeminiTextClient) Close() error {
	return c.client.Close()
}
