package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITextClient implements TextGenerator with the chat completions API.
type OpenAITextClient struct {
	client *openai.Client
	model  string
}

func NewOpenAITextClient(apiKey, model string) *OpenAITextClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITextClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAITextClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", &GenerationError{Message: fmt.Sprintf("openai API call failed: %v", err), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Message: "no content generated by OpenAI"}
	}
	return resp.Choices[0].Message.Content, nil
}
