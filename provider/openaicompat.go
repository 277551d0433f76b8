package provider

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// compatClient serves every backend that speaks the OpenAI chat-completions
// format (OpenRouter, Groq) through the official openai-go SDK pointed at the
// backend's base URL.
type compatClient struct {
	opts      []option.RequestOption
	maxTokens int64
}

func newCompatClient(info Info, apiKey string) *compatClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if info.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(info.BaseURL))
	}
	return &compatClient{opts: opts, maxTokens: info.MaxTokens}
}

func (c *compatClient) Complete(ctx context.Context, prompt, model string) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
