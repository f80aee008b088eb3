package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIResponder talks to an OpenAI-compatible chat completion API.
// A custom base URL points it at Groq or any other compatible host.
type OpenAIResponder struct {
	client openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAIResponder {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIResponder{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (r *OpenAIResponder) Name() string { return "openai" }

func (r *OpenAIResponder) Reply(ctx context.Context, userInput string) (string, error) {
	return r.complete(ctx, systemPrompt, userInput, 0.7)
}

func (r *OpenAIResponder) Generate(ctx context.Context, prompt string) (string, error) {
	return r.complete(ctx, "", prompt, 0.3)
}

func (r *OpenAIResponder) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(r.model),
		Messages:    messages,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(300),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: empty response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai completion: empty content")
	}
	return content, nil
}
