package chat

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiResponder talks to the Gemini API.
type GeminiResponder struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*GeminiResponder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiResponder{client: client, model: model}, nil
}

func (r *GeminiResponder) Name() string { return "gemini" }

func (r *GeminiResponder) Reply(ctx context.Context, userInput string) (string, error) {
	return r.generate(ctx, systemPrompt, userInput, 0.7)
}

func (r *GeminiResponder) Generate(ctx context.Context, prompt string) (string, error) {
	return r.generate(ctx, "", prompt, 0.3)
}

func (r *GeminiResponder) generate(ctx context.Context, system, user string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: 300,
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(user), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generation: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generation: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", fmt.Errorf("gemini generation: empty content")
	}
	return content, nil
}
