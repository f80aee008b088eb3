// Package chat provides the LLM fallback used when a query is not
// about the timetable, plus the text generation behind the document
// summarizer. Providers are optional; without an API key the service
// answers with canned replies only.
package chat

import (
	"context"
	"fmt"

	"github.com/campuspal/schedule-assistant/internal/config"
	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
)

// systemPrompt frames every chat completion.
const systemPrompt = "You are a friendly and helpful AI assistant who helps students " +
	"with their class schedules. You use emojis and casual language to make " +
	"conversations more engaging."

// Responder generates a free-form reply to user input.
type Responder interface {
	Reply(ctx context.Context, userInput string) (string, error)
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewFromConfig builds the configured provider. A config without a
// provider yields (nil, nil); callers treat a nil Responder as
// chat-disabled.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Responder, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q: %w", cfg.LLMProvider, domerrors.ErrProviderDisabled)
	}
}
