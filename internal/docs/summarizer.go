// Package docs turns uploaded study material into short summaries so
// students can ask for the gist of a syllabus or lecture notes.
package docs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/campuspal/schedule-assistant/internal/chat"
	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
)

// maxPromptChars bounds how much document text goes into one prompt.
const maxPromptChars = 12000

// Summary is the result of summarizing one document.
type Summary struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Pages    int    `json:"pages"`
	Summary  string `json:"summary"`
}

// Summarizer extracts document text and asks the chat provider for a
// summary.
type Summarizer struct {
	responder chat.Responder
}

func NewSummarizer(responder chat.Responder) *Summarizer {
	return &Summarizer{responder: responder}
}

// Enabled reports whether a chat provider is available to summarize.
func (s *Summarizer) Enabled() bool {
	return s.responder != nil
}

// Summarize reads one document and produces a short summary of it.
func (s *Summarizer) Summarize(ctx context.Context, filename string, r io.Reader) (*Summary, error) {
	if s.responder == nil {
		return nil, domerrors.ErrProviderDisabled
	}

	format, err := FormatFor(filename)
	if err != nil {
		return nil, err
	}

	text, pages, err := Extract(r, format)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("document has no extractable text: %w", domerrors.ErrInvalidInput)
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	prompt := fmt.Sprintf(
		"Summarize the following document for a student in a few short paragraphs. "+
			"Keep key dates, topics and requirements.\n\nDocument (%s, %d pages):\n%s",
		format, pages, text)

	summary, err := s.responder.Generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "document summarization failed",
			"filename", filename,
			"provider", s.responder.Name(),
			"error", err)
		return nil, fmt.Errorf("summarize document: %w", err)
	}

	return &Summary{
		Filename: filename,
		Format:   format,
		Pages:    pages,
		Summary:  summary,
	}, nil
}
