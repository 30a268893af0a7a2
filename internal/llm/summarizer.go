// Package llm narrates search results through the Gemini API. It is an
// optional collaborator: callers degrade to the raw paper listing when
// summarization fails.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"scholarbot/internal/paper"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const systemPrompt = `You are a research assistant. Summarize how the listed papers
relate to the user's question. Be concise. Only use information from the
paper list; never invent titles, authors, or findings.`

// Summarizer generates short narratives over search results.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a Gemini-backed summarizer.
func NewSummarizer(ctx context.Context, apiKey, model string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Summarizer{client: client, model: model}, nil
}

// Summarize produces a short narrative tying the papers to the query.
func (s *Summarizer) Summarize(ctx context.Context, query string, papers []*paper.Paper) (string, error) {
	prompt := buildPrompt(query, papers)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", paper.ErrProviderUnavailable)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty summary response: %w", paper.ErrProviderUnavailable)
	}
	return text, nil
}

// buildPrompt renders the query and papers as the model input.
func buildPrompt(query string, papers []*paper.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nPapers:\n", query)
	for i, p := range papers {
		fmt.Fprintf(&b, "%d. %s", i+1, p.Title)
		if len(p.Authors) > 0 {
			fmt.Fprintf(&b, " — %s", strings.Join(p.Authors, ", "))
		}
		if p.HasYear() {
			fmt.Fprintf(&b, " (%d)", p.Year)
		}
		b.WriteString("\n")
		if p.Abstract != "" {
			fmt.Fprintf(&b, "   %s\n", p.Abstract)
		}
	}
	return b.String()
}
