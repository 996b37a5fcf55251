package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is an Assistant backed by the Gemini API.
type Gemini struct {
	genaiClient *genai.Client
	model       *genai.GenerativeModel
}

var _ Assistant = (*Gemini)(nil)

// NewGemini creates a Gemini-backed assistant.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-pro")

	return &Gemini{
		genaiClient: client,
		model:       model,
	}, nil
}

// Close closes the underlying client.
func (g *Gemini) Close() error {
	return g.genaiClient.Close()
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return sb.String(), nil
}

// Chat answers the latest user turn with the note as context.
func (g *Gemini) Chat(ctx context.Context, history []Message, noteContext string) (string, error) {
	return g.generate(ctx, ChatPrompt(history, noteContext))
}

// Summarize condenses the content.
func (g *Gemini) Summarize(ctx context.Context, content string) (string, error) {
	return g.generate(ctx, SummarizePrompt(content))
}

// Quiz generates review questions for the content.
func (g *Gemini) Quiz(ctx context.Context, content string) ([]Question, error) {
	raw, err := g.generate(ctx, QuizPrompt(content))
	if err != nil {
		return nil, err
	}

	// Models tend to wrap JSON in a code fence; strip it before decoding.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var payload []struct {
		Prompt string `json:"prompt"`
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode quiz response: %w", err)
	}

	questions := make([]Question, 0, len(payload))
	for _, q := range payload {
		questions = append(questions, Question{Prompt: q.Prompt, Answer: q.Answer})
	}
	return questions, nil
}
