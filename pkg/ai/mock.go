package ai

import (
	"context"
	"fmt"
	"strings"
)

// Mock is a deterministic Assistant. It routes on keywords and extracts
// headings and sentences from the note, so the tooling behaves sensibly
// offline and tests get stable output.
type Mock struct{}

// NewMock creates a mock assistant.
func NewMock() *Mock {
	return &Mock{}
}

var _ Assistant = (*Mock)(nil)

// Chat answers the latest user turn from canned rules.
func (m *Mock) Chat(ctx context.Context, history []Message, noteContext string) (string, error) {
	var last string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			last = history[i].Content
			break
		}
	}
	if strings.TrimSpace(last) == "" {
		return "Ask me anything about this note.", nil
	}

	lower := strings.ToLower(last)
	switch {
	case strings.Contains(lower, "summar"):
		return m.Summarize(ctx, noteContext)
	case strings.Contains(lower, "quiz"), strings.Contains(lower, "question"):
		return "Try the quiz tool: it generates review questions from this note.", nil
	case strings.Contains(lower, "improve"), strings.Contains(lower, "tip"):
		return "Break long cells into smaller ones and start each with a heading; it keeps the note scannable.", nil
	default:
		if h := headings(noteContext); len(h) > 0 {
			return fmt.Sprintf("This note covers: %s. What would you like to dig into?", strings.Join(h, ", ")), nil
		}
		return "I don't have enough note content to work with yet. Write a few cells first.", nil
	}
}

// Summarize returns the note's headings, or its leading sentences when
// there are none.
func (m *Mock) Summarize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "Nothing to summarize yet.", nil
	}

	if h := headings(content); len(h) > 0 {
		var b strings.Builder
		b.WriteString("Key topics:\n")
		for _, heading := range h {
			fmt.Fprintf(&b, "- %s\n", heading)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}

	sentences := splitSentences(content)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	return strings.Join(sentences, " "), nil
}

// Quiz turns headings (or leading sentences) into review questions.
func (m *Mock) Quiz(ctx context.Context, content string) ([]Question, error) {
	if h := headings(content); len(h) > 0 {
		if len(h) > 5 {
			h = h[:5]
		}
		questions := make([]Question, 0, len(h))
		for _, heading := range h {
			questions = append(questions, Question{
				Prompt: fmt.Sprintf("What do you remember about %q?", heading),
				Answer: fmt.Sprintf("See the %q section of the note.", heading),
			})
		}
		return questions, nil
	}

	sentences := splitSentences(content)
	if len(sentences) == 0 {
		return nil, nil
	}
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}
	questions := make([]Question, 0, len(sentences))
	for _, s := range sentences {
		questions = append(questions, Question{
			Prompt: fmt.Sprintf("Complete this thought from your note: %q", trimWords(s, 6)),
			Answer: s,
		})
	}
	return questions, nil
}

func headings(content string) []string {
	var h []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if text != "" {
				h = append(h, text)
			}
		}
	}
	return h
}

func splitSentences(content string) []string {
	var sentences []string
	for _, raw := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	}) {
		s := strings.TrimSpace(raw)
		if len(strings.Fields(s)) >= 3 {
			sentences = append(sentences, s+".")
		}
	}
	return sentences
}

func trimWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " ..."
}
