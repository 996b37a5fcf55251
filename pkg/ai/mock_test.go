package ai

import (
	"context"
	"strings"
	"testing"
)

const noteWithHeadings = `# Flights
Book the red-eye on Tuesday.

# Hotels
The one near the station has free cancellation.`

func TestMock_Chat(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	t.Run("Empty Prompt", func(t *testing.T) {
		reply, err := m.Chat(ctx, nil, noteWithHeadings)
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if reply == "" {
			t.Error("expected a fallback reply")
		}
	})

	t.Run("Summary Keyword Routes to Summarize", func(t *testing.T) {
		history := []Message{{Role: RoleUser, Content: "Can you summarize this?"}}
		reply, err := m.Chat(ctx, history, noteWithHeadings)
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if !strings.Contains(reply, "Flights") || !strings.Contains(reply, "Hotels") {
			t.Errorf("summary missing headings: %q", reply)
		}
	})

	t.Run("Uses Latest User Turn", func(t *testing.T) {
		history := []Message{
			{Role: RoleUser, Content: "summarize"},
			{Role: RoleAssistant, Content: "..."},
			{Role: RoleUser, Content: "any tips?"},
		}
		reply, err := m.Chat(ctx, history, noteWithHeadings)
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if !strings.Contains(reply, "heading") {
			t.Errorf("expected the tip response, got %q", reply)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		history := []Message{{Role: RoleUser, Content: "what is this about?"}}
		a, _ := m.Chat(ctx, history, noteWithHeadings)
		b, _ := m.Chat(ctx, history, noteWithHeadings)
		if a != b {
			t.Errorf("replies differ: %q vs %q", a, b)
		}
	})
}

func TestMock_Summarize(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	t.Run("Headings Win", func(t *testing.T) {
		summary, err := m.Summarize(ctx, noteWithHeadings)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if !strings.Contains(summary, "- Flights") || !strings.Contains(summary, "- Hotels") {
			t.Errorf("unexpected summary: %q", summary)
		}
	})

	t.Run("Falls Back to Sentences", func(t *testing.T) {
		content := "The trip starts Monday. We fly from Lisbon. Pack light this time. This sentence should not appear."
		summary, err := m.Summarize(ctx, content)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if !strings.Contains(summary, "The trip starts Monday") {
			t.Errorf("leading sentence missing: %q", summary)
		}
		if strings.Contains(summary, "should not appear") {
			t.Errorf("summary not truncated to three sentences: %q", summary)
		}
	})

	t.Run("Empty Content", func(t *testing.T) {
		summary, err := m.Summarize(ctx, "   ")
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if summary == "" {
			t.Error("expected placeholder summary")
		}
	})
}

func TestMock_Quiz(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	t.Run("From Headings", func(t *testing.T) {
		questions, err := m.Quiz(ctx, noteWithHeadings)
		if err != nil {
			t.Fatalf("Quiz failed: %v", err)
		}
		if len(questions) != 2 {
			t.Fatalf("expected 2 questions, got %d", len(questions))
		}
		if !strings.Contains(questions[0].Prompt, "Flights") {
			t.Errorf("unexpected prompt: %q", questions[0].Prompt)
		}
		if questions[0].Answer == "" {
			t.Error("expected an answer")
		}
	})

	t.Run("Caps at Five", func(t *testing.T) {
		var b strings.Builder
		for _, h := range []string{"A", "B", "C", "D", "E", "F", "G"} {
			b.WriteString("# " + h + "\n")
		}
		questions, err := m.Quiz(ctx, b.String())
		if err != nil {
			t.Fatalf("Quiz failed: %v", err)
		}
		if len(questions) != 5 {
			t.Errorf("expected cap of 5, got %d", len(questions))
		}
	})

	t.Run("Empty Content", func(t *testing.T) {
		questions, err := m.Quiz(ctx, "")
		if err != nil {
			t.Fatalf("Quiz failed: %v", err)
		}
		if len(questions) != 0 {
			t.Errorf("expected no questions, got %d", len(questions))
		}
	})
}

func TestHeadings(t *testing.T) {
	h := headings("# One\ntext\n  ## Two\n#\n### Three ###")
	if len(h) != 3 {
		t.Fatalf("expected 3 headings, got %v", h)
	}
	if h[0] != "One" || h[1] != "Two" {
		t.Errorf("unexpected headings: %v", h)
	}
}
