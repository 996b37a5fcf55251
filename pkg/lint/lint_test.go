package lint

import (
	"strings"
	"testing"
)

func find(issues []Issue, substr string) *Issue {
	for i := range issues {
		if strings.Contains(issues[i].Message, substr) {
			return &issues[i]
		}
	}
	return nil
}

func TestLint_Clean(t *testing.T) {
	content := "# Title\n\nA perfectly fine line.\n\n```go\nx := 1\n```"
	if issues := Lint(content); len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestLint_TrailingWhitespace(t *testing.T) {
	issues := Lint("clean line\ndirty line   \n")
	issue := find(issues, "trailing whitespace")
	if issue == nil {
		t.Fatalf("expected trailing whitespace issue, got %+v", issues)
	}
	if issue.Line != 2 {
		t.Errorf("expected line 2, got %d", issue.Line)
	}
	if issue.Suggestion != "dirty line" {
		t.Errorf("unexpected suggestion %q", issue.Suggestion)
	}
}

func TestLint_EmptyHeading(t *testing.T) {
	issues := Lint("## \ncontent")
	if find(issues, "empty heading") == nil {
		t.Errorf("expected empty heading issue, got %+v", issues)
	}

	if issues := Lint("## Real Heading"); find(issues, "empty heading") != nil {
		t.Error("false positive on a real heading")
	}
}

func TestLint_DuplicatedWord(t *testing.T) {
	issues := Lint("this is is a mistake")
	issue := find(issues, "duplicated word")
	if issue == nil {
		t.Fatalf("expected duplicated word issue, got %+v", issues)
	}
	if issue.Suggestion != "this is a mistake" {
		t.Errorf("unexpected suggestion %q", issue.Suggestion)
	}

	// Case-insensitive
	if find(Lint("The the plan"), "duplicated word") == nil {
		t.Error("expected case-insensitive match")
	}

	// A repeat across punctuation is deliberate phrasing, not a typo.
	if find(Lint("very, very good"), "duplicated word") != nil {
		t.Error("false positive across punctuation")
	}

	if find(Lint("distinct words only here"), "duplicated word") != nil {
		t.Error("false positive on distinct words")
	}
}

func TestLint_LongLine(t *testing.T) {
	long := strings.Repeat("x", 121)
	if find(Lint(long), "longer than") == nil {
		t.Error("expected long line issue")
	}
	if find(Lint(strings.Repeat("x", 120)), "longer than") != nil {
		t.Error("false positive at exactly the limit")
	}
}

func TestLint_CodeFences(t *testing.T) {
	t.Run("Fenced Content is Skipped", func(t *testing.T) {
		content := "```\ntrailing inside fence   \nword word\n```"
		issues := Lint(content)
		if len(issues) != 0 {
			t.Errorf("fenced content must be skipped, got %+v", issues)
		}
	})

	t.Run("Unclosed Fence Reported", func(t *testing.T) {
		issues := Lint("text\n```go\ncode")
		issue := find(issues, "unclosed code fence")
		if issue == nil {
			t.Fatalf("expected unclosed fence issue, got %+v", issues)
		}
		if issue.Suggestion != "```" {
			t.Errorf("unexpected suggestion %q", issue.Suggestion)
		}
	})
}
