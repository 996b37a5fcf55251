// Package lint is a thin advisory rule-matcher over cell content.
// Issues are suggestions only and never block a save.
package lint

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue is one advisory finding.
type Issue struct {
	Line       int // 1-based
	Message    string
	Suggestion string
}

const maxLineLength = 120

var wordPattern = regexp.MustCompile(`\w+`)

// findDuplicateWord reports the first word that immediately repeats on the
// line, ignoring case, together with the line rewritten without the repeat.
func findDuplicateWord(line string) (word, fixed string, ok bool) {
	spans := wordPattern.FindAllStringIndex(line, -1)
	for i := 1; i < len(spans); i++ {
		prev := line[spans[i-1][0]:spans[i-1][1]]
		cur := line[spans[i][0]:spans[i][1]]
		gap := line[spans[i-1][1]:spans[i][0]]
		if strings.TrimSpace(gap) != "" {
			continue
		}
		if strings.EqualFold(prev, cur) {
			return prev, line[:spans[i-1][1]] + line[spans[i][1]:], true
		}
	}
	return "", "", false
}

// Lint scans markdown content and reports advisory issues.
func Lint(content string) []Issue {
	var issues []Issue

	fenceOpen := false
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1

		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fenceOpen = !fenceOpen
			continue
		}
		if fenceOpen {
			continue
		}

		if trimmed := strings.TrimRight(line, " \t"); trimmed != line {
			issues = append(issues, Issue{
				Line:       lineNo,
				Message:    "trailing whitespace",
				Suggestion: trimmed,
			})
		}

		if strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#")) == "" && strings.HasPrefix(strings.TrimSpace(line), "#") {
			issues = append(issues, Issue{
				Line:    lineNo,
				Message: "empty heading",
			})
		}

		if word, fixed, ok := findDuplicateWord(line); ok {
			issues = append(issues, Issue{
				Line:       lineNo,
				Message:    fmt.Sprintf("duplicated word %q", word),
				Suggestion: fixed,
			})
		}

		if len(line) > maxLineLength {
			issues = append(issues, Issue{
				Line:    lineNo,
				Message: fmt.Sprintf("line longer than %d characters", maxLineLength),
			})
		}
	}

	if fenceOpen {
		issues = append(issues, Issue{
			Line:       len(strings.Split(content, "\n")),
			Message:    "unclosed code fence",
			Suggestion: "```",
		})
	}

	return issues
}
