package ai

import (
	"fmt"
	"strings"
)

// ChatPrompt returns a prompt for a conversational turn over a note.
func ChatPrompt(history []Message, noteContext string) string {
	var turns strings.Builder
	for _, m := range history {
		turns.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
	}

	return fmt.Sprintf(`
You are a study assistant embedded in a note-taking app. Answer the latest
user message. Ground your answer in the note content when it is relevant.

Note content:
"""
%s
"""

Conversation so far:
%s
Respond with the assistant's next message only, as plain text.
`, noteContext, turns.String())
}

// SummarizePrompt returns a prompt that condenses a note.
func SummarizePrompt(content string) string {
	return fmt.Sprintf(`
Summarize the following note in at most five bullet points. Keep the
author's terminology. Output as Markdown bullets only.

Note content:
"""
%s
"""
`, content)
}

// QuizPrompt returns a prompt that generates review questions for a note.
func QuizPrompt(content string) string {
	return fmt.Sprintf(`
Generate up to five short review questions that test understanding of the
following note. Output as JSON:
[
  {"prompt": "...", "answer": "..."}
]

Note content:
"""
%s
"""
`, content)
}
