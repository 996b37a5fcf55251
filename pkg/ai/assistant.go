// Package ai defines the assistant capability consumed by the note
// tooling: chat over a note's content, summaries and quiz generation.
// The interface is injected so a real model backend can replace the
// deterministic mock without touching repositories or the cell engine.
package ai

import "context"

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role
	Content string
}

// Question is one generated quiz item.
type Question struct {
	Prompt string
	Answer string
}

// Assistant is the pluggable AI capability. Implementations may fail;
// callers drop the turn rather than retry.
type Assistant interface {
	// Chat answers the latest user turn, using the note content as context.
	Chat(ctx context.Context, history []Message, noteContext string) (string, error)

	// Summarize produces a short summary of the content.
	Summarize(ctx context.Context, content string) (string, error)

	// Quiz generates review questions from the content.
	Quiz(ctx context.Context, content string) ([]Question, error)
}
