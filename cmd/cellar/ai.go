package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/cellar/pkg/ai"
	"github.com/spf13/cobra"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Ask the assistant about a note",
	Long: `Run the assistant against a note's content. With GEMINI_API_KEY set the
Gemini model is used; otherwise a deterministic offline assistant answers.`,
}

var aiChatCmd = &cobra.Command{
	Use:   "chat [note-id] [prompt]",
	Short: "Ask a question about a note",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		content := loadNoteContent(ctx, args[0])
		assistant := newAssistant(ctx)

		prompt := strings.Join(args[1:], " ")
		reply, err := assistant.Chat(ctx, []ai.Message{{Role: ai.RoleUser, Content: prompt}}, content)
		if err != nil {
			fatal("Assistant failed", err)
		}
		fmt.Println(reply)
	},
}

var aiSummarizeCmd = &cobra.Command{
	Use:   "summarize [note-id]",
	Short: "Summarize a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		content := loadNoteContent(ctx, args[0])
		assistant := newAssistant(ctx)

		summary, err := assistant.Summarize(ctx, content)
		if err != nil {
			fatal("Assistant failed", err)
		}
		fmt.Println(summary)
	},
}

var aiQuizCmd = &cobra.Command{
	Use:   "quiz [note-id]",
	Short: "Generate review questions from a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		content := loadNoteContent(ctx, args[0])
		assistant := newAssistant(ctx)

		questions, err := assistant.Quiz(ctx, content)
		if err != nil {
			fatal("Assistant failed", err)
		}
		for i, q := range questions {
			fmt.Printf("%d. %s\n   -> %s\n", i+1, q.Prompt, q.Answer)
		}
	},
}

func newAssistant(ctx context.Context) ai.Assistant {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		assistant, err := ai.NewGemini(ctx, key)
		if err != nil {
			fatal("Failed to connect to Gemini", err)
		}
		return assistant
	}
	return ai.NewMock()
}

// loadNoteContent joins a note's cells into the text the assistant sees.
func loadNoteContent(ctx context.Context, id string) string {
	v := mustOpenVault()

	note, err := v.Notes.Get(ctx, id)
	if err != nil {
		reportNoteError(id, err)
	}

	var parts []string
	for _, c := range note.Cells {
		if c.Content != "" {
			parts = append(parts, c.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func init() {
	rootCmd.AddCommand(aiCmd)
	aiCmd.AddCommand(aiChatCmd, aiSummarizeCmd, aiQuizCmd)
}
