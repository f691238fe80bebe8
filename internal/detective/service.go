// Package detective implements the five AI-assisted game tasks: case
// generation, clue analysis, suspect analysis, interviews and solution
// grading. Each task builds a prompt, calls the completion gateway,
// normalizes the response and falls back to a safe default when the model
// fails - callers always get a schema-complete result.
package detective

import (
	"context"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

const (
	temperature        = 0.7
	caseGenMaxTokens   = 8192
	analysisMaxTokens  = 2048
	interviewMaxTokens = 2048
)

// Completer is the completion gateway surface this package needs.
// *ai.Client satisfies it.
type Completer interface {
	FetchCompletion(
		ctx context.Context,
		messages []openai.ChatCompletionMessage,
		temperature float32,
		maxTokens int,
	) (string, error)
}

// Service runs the game tasks against an injected completion gateway.
type Service struct {
	ai     Completer
	logger *slog.Logger
}

func NewService(ai Completer, logger *slog.Logger) *Service {
	return &Service{
		ai:     ai,
		logger: logger.With("source", "detective.Service"),
	}
}

func systemAndUser(systemPrompt, userPrompt string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}
}
