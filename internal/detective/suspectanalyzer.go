package detective

import (
	"context"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/normalize"
)

const defaultTrustworthiness = 50

var fallbackSuggestedQuestions = []string{"What were you doing?", "Did you see anything unusual?"}

// AnalyzeSuspect asks the model how believable a suspect is given the
// discovered clues and any interview history. Failures degrade to a neutral
// placeholder analysis.
func (s *Service) AnalyzeSuspect(
	ctx context.Context,
	suspect models.Suspect,
	clues []models.Clue,
	caseData models.Case,
	interview []models.InterviewTurn,
	language string,
) models.SuspectAnalysis {
	systemPrompt := suspectAnalysisPromptEN
	if language == languageThai {
		systemPrompt = suspectAnalysisPromptTH
	}
	messages := systemAndUser(systemPrompt,
		suspectAnalysisUserPrompt(suspect, clues, caseData, interview, language))

	raw, err := s.ai.FetchCompletion(ctx, messages, temperature, analysisMaxTokens)
	if err != nil {
		s.logger.Warn("suspect analysis failed, using fallback analysis",
			slog.String("suspect_id", suspect.ID), errors.SlogError(err))
		return models.SuspectAnalysis{
			SuspectID:          suspect.ID,
			Trustworthiness:    defaultTrustworthiness,
			Inconsistencies:    []string{},
			Connections:        []models.SuspectConnection{},
			SuggestedQuestions: fallbackSuggestedQuestions,
		}
	}

	payload, ok := normalize.ExtractPayload(raw)
	if !ok {
		payload = map[string]any{}
	}

	return s.formatSuspectAnalysis(payload, clues, suspect.ID)
}

func (s *Service) formatSuspectAnalysis(
	payload map[string]any,
	clues []models.Clue,
	suspectID string,
) models.SuspectAnalysis {
	trustworthiness := normalize.Clamp(
		normalize.Int(payload, defaultTrustworthiness, "trustworthiness"), 0, 100)

	inconsistencies := normalize.StringList(payload, "inconsistencies")
	if inconsistencies == nil {
		inconsistencies = []string{}
	}

	connections := []models.SuspectConnection{}
	for _, item := range normalize.List(payload, "connections") {
		conn, ok := item.(map[string]any)
		if !ok {
			continue
		}
		clueTitle := normalize.String(conn, "clue", "clueTitle")
		matched, ok := matchClue(clues, clueTitle)
		if !ok {
			s.logger.Debug("dropping connection to unknown clue",
				slog.String("clueTitle", clueTitle))
			continue
		}
		connections = append(connections, models.SuspectConnection{
			ClueID:         matched.ID,
			ConnectionType: normalize.StringOr(conn, "related", "type", "connectionType"),
			Description:    normalize.String(conn, "description"),
		})
	}

	suggestedQuestions := normalize.StringList(payload, "suggestedQuestions", "suggested_questions")
	if len(suggestedQuestions) == 0 {
		suggestedQuestions = fallbackSuggestedQuestions
	}

	return models.SuspectAnalysis{
		SuspectID:          suspectID,
		Trustworthiness:    trustworthiness,
		Inconsistencies:    inconsistencies,
		Connections:        connections,
		SuggestedQuestions: suggestedQuestions,
	}
}

// matchClue resolves a free-text clue title to a canonical clue.
func matchClue(clues []models.Clue, title string) (models.Clue, bool) {
	for _, clue := range clues {
		if normalize.NamesMatch(title, clue.Title) {
			return clue, true
		}
	}
	return models.Clue{}, false
}

// InterviewSuspect role-plays the suspect answering one question. This is a
// plain text completion: the answer is returned verbatim with no JSON step.
// Unlike the analysis tasks, gateway errors propagate because there is no
// meaningful degraded answer to put in a suspect's mouth.
func (s *Service) InterviewSuspect(
	ctx context.Context,
	question string,
	suspect models.Suspect,
	clues []models.Clue,
	caseData models.Case,
	previousTurns []models.InterviewTurn,
	language string,
) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: interviewSystemPrompt(suspect, caseData, language)},
	}
	for _, turn := range previousTurns {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.Question},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turn.Answer},
		)
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	answer, err := s.ai.FetchCompletion(ctx, messages, temperature, interviewMaxTokens)
	if err != nil {
		return "", errors.Wrap(err, "interview completion",
			slog.String("suspect_id", suspect.ID))
	}
	return answer, nil
}
