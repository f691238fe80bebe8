package detective

import (
	"context"
	"log/slog"

	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/normalize"
)

const (
	fallbackClueSummary = "This is an important clue that can help solve the mystery."
)

var fallbackNextSteps = []string{"Continue investigating", "Look for more clues"}

// AnalyzeClue asks the model what a clue means and how it connects to the
// suspects. Unparseable output degrades to the raw text as summary; a failed
// gateway call degrades to a fixed placeholder analysis.
func (s *Service) AnalyzeClue(
	ctx context.Context,
	clue models.Clue,
	suspects []models.Suspect,
	caseData models.Case,
	discoveredClues []models.Clue,
	language string,
) models.ClueAnalysis {
	systemPrompt := clueAnalysisPromptEN
	if language == languageThai {
		systemPrompt = clueAnalysisPromptTH
	}
	messages := systemAndUser(systemPrompt, clueAnalysisUserPrompt(clue, suspects, caseData, language))

	raw, err := s.ai.FetchCompletion(ctx, messages, temperature, analysisMaxTokens)
	if err != nil {
		s.logger.Warn("clue analysis failed, using fallback analysis",
			slog.String("clue_id", clue.ID), errors.SlogError(err))
		return models.ClueAnalysis{
			Summary:     fallbackClueSummary,
			Connections: []models.ClueConnection{},
			NextSteps:   fallbackNextSteps,
		}
	}

	payload, ok := normalize.ExtractPayload(raw)
	if !ok {
		// Keep the model's prose as the summary so nothing is dropped.
		payload = map[string]any{"summary": raw}
	}

	return s.formatClueAnalysis(payload, suspects)
}

func (s *Service) formatClueAnalysis(payload map[string]any, suspects []models.Suspect) models.ClueAnalysis {
	connections := []models.ClueConnection{}
	for _, item := range normalize.List(payload, "connections") {
		conn, ok := item.(map[string]any)
		if !ok {
			continue
		}
		suspectName := normalize.String(conn, "suspect", "suspectName")
		matched, ok := matchSuspect(suspects, suspectName)
		if !ok {
			s.logger.Debug("dropping connection to unknown suspect",
				slog.String("suspectName", suspectName))
			continue
		}
		connections = append(connections, models.ClueConnection{
			SuspectID:      matched.ID,
			ConnectionType: normalize.StringOr(conn, "related", "connectionType", "type"),
			Description:    normalize.String(conn, "description"),
		})
	}

	nextSteps := normalize.StringList(payload, "nextSteps", "next_steps")
	if len(nextSteps) == 0 {
		nextSteps = []string{"Continue investigating"}
	}

	return models.ClueAnalysis{
		Summary:     normalize.StringOr(payload, "No analysis available", "summary"),
		Connections: connections,
		NextSteps:   nextSteps,
	}
}

// matchSuspect resolves a free-text suspect name to a canonical suspect.
// First fuzzy match wins.
func matchSuspect(suspects []models.Suspect, name string) (models.Suspect, bool) {
	for _, suspect := range suspects {
		if normalize.NamesMatch(name, suspect.Name) {
			return suspect, true
		}
	}
	return models.Suspect{}, false
}
