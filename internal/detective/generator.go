package detective

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/normalize"
)

// fallbackCase is served whenever generation or parsing fails, so that a
// playable case always comes back.
var fallbackCase = map[string]any{
	"case": map[string]any{
		"title":       "The Missing Backpack",
		"description": "Alex's backpack is missing from the classroom! It has a special dinosaur patch on it.",
		"summary":     "Help find Alex's backpack with the dinosaur patch.",
		"difficulty":  "easy",
		"location":    "Elementary School Classroom",
	},
	"clues": []any{
		map[string]any{
			"title":       "Empty Hook",
			"description": "Alex's hook is empty. The hook next to it has two backpacks on it.",
			"location":    "Coat Room",
			"type":        "physical",
			"relevance":   "critical",
		},
	},
	"suspects": []any{
		map[string]any{
			"name":        "Jamie",
			"description": "A student who also has a blue backpack",
			"background":  "Jamie's backpack looks just like Alex's.",
			"motive":      "Jamie took the wrong backpack by mistake.",
			"alibi":       "Jamie says they grabbed their own backpack.",
			"isGuilty":    true,
		},
	},
	"solution": "Jamie took the wrong backpack by mistake!",
}

// GenerateCase asks the model for a new mystery and formats it into a
// persistable bundle. It never fails: when the gateway call or parsing goes
// wrong, the fixed fallback case is formatted instead.
func (s *Service) GenerateCase(ctx context.Context, params models.CaseParams) models.GeneratedCase {
	systemPrompt := caseGenerationPromptEN
	if params.Language == languageThai {
		systemPrompt = caseGenerationPromptTH
	}
	messages := systemAndUser(systemPrompt, caseGenerationUserPrompt(params))

	raw, err := s.ai.FetchCompletion(ctx, messages, temperature, caseGenMaxTokens)
	if err != nil {
		s.logger.Warn("case generation failed, using fallback case", errors.SlogError(err))
		return formatGeneratedCase(fallbackCase)
	}

	payload, ok := normalize.ExtractPayload(raw)
	if !ok {
		s.logger.Warn("case generation response not parseable, using fallback case",
			slog.Int("responseLength", len(raw)))
		return formatGeneratedCase(fallbackCase)
	}

	return formatGeneratedCase(payload)
}

// formatGeneratedCase maps a free-form payload onto the domain bundle. Every
// entity gets a fresh identifier regardless of what the model supplied, and
// missing fields get placeholders rather than failing.
func formatGeneratedCase(payload map[string]any) models.GeneratedCase {
	caseData := normalize.Map(payload, "case", "case_details")
	if caseData == nil {
		// Flat payloads put the case fields at the top level.
		caseData = payload
	}

	difficulty := normalize.StringOr(caseData, "", "difficulty")
	if difficulty == "" {
		difficulty = normalize.StringOr(payload, "medium", "difficulty")
	}

	c := models.Case{
		ID:          uuid.NewString(),
		Title:       firstOf(caseData, payload, "Untitled Case", "title"),
		Description: firstOf(caseData, payload, "", "description"),
		Summary:     firstOf(caseData, payload, "", "summary"),
		Difficulty:  difficulty,
		Solved:      false,
		Archived:    false,
		Location:    firstOf(caseData, payload, "", "location"),
		DateTime:    firstOf(caseData, payload, time.Now().Format(time.RFC3339), "dateTime", "date_time"),
		ImageURL:    "/case-file.png",
		Generated:   true,
	}

	var clues []models.Clue
	for _, item := range normalize.List(payload, "clues", "evidence") {
		clueData, ok := item.(map[string]any)
		if !ok {
			continue
		}
		clues = append(clues, models.Clue{
			ID:          uuid.NewString(),
			CaseID:      c.ID,
			Title:       normalize.StringOr(clueData, "Untitled Clue", "title", "item"),
			Description: normalize.String(clueData, "description"),
			Location:    normalize.String(clueData, "location", "position_found"),
			Type:        normalize.StringOr(clueData, "physical", "type"),
			Discovered:  false,
			Examined:    false,
			Relevance:   normalize.StringOr(clueData, "important", "relevance", "significance"),
			Emoji:       normalize.StringOr(clueData, "🔍", "emoji"),
		})
	}

	var suspects []models.Suspect
	for _, item := range normalize.List(payload, "suspects") {
		suspectData, ok := item.(map[string]any)
		if !ok {
			continue
		}
		guilty, _ := suspectData["isGuilty"].(bool)
		suspects = append(suspects, models.Suspect{
			ID:          uuid.NewString(),
			CaseID:      c.ID,
			Name:        normalize.StringOr(suspectData, "Unknown Suspect", "name"),
			Description: normalize.String(suspectData, "description"),
			Background:  normalize.String(suspectData, "background"),
			Motive:      normalize.String(suspectData, "motive"),
			Alibi:       normalize.String(suspectData, "alibi"),
			Guilty:      guilty,
			Interviewed: false,
			Emoji:       normalize.StringOr(suspectData, "👤", "emoji"),
		})
	}

	// The solution arrives either as a plain string or as an object with the
	// reasoning inside.
	solution := normalize.String(payload, "solution")
	if solution == "" {
		if solutionData := normalize.Map(payload, "solution"); solutionData != nil {
			solution = normalize.String(solutionData, "reasoning")
		}
	}
	c.Solution = solution

	// Repair rule: the case must stay solvable, so when no suspect carries
	// the guilty flag the first one is forced guilty. This can contradict the
	// model-authored solution narrative; see DESIGN.md.
	if len(suspects) > 0 {
		anyGuilty := false
		for _, suspect := range suspects {
			if suspect.Guilty {
				anyGuilty = true
				break
			}
		}
		if !anyGuilty {
			suspects[0].Guilty = true
		}
	}

	return models.GeneratedCase{
		Case:     c,
		Clues:    clues,
		Suspects: suspects,
		Solution: solution,
	}
}

// firstOf looks a key up in the nested case object first and the top-level
// payload second, falling back to a placeholder.
func firstOf(nested, top map[string]any, fallback string, keys ...string) string {
	if s := normalize.String(nested, keys...); s != "" {
		return s
	}
	return normalize.StringOr(top, fallback, keys...)
}
