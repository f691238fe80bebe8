package detective

import (
	"context"
	"log/slog"

	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/normalize"
)

var (
	// ErrAccusedNotFound signals an accusation against an unknown suspect.
	ErrAccusedNotFound = errors.NewSentinel("accused suspect not found")
	// ErrNoGuiltySuspect signals a case with no suspect flagged guilty.
	ErrNoGuiltySuspect = errors.NewSentinel("no guilty suspect found")
)

// SolveCase grades an accusation. Correctness is always computed locally from
// the ground-truth guilty flag - the model only supplies the narrative prose.
// Domain-invariant violations (unknown accused, no guilty suspect) are real
// errors; gateway failures merely degrade the narrative to a fixed template.
func (s *Service) SolveCase(
	ctx context.Context,
	caseData models.Case,
	suspects []models.Suspect,
	clues []models.Clue,
	accusedSuspectID string,
	evidenceIDs []string,
	reasoning string,
	language string,
) (models.CaseSolution, error) {
	var (
		accused models.Suspect
		guilty  models.Suspect
	)
	accusedFound, guiltyFound := false, false
	for _, suspect := range suspects {
		if suspect.ID == accusedSuspectID {
			accused = suspect
			accusedFound = true
		}
		if suspect.Guilty {
			guilty = suspect
			guiltyFound = true
		}
	}
	if !accusedFound {
		return models.CaseSolution{}, errors.Wrap(ErrAccusedNotFound, "validate accusation",
			slog.String("accused_suspect_id", accusedSuspectID))
	}
	if !guiltyFound {
		return models.CaseSolution{}, errors.Wrap(ErrNoGuiltySuspect, "validate accusation",
			slog.String("case_id", caseData.ID))
	}

	evidenceSet := make(map[string]bool, len(evidenceIDs))
	for _, id := range evidenceIDs {
		evidenceSet[id] = true
	}
	var evidence []models.Clue
	for _, clue := range clues {
		if evidenceSet[clue.ID] {
			evidence = append(evidence, clue)
		}
	}

	isCorrect := accused.ID == guilty.ID

	systemPrompt := caseSolutionPromptEN
	if language == languageThai {
		systemPrompt = caseSolutionPromptTH
	}
	messages := systemAndUser(systemPrompt,
		solutionUserPrompt(caseData, suspects, clues, accused, guilty, evidence, reasoning, language))

	narrative := ""
	raw, err := s.ai.FetchCompletion(ctx, messages, temperature, analysisMaxTokens)
	if err != nil {
		s.logger.Warn("solution grading failed, using template narrative",
			slog.String("case_id", caseData.ID), errors.SlogError(err))
	} else if payload, ok := normalize.ExtractPayload(raw); ok {
		narrative = normalize.String(payload, "narrative", "explanation", "description")
	} else {
		// Unstructured prose is still a usable verdict narrative.
		narrative = raw
	}
	if narrative == "" {
		narrative = fallbackNarrative(isCorrect, language)
	}

	return models.CaseSolution{
		Solved:      isCorrect,
		CulpritID:   accusedSuspectID,
		Reasoning:   reasoning,
		EvidenceIDs: evidenceIDs,
		Narrative:   narrative,
	}, nil
}

// fallbackNarrative is the bilingual template verdict used when the model
// supplies no usable narrative.
func fallbackNarrative(isCorrect bool, language string) string {
	if language == languageThai {
		if isCorrect {
			return "การวิเคราะห์ของคุณถูกต้อง! คุณได้ระบุผู้กระทำผิดและมีเหตุผลที่ดี คุณแก้คดีสำเร็จแล้ว!"
		}
		return "การวิเคราะห์ของคุณมีจุดที่น่าสนใจ แต่ผู้ต้องสงสัยที่คุณเลือกไม่ใช่ผู้กระทำผิดจริง ลองตรวจสอบหลักฐานอีกครั้ง"
	}
	if isCorrect {
		return "Your analysis is correct! You identified the true culprit and provided good reasoning. " +
			"You successfully solved this case!"
	}
	return "Your analysis has interesting points, but the suspect you chose is not the actual culprit. " +
		"Try reviewing the evidence again and reconsider the other suspects."
}
