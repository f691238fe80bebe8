package main

import (
	"net/http"
	"strings"

	"github.com/sleuthling/sleuthling/internal/detective"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/images"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/repositories"
)

// generateCase creates a new mystery and persists the whole bundle. Never
// fails on model trouble: a fallback case comes back instead.
func (app *application) generateCase(w http.ResponseWriter, r *http.Request) {
	var params models.CaseParams
	if err := app.decodeJSON(w, r, &params); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	bundle := app.detective.GenerateCase(r.Context(), params)
	if err := app.cases.SaveBundle(r.Context(), bundle); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, bundle)
}

type analyzeClueRequest struct {
	CaseID   string `json:"caseId"`
	ClueID   string `json:"clueId"`
	Language string `json:"language"`
}

type clueAnalysisResponse struct {
	ClueID string `json:"clueId"`
	CaseID string `json:"caseId"`
	Cached bool   `json:"cached"`
	models.ClueAnalysis
}

// analyzeClue explains a clue. Analyses are cached per clue, so examining the
// same clue twice costs one model round trip.
func (app *application) analyzeClue(w http.ResponseWriter, r *http.Request) {
	var req analyzeClueRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := app.cases.Get(r.Context(), req.CaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	var clue models.Clue
	found := false
	for _, candidate := range c.Clues {
		if candidate.ID == req.ClueID {
			clue = candidate
			found = true
			break
		}
	}
	if !found {
		app.notFound(w, r)
		return
	}

	if cached, cacheErr := app.analyses.CachedClueAnalysis(r.Context(), clue.ID); cacheErr == nil {
		app.writeJSON(w, r, http.StatusOK, clueAnalysisResponse{
			ClueID:       clue.ID,
			CaseID:       c.ID,
			Cached:       true,
			ClueAnalysis: cached,
		})
		return
	} else if !errors.Is(cacheErr, repositories.ErrNotFound) {
		app.serverError(w, r, cacheErr)
		return
	}

	analysis := app.detective.AnalyzeClue(r.Context(), clue, c.Suspects, *c, c.Clues, req.Language)
	if err = app.analyses.CacheClueAnalysis(r.Context(), clue.ID, c.ID, analysis); err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = app.cases.MarkClueExamined(r.Context(), clue.ID); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, clueAnalysisResponse{
		ClueID:       clue.ID,
		CaseID:       c.ID,
		Cached:       false,
		ClueAnalysis: analysis,
	})
}

type analyzeSuspectRequest struct {
	CaseID    string `json:"caseId"`
	SuspectID string `json:"suspectId"`
	Language  string `json:"language"`
}

func (app *application) analyzeSuspect(w http.ResponseWriter, r *http.Request) {
	var req analyzeSuspectRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	c, suspect, ok := app.loadSuspect(w, r, req.CaseID, req.SuspectID)
	if !ok {
		return
	}

	history, err := app.interviews.InterviewHistory(r.Context(), suspect.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	analysis := app.detective.AnalyzeSuspect(r.Context(), suspect, c.Clues, *c, history, req.Language)
	app.writeJSON(w, r, http.StatusOK, analysis)
}

type interviewRequest struct {
	CaseID    string `json:"caseId"`
	SuspectID string `json:"suspectId"`
	Question  string `json:"question"`
	Language  string `json:"language"`
}

type interviewResponse struct {
	SuspectID string `json:"suspectId"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

// interviewSuspect asks the suspect one question in character. The turn goes
// into the transcript so the suspect remembers earlier answers.
func (app *application) interviewSuspect(w http.ResponseWriter, r *http.Request) {
	var req interviewRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		app.clientError(w, r, http.StatusBadRequest, "question is required")
		return
	}

	c, suspect, ok := app.loadSuspect(w, r, req.CaseID, req.SuspectID)
	if !ok {
		return
	}

	history, err := app.interviews.InterviewHistory(r.Context(), suspect.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	answer, err := app.detective.InterviewSuspect(
		r.Context(), req.Question, suspect, c.Clues, *c, history, req.Language)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	turn := models.InterviewTurn{
		SuspectID: suspect.ID,
		CaseID:    c.ID,
		Question:  req.Question,
		Answer:    answer,
	}
	if err = app.interviews.AppendInterview(r.Context(), turn); err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = app.cases.MarkSuspectInterviewed(r.Context(), suspect.ID); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, interviewResponse{
		SuspectID: suspect.ID,
		Question:  req.Question,
		Answer:    answer,
	})
}

type solveCaseRequest struct {
	CaseID           string   `json:"caseId"`
	AccusedSuspectID string   `json:"accusedSuspectId"`
	EvidenceIDs      []string `json:"evidenceIds"`
	Reasoning        string   `json:"reasoning"`
	Language         string   `json:"language"`
}

// solveCase grades an accusation. A correct one marks the case solved.
func (app *application) solveCase(w http.ResponseWriter, r *http.Request) {
	var req solveCaseRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := app.cases.Get(r.Context(), req.CaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	solution, err := app.detective.SolveCase(r.Context(), *c, c.Suspects, c.Clues,
		req.AccusedSuspectID, req.EvidenceIDs, req.Reasoning, req.Language)
	if err != nil {
		if errors.Is(err, detective.ErrAccusedNotFound) {
			app.clientError(w, r, http.StatusBadRequest, "accused suspect not found in case")
			return
		}
		app.serverError(w, r, err)
		return
	}

	if solution.Solved {
		solved := true
		if err = app.cases.UpdateFlags(r.Context(), c.ID, &solved, nil); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	app.writeJSON(w, r, http.StatusOK, solution)
}

func (app *application) listCases(w http.ResponseWriter, r *http.Request) {
	cases, err := app.cases.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, cases)
}

func (app *application) getCase(w http.ResponseWriter, r *http.Request) {
	c, err := app.cases.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}

type patchCaseRequest struct {
	Solved   *bool `json:"solved"`
	Archived *bool `json:"archived"`
}

// patchCase updates the solved and archived flags. Absent fields stay as
// they are.
func (app *application) patchCase(w http.ResponseWriter, r *http.Request) {
	var req patchCaseRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Solved == nil && req.Archived == nil {
		app.clientError(w, r, http.StatusBadRequest, "nothing to update")
		return
	}

	caseID := r.PathValue("id")
	if err := app.cases.UpdateFlags(r.Context(), caseID, req.Solved, req.Archived); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	c, err := app.cases.Get(r.Context(), caseID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}

func (app *application) deleteCase(w http.ResponseWriter, r *http.Request) {
	if err := app.cases.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// generateCaseImages renders illustrations for the case scene and all of its
// suspects and clues. Best effort: the response lists what failed.
func (app *application) generateCaseImages(w http.ResponseWriter, r *http.Request) {
	c, err := app.cases.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	result, err := app.pipeline.GenerateCaseImages(r.Context(), *c)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, result)
}

func (app *application) getImage(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("entityType")
	if !images.ValidEntityType(entityType) {
		app.clientError(w, r, http.StatusBadRequest, "unknown entity type")
		return
	}

	key := repositories.ImageKey(entityType, r.PathValue("id"))
	image, err := app.images.GetImage(r.Context(), key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	_, _ = w.Write(image.Data)
}

// loadSuspect resolves a case and one of its suspects, writing the error
// response itself when either is missing.
func (app *application) loadSuspect(
	w http.ResponseWriter,
	r *http.Request,
	caseID string,
	suspectID string,
) (*models.Case, models.Suspect, bool) {
	c, err := app.cases.Get(r.Context(), caseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return nil, models.Suspect{}, false
		}
		app.serverError(w, r, err)
		return nil, models.Suspect{}, false
	}

	for _, suspect := range c.Suspects {
		if suspect.ID == suspectID {
			return c, suspect, true
		}
	}
	app.notFound(w, r)
	return nil, models.Suspect{}, false
}
