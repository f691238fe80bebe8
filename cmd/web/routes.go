package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	api := alice.New(app.corsHeaders)

	mux.Handle("GET /api/healthy", api.ThenFunc(app.healthy))

	mux.Handle("POST /api/generate-case", api.ThenFunc(app.generateCase))
	mux.Handle("POST /api/analyze-clue", api.ThenFunc(app.analyzeClue))
	mux.Handle("POST /api/analyze-suspect", api.ThenFunc(app.analyzeSuspect))
	mux.Handle("POST /api/interview-suspect", api.ThenFunc(app.interviewSuspect))
	mux.Handle("POST /api/solve-case", api.ThenFunc(app.solveCase))

	mux.Handle("GET /api/cases", api.ThenFunc(app.listCases))
	mux.Handle("GET /api/cases/{id}", api.ThenFunc(app.getCase))
	mux.Handle("PATCH /api/cases/{id}", api.ThenFunc(app.patchCase))
	mux.Handle("DELETE /api/cases/{id}", api.ThenFunc(app.deleteCase))
	mux.Handle("POST /api/cases/{id}/images", api.ThenFunc(app.generateCaseImages))

	mux.Handle("GET /api/images/{entityType}/{id}", api.ThenFunc(app.getImage))

	// Preflight for any API path.
	mux.Handle("OPTIONS /api/", api.ThenFunc(app.preflight))

	return app.recoverPanic(app.logRequest(mux))
}
