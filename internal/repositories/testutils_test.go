package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/sleuthling/sleuthling/internal/db"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/testhelpers"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *db.Database {
	t.Helper()
	dbs, err := db.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})
	return dbs
}

func testLogger() *slog.Logger {
	return testhelpers.NewLogger(io.Discard)
}

// testBundle is a small but complete case bundle for exercising persistence.
func testBundle() models.GeneratedCase {
	c := models.Case{
		ID:          "case-1",
		Title:       "The Missing Cookie Recipe",
		Description: "Grandma's famous recipe card is gone.",
		Summary:     "Find who took the recipe card.",
		Difficulty:  "easy",
		Location:    "Kitchen",
		DateTime:    "2026-08-30T12:00:00Z",
		ImageURL:    "/case-file.png",
		Generated:   true,
		Solution:    "Ms. Rivera borrowed it for the bake sale.",
	}
	return models.GeneratedCase{
		Case: c,
		Clues: []models.Clue{
			{
				ID: "clue-1", CaseID: c.ID,
				Title: "Flour Footprints", Description: "White footprints near the pantry",
				Location: "Pantry", Type: "physical", Relevance: "critical", Emoji: "👣",
			},
			{
				ID: "clue-2", CaseID: c.ID,
				Title: "Open Window", Description: "The kitchen window was left open",
				Location: "Kitchen", Type: "physical", Relevance: "important", Emoji: "🪟",
			},
		},
		Suspects: []models.Suspect{
			{
				ID: "suspect-1", CaseID: c.ID,
				Name: "Jamie Chen", Description: "A student",
				Background: "Loves baking", Motive: "Wanted the recipe", Alibi: "Was at practice",
				Emoji: "🧑",
			},
			{
				ID: "suspect-2", CaseID: c.ID,
				Name: "Ms. Rivera", Description: "A teacher",
				Background: "Runs the bake sale", Motive: "Needed cookies", Alibi: "None",
				Guilty: true, Emoji: "🍪",
			},
		},
		Solution: c.Solution,
	}
}

func testBundleClueAnalysis() models.ClueAnalysis {
	return models.ClueAnalysis{
		Summary: "The footprints show someone walked through flour.",
		Connections: []models.ClueConnection{
			{SuspectID: "suspect-1", ConnectionType: "footprints", Description: "Shoe size matches."},
		},
		NextSteps: []string{"Check everyone's shoes"},
	}
}

func testBundleInterviewTurn() models.InterviewTurn {
	return models.InterviewTurn{
		SuspectID: "suspect-1",
		CaseID:    "case-1",
		Question:  "Where were you after lunch?",
		Answer:    "I was at practice, ask the coach!",
	}
}
