package casegen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sleuthling/sleuthling/internal/ai"
	"github.com/sleuthling/sleuthling/internal/db"
	"github.com/sleuthling/sleuthling/internal/detective"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/repositories"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "case",
	Title: "Case operations",
}

func init() {
	Generate.Flags().String("difficulty", "easy", "case difficulty: easy, medium or hard")
	Generate.Flags().String("theme", "random", "case theme, e.g. school, park, museum")
	Generate.Flags().String("location", "", "case location")
	Generate.Flags().String("era", "", "time period for the case")
	Generate.Flags().String("language", "en", "case language: en or th")
	Generate.Flags().String("scenario", "", "custom scenario to base the case on")
	Generate.Flags().String("sqlite-url", "", "save the case into this SQLite database")
	Generate.Flags().Bool("quiet", false, "suppress log output")
}

var Generate = &cobra.Command{
	Use:     "case-gen",
	GroupID: "case",
	Short:   "Generate a case",
	Long:    `Generates a detective case with the configured model and prints it as JSON`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()

		var logSink io.Writer = os.Stderr
		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			logSink = io.Discard
		}
		logger := slog.New(slog.NewTextHandler(logSink, nil))

		client, err := ai.NewClient(os.LookupEnv, logger)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "AI client error: %v\n", err)
			return
		}
		service := detective.NewService(client, logger)

		params := models.CaseParams{
			Difficulty:     flagString(cmd, "difficulty"),
			Theme:          flagString(cmd, "theme"),
			Location:       flagString(cmd, "location"),
			Era:            flagString(cmd, "era"),
			Language:       flagString(cmd, "language"),
			CustomScenario: flagString(cmd, "scenario"),
		}
		bundle := service.GenerateCase(ctx, params)

		if sqliteURL := flagString(cmd, "sqlite-url"); sqliteURL != "" {
			dbs, dbErr := db.NewDatabase(ctx, sqliteURL, logger)
			if dbErr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Database error: %v\n", dbErr)
				return
			}
			defer func() {
				_ = dbs.Close()
			}()
			cases := repositories.NewCaseRepository(dbs, logger)
			if dbErr = cases.SaveBundle(ctx, bundle); dbErr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Save error: %v\n", dbErr)
				return
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(bundle); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		}
	},
}

func flagString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}
