package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/sleuthling/sleuthling/internal/ai"
	"github.com/sleuthling/sleuthling/internal/db"
	"github.com/sleuthling/sleuthling/internal/detective"
	"github.com/sleuthling/sleuthling/internal/envstruct"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/images"
	"github.com/sleuthling/sleuthling/internal/logging"
	"github.com/sleuthling/sleuthling/internal/repositories"
)

type application struct {
	logger     *slog.Logger
	detective  *detective.Service
	pipeline   *images.Pipeline
	cases      *repositories.CaseRepository
	analyses   *repositories.AnalysisRepository
	interviews *repositories.InterviewRepository
	images     *repositories.ImageRepository
}

type config struct {
	// Addr is the address the server listens on. Use port 0 to pick a free
	// port, handy for parallel tests.
	Addr      string `env:"SLEUTHLING_ADDR" envDefault:"localhost:4000"`
	SqliteURL string `env:"SLEUTHLING_SQLITE_URL" envDefault:"./sleuthling.sqlite"`
}

func main() {
	ctx := context.Background()

	// Optional .env for local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server exited with error", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application together. Environment access goes through
// lookupEnv so tests can inject their own configuration.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	dbs, err := db.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "connect database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if err = dbs.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database", slog.String("url", cfg.SqliteURL))
	go dbs.StartOptimizer(ctx)

	aiClient, err := ai.NewClient(lookupEnv, logger)
	if err != nil {
		return errors.Wrap(err, "initialize AI client")
	}

	caseRepo := repositories.NewCaseRepository(dbs, logger)
	imageRepo := repositories.NewImageRepository(dbs, logger)

	app := application{
		logger:     logger,
		detective:  detective.NewService(aiClient, logger),
		pipeline:   images.NewPipeline(aiClient, imageRepo, caseRepo, logger),
		cases:      caseRepo,
		analyses:   repositories.NewAnalysisRepository(dbs, logger),
		interviews: repositories.NewInterviewRepository(dbs, logger),
		images:     imageRepo,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
