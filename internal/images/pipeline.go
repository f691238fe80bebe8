package images

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/repositories"
)

// Generator renders an image for a prompt. Satisfied by [ai.Client].
type Generator interface {
	GenerateImage(ctx context.Context, prompt string, size string) ([]byte, error)
}

// Pipeline generates noir-style illustrations for cases, suspects and clues
// and stores them in the image repository. Image generation is best effort:
// a failed portrait never blocks the rest of a batch.
type Pipeline struct {
	generator Generator
	images    *repositories.ImageRepository
	cases     *repositories.CaseRepository
	logger    *slog.Logger
}

func NewPipeline(
	generator Generator,
	images *repositories.ImageRepository,
	cases *repositories.CaseRepository,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		generator: generator,
		images:    images,
		cases:     cases,
		logger:    logger.With("source", "ImagePipeline"),
	}
}

// CaseScenePrompt describes the establishing shot for a case.
func CaseScenePrompt(c models.Case) string {
	return fmt.Sprintf(`Create a dramatic detective game scene illustration in a noir/mystery style.
Scene: %s
Setting: %s
Description: %s

Style: Cinematic, atmospheric, with dramatic lighting and shadows.
Mood: Mystery and intrigue, suitable for a %s difficulty detective case.
Art style: Semi-realistic digital illustration with strong composition.
No text or labels in the image.`, c.Title, c.Location, c.Description, c.Difficulty)
}

// SuspectPortraitPrompt describes a head-and-shoulders portrait.
func SuspectPortraitPrompt(suspect models.Suspect) string {
	return fmt.Sprintf(`Create a character portrait for a detective game suspect.
Character: %s
Description: %s

Style: Professional character portrait, noir detective game aesthetic.
Mood: Mysterious and slightly suspicious, befitting a mystery suspect.
Composition: Head and shoulders portrait with neutral background.
Art style: Semi-realistic illustration with good detail and character.
No text or labels in the image.`, suspect.Name, suspect.Description)
}

// ClueVisualizationPrompt describes an evidence illustration.
func ClueVisualizationPrompt(clue models.Clue) string {
	typeLine := ""
	if clue.Type != "" {
		typeLine = fmt.Sprintf("Type: %s\n", clue.Type)
	}
	return fmt.Sprintf(`Create an illustration of evidence/clue for a detective game.
Evidence: %s
Description: %s
Found at: %s
%s
Style: Detailed illustration of the evidence item, detective/crime scene aesthetic.
Composition: Clear view of the evidence, possibly with subtle crime scene context.
Mood: Forensic, investigative, important evidence.
Art style: Semi-realistic, clear and detailed rendering.
No text or labels in the image.`, clue.Title, clue.Description, clue.Location, typeLine)
}

const (
	// Landscape for scenes, square for portraits and evidence.
	sceneSize  = openai.CreateImageSize1792x1024
	squareSize = openai.CreateImageSize1024x1024

	contentTypePNG = "image/png"
)

// GenerateCaseScene renders and stores the establishing shot for a case and
// points the case's image URL at it.
func (p *Pipeline) GenerateCaseScene(ctx context.Context, c models.Case) error {
	return p.generate(ctx, "case", c.ID, CaseScenePrompt(c), sceneSize)
}

// GenerateSuspectPortrait renders and stores a suspect's portrait.
func (p *Pipeline) GenerateSuspectPortrait(ctx context.Context, suspect models.Suspect) error {
	return p.generate(ctx, "suspect", suspect.ID, SuspectPortraitPrompt(suspect), squareSize)
}

// GenerateClueVisualization renders and stores a clue's evidence shot.
func (p *Pipeline) GenerateClueVisualization(ctx context.Context, clue models.Clue) error {
	return p.generate(ctx, "clue", clue.ID, ClueVisualizationPrompt(clue), squareSize)
}

// BatchResult summarizes a best-effort batch generation run.
type BatchResult struct {
	Generated int      `json:"generated"`
	Failed    []string `json:"failed,omitempty"`
}

// GenerateCaseImages renders the scene plus every suspect portrait and clue
// visualization for a case. Individual failures are collected rather than
// aborting the batch.
func (p *Pipeline) GenerateCaseImages(ctx context.Context, c models.Case) (BatchResult, error) {
	if ctx.Err() != nil {
		return BatchResult{}, errors.Wrap(ctx.Err(), "generate case images")
	}

	result := BatchResult{Generated: 0, Failed: nil}
	record := func(key string, err error) {
		if err != nil {
			p.logger.Warn("image generation failed", slog.String("key", key), errors.SlogError(err))
			result.Failed = append(result.Failed, key)
			return
		}
		result.Generated++
	}

	record(repositories.ImageKey("case", c.ID), p.GenerateCaseScene(ctx, c))
	for _, suspect := range c.Suspects {
		if ctx.Err() != nil {
			return result, errors.Wrap(ctx.Err(), "generate case images")
		}
		record(repositories.ImageKey("suspect", suspect.ID), p.GenerateSuspectPortrait(ctx, suspect))
	}
	for _, clue := range c.Clues {
		if ctx.Err() != nil {
			return result, errors.Wrap(ctx.Err(), "generate case images")
		}
		record(repositories.ImageKey("clue", clue.ID), p.GenerateClueVisualization(ctx, clue))
	}
	return result, nil
}

func (p *Pipeline) generate(ctx context.Context, entityType, entityID, prompt, size string) error {
	data, err := p.generator.GenerateImage(ctx, prompt, size)
	if err != nil {
		return errors.Wrap(err, "generate image",
			slog.String("entity_type", entityType), slog.String("entity_id", entityID))
	}

	key := repositories.ImageKey(entityType, entityID)
	image := models.Image{Key: key, Data: data, ContentType: contentTypePNG}
	if err = p.images.PutImage(ctx, image); err != nil {
		return errors.Wrap(err, "store image", slog.String("key", key))
	}

	table, ok := repositories.EntityTableFor(entityType)
	if !ok {
		return errors.New("unknown entity type", slog.String("entity_type", entityType))
	}
	imageURL := fmt.Sprintf("/api/images/%s/%s", entityType, entityID)
	if err = p.cases.SetEntityImageURL(ctx, table, entityID, imageURL); err != nil {
		return errors.Wrap(err, "record image url", slog.String("key", key))
	}

	p.logger.Info("image generated",
		slog.String("key", key), slog.Int("bytes", len(data)))
	return nil
}

// ValidEntityType reports whether an image entity type is known. Type names
// are singular: "case", "suspect" and "clue".
func ValidEntityType(entityType string) bool {
	_, ok := repositories.EntityTableFor(strings.ToLower(entityType))
	return ok
}
