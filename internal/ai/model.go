package ai

import (
	"github.com/sleuthling/sleuthling/internal/errors"
	"log/slog"
	"strings"
)

// ErrInvalidModel signals an unusable OPENAI_MODEL value.
var ErrInvalidModel = errors.NewSentinel("invalid model name")

// knownModels are chat models known to exist. A model outside this set can
// still pass validation through the prefix allowlist so that newer releases
// work without a code change.
var knownModels = map[string]bool{
	"gpt-4o":                 true,
	"gpt-4o-mini":            true,
	"gpt-4-turbo":            true,
	"gpt-4-turbo-preview":    true,
	"gpt-4":                  true,
	"gpt-3.5-turbo":          true,
	"o1-preview":             true,
	"o1-mini":                true,
	"o1":                     true,
	"gpt-4-turbo-2024-04-09": true,
	"gpt-4-0125-preview":     true,
	"gpt-4-1106-preview":     true,
	"gpt-3.5-turbo-0125":     true,
}

var knownPrefixes = []string{"gpt-4o", "gpt-4", "gpt-3.5", "o1"}

// ValidateModel checks a model identifier against the known-model set and
// prefix allowlist. Common typos are rejected hard with a remediation hint.
func ValidateModel(model string) error {
	if model == "" {
		return errors.Wrap(ErrInvalidModel, "model name cannot be empty")
	}
	if knownModels[model] {
		return nil
	}

	lower := strings.ToLower(model)
	if strings.Contains(lower, "gpt-5") {
		return errors.Wrap(ErrInvalidModel, "GPT-5 does not exist, did you mean gpt-4o or gpt-4-turbo",
			slog.String("model", model))
	}
	if strings.Contains(lower, "gpt-4.1") {
		return errors.Wrap(ErrInvalidModel, "model names use hyphens not dots, did you mean gpt-4o or gpt-4-turbo",
			slog.String("model", model))
	}

	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(model, prefix) {
			// Might be a newer model, allow it. NewClient logs a warning.
			return nil
		}
	}

	return errors.Wrap(ErrInvalidModel, "not a recognized model, valid models include gpt-4o, gpt-4o-mini, gpt-4-turbo and gpt-3.5-turbo, check your OPENAI_MODEL environment variable",
		slog.String("model", model))
}
