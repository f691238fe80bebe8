package ai

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sleuthling/sleuthling/internal/envstruct"
	"github.com/sleuthling/sleuthling/internal/errors"
)

var (
	// ErrTimeout signals that the completion endpoint did not answer in time.
	ErrTimeout = errors.NewSentinel("completion request timed out")
	// ErrMissingAPIKey signals that no API key was configured.
	ErrMissingAPIKey = errors.NewSentinel("OPENAI_API_KEY environment variable not set")
)

const (
	requestTimeout = 60 * time.Second
	// transportRetries is the retry budget for network failures. Parse and
	// persistence failures are never retried, they fall back immediately.
	transportRetries = 2
)

type config struct {
	APIKey  string `env:"OPENAI_API_KEY" envDefault:""`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:""`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
}

// Client wraps the OpenAI API for text completions and image generation.
// Construct it once and inject it into every service that needs it.
type Client struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewClient builds a Client from environment configuration.
//
// lookupEnv has the same signature as [os.LookupEnv]. Configuration problems
// (missing key, invalid model name) are reported here rather than on first use.
func NewClient(lookupEnv func(string) (string, bool), logger *slog.Logger) (*Client, error) {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return nil, errors.Wrap(err, "populate AI client config")
	}
	if cfg.APIKey == "" {
		return nil, errors.Wrap(ErrMissingAPIKey, "check your .env file or environment")
	}
	if err := ValidateModel(cfg.Model); err != nil {
		return nil, errors.Wrap(err, "validate OPENAI_MODEL")
	}
	if !knownModels[cfg.Model] {
		logger.Warn("model not in the known list but has a valid prefix, proceeding",
			slog.String("model", cfg.Model))
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.HTTPClient = &http.Client{Timeout: requestTimeout}
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger.With("source", "ai.Client"),
	}, nil
}

// FetchCompletion sends messages to the chat completion endpoint and returns
// the raw response text. Transport failures are retried a fixed number of
// times; a timeout is surfaced as [ErrTimeout] with a diagnostic hint.
func (c *Client) FetchCompletion(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
	temperature float32,
	maxTokens int,
) (string, error) {
	request := openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var (
		completion openai.ChatCompletionResponse
		err        error
	)
	for attempt := 0; attempt <= transportRetries; attempt++ {
		if completion, err = c.client.CreateChatCompletion(ctx, request); err == nil {
			break
		}
		if !isRetryable(err) {
			break
		}
		c.logger.Warn("retrying completion after transport error",
			slog.Int("attempt", attempt+1), errors.SlogError(err))
	}
	if err != nil {
		return "", c.annotateCompletionError(err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// GenerateImage renders an image for the prompt and returns the raw bytes.
// size is one of the OpenAI image sizes such as [openai.CreateImageSize1024x1024].
func (c *Client) GenerateImage(ctx context.Context, prompt string, size string) ([]byte, error) {
	request := openai.ImageRequest{ //nolint:exhaustruct // this is better for readability
		Model:          openai.CreateImageModelDallE3,
		Prompt:         prompt,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	}

	response, err := c.client.CreateImage(ctx, request)
	if err != nil {
		lower := strings.ToLower(err.Error())
		switch {
		case strings.Contains(lower, "billing"):
			return nil, errors.Wrap(err, "image generation failed due to billing issues, check that your account has credits")
		case strings.Contains(lower, "content_policy") || strings.Contains(lower, "safety"):
			return nil, errors.Wrap(err, "image generation rejected by content policy")
		default:
			return nil, errors.Wrap(err, "create image")
		}
	}
	if len(response.Data) == 0 {
		return nil, errors.New("image generation returned no data")
	}

	data, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return nil, errors.Wrap(err, "decode image data")
	}
	return data, nil
}

func (c *Client) annotateCompletionError(err error) error {
	lower := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(lower, "timeout") || strings.Contains(lower, "timed out"):
		return errors.Wrap(ErrTimeout, "the endpoint may be slow or the model name invalid, verify OPENAI_MODEL",
			slog.String("model", c.model), errors.SlogError(err))
	case strings.Contains(lower, "model") && strings.Contains(lower, "does not exist"):
		return errors.Wrap(err, "model not recognized by the API, check your OPENAI_MODEL environment variable",
			slog.String("model", c.model))
	case strings.Contains(lower, "api_key") || strings.Contains(lower, "api key"):
		return errors.Wrap(err, "invalid or missing API key, check that OPENAI_API_KEY is set correctly")
	default:
		return errors.Wrap(err, "create chat completion")
	}
}

func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		// Client errors do not get better on retry.
		return apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	// Anything that is not an API error is a transport problem.
	return !errors.Is(err, context.Canceled)
}
