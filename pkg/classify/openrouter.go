package classify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sashabaranov/go-openai"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/httputil"
)

// OpenRouter defaults.
const (
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel = "anthropic/claude-sonnet-4"
)

// OpenRouterConfig configures an OpenRouter model.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // defaults to DefaultOpenRouterModel
	BaseURL string // defaults to DefaultOpenRouterURL
}

// OpenRouter talks to the OpenAI-compatible chat completion API of
// OpenRouter and requests strict structured output.
type OpenRouter struct {
	client *openai.Client
	model  string
}

// NewOpenRouter creates an OpenRouter model. The API key is required.
func NewOpenRouter(cfg OpenRouterConfig) (*OpenRouter, error) {
	if cfg.APIKey == "" {
		return nil, errs.New(errs.ErrCodeUnauthorized, "OPENROUTER_API_KEY not configured")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenRouterURL
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.BaseURL
	return &OpenRouter{client: openai.NewClientWithConfig(oc), model: cfg.Model}, nil
}

func (o *OpenRouter) Name() string { return ProviderOpenRouter + ":" + o.model }

// Complete sends prompt as a single user message.
func (o *OpenRouter) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   SchemaName,
				Strict: true,
				Schema: json.RawMessage(ResponseSchema()),
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", openRouterError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errs.New(errs.ErrCodeInvalidResponse, "no response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

func openRouterError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		wrapped := errs.Wrap(statusCode(apiErr.HTTPStatusCode), err, "OpenRouter API error: %d", apiErr.HTTPStatusCode)
		if httputil.RetryableStatus(apiErr.HTTPStatusCode) {
			return httputil.Retryable(wrapped)
		}
		return wrapped
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		wrapped := errs.Wrap(statusCode(reqErr.HTTPStatusCode), err, "OpenRouter API error: %d", reqErr.HTTPStatusCode)
		if httputil.RetryableStatus(reqErr.HTTPStatusCode) {
			return httputil.Retryable(wrapped)
		}
		return wrapped
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "classification request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrCodeNetwork, err, "classification request canceled")
	}
	return httputil.Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "classification request failed"))
}

func statusCode(status int) errs.Code {
	switch {
	case status == 401 || status == 403:
		return errs.ErrCodeUnauthorized
	case status == 429:
		return errs.ErrCodeRateLimited
	default:
		return errs.ErrCodeNetwork
	}
}
