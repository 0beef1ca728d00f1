package classify

import (
	"context"
	"errors"

	"google.golang.org/genai"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/httputil"
)

// DefaultGeminiModel is used when GeminiConfig.Model is empty.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures a Gemini model.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Gemini calls the Google GenAI GenerateContent API with a JSON response
// MIME type.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini model. The API key is required.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errs.New(errs.ErrCodeUnauthorized, "GEMINI_API_KEY not configured")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create gemini client")
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

func (g *Gemini) Name() string { return ProviderGemini + ":" + g.model }

// Complete sends prompt as a single user turn.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	temp := float32(Temperature)
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      &temp,
		},
	)
	if err != nil {
		return "", geminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errs.New(errs.ErrCodeInvalidResponse, "no response from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		wrapped := errs.Wrap(statusCode(apiErr.Code), err, "Gemini API error: %d", apiErr.Code)
		if httputil.RetryableStatus(apiErr.Code) {
			return httputil.Retryable(wrapped)
		}
		return wrapped
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "classification request timed out")
	}
	return httputil.Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "classification request failed"))
}
