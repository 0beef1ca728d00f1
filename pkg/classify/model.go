package classify

import "context"

// Model completes a prompt with a language model.
type Model interface {
	// Name identifies the provider and model, e.g. "openrouter:anthropic/claude-sonnet-4".
	Name() string

	// Complete returns the raw text answer. Transient failures are wrapped
	// with httputil.Retryable.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Temperature is the sampling temperature used by every provider.
const Temperature = 0.1

// Providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)
