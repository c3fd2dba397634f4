package driven

import "context"

// LLMService completes prompts against a hosted language model.
//
// Implementations:
//   - OpenRouter (chat completions API, any routed model)
type LLMService interface {
	// Complete sends a single user prompt and returns the first completion's content.
	// Any non-success response is an error carrying the status code and body.
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)

	// ModelName returns the default model id.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures a completion request.
// Zero values, and a nil Temperature, fall back to the service defaults.
type CompleteOptions struct {
	// Model is the model id (e.g. "anthropic/claude-3-haiku").
	Model string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature *float64
}
