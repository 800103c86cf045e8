package text

import (
	"context"
	"net/http"
)

// Request is a provider-agnostic text generation request. Model may be empty,
// in which case the adapter substitutes its provider's default model; model
// ids are otherwise passed through to the provider verbatim.
type Request struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"` // 0 means the adapter's default
}

// Usage reports token consumption for a single request when the provider
// includes it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// Response is the normalized result of a text generation call.
type Response struct {
	Model        string `json:"model"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}

// Provider is the contract every text adapter satisfies. Generate performs
// exactly one remote call and maps every provider-specific failure
// (authentication, rate limiting, malformed response, network) into a plain
// error; no provider-specific error type escapes the adapter.
type Provider interface {
	// Generate sends the prompt to the provider and returns the normalized
	// response, or an error if the call fails or the context ends.
	Generate(ctx context.Context, request Request) (*Response, error)

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHTTPClient sets the HTTP client used for outbound requests.
	WithHTTPClient(client *http.Client) Provider
}
