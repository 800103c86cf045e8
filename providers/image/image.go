package image

import (
	"context"
	"net/http"
)

// Request is a provider-agnostic image generation request. Model may be
// empty, in which case the adapter substitutes its provider's default model.
type Request struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// Response is the normalized result of an image generation call: the decoded
// image bytes plus an inferred file extension. Adapters never decide where
// the image is written; that is the output sink's job.
type Response struct {
	Model string `json:"model"`
	Bytes []byte `json:"-"`
	Ext   string `json:"ext"` // file extension without the dot, e.g. "png"

	// SourceURL is the provider-hosted URL the image was downloaded from,
	// when the provider returns URLs rather than inline data.
	SourceURL string `json:"source_url,omitempty"`

	// RevisedPrompt is DALL-E 3's rewritten prompt, when reported.
	RevisedPrompt string `json:"revised_prompt,omitempty"`

	// Seed is the generation seed, when the provider reports one.
	Seed int64 `json:"seed,omitempty"`
}

// Provider is the contract every image adapter satisfies. Generate performs
// one generation call (plus any downloads the provider's response requires)
// and maps every provider-specific failure into a plain error.
type Provider interface {
	// Generate produces one image for the prompt, or an error if the call
	// fails or the context ends.
	Generate(ctx context.Context, request Request) (*Response, error)

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHTTPClient sets the HTTP client used for outbound requests.
	WithHTTPClient(client *http.Client) Provider
}
