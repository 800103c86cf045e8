package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/promptcast/promptcast/internal/httpx"
	"github.com/promptcast/promptcast/providers/text"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1"
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"

	defaultModel = "claude-3-7-sonnet-20250224"

	// defaultMaxTokens applies when the request does not set MaxTokens;
	// Anthropic requires max_tokens on every request.
	defaultMaxTokens = 4096
)

// Provider implements [text.Provider] for Anthropic's Messages API.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a Provider initialized from environment variables. It reads
// ANTHROPIC_API_KEY for authentication and ANTHROPIC_API_BASE_URL for the
// endpoint base.
func New() *Provider {
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("ANTHROPIC_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key and returns the provider so calls can be chained.
func (p *Provider) WithAPIKey(apiKey string) text.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL.
func (p *Provider) WithBaseURL(baseURL string) text.Provider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient replaces the default HTTP client used for API calls.
func (p *Provider) WithHTTPClient(client *http.Client) text.Provider {
	p.client = client
	return p
}

// Generate implements [text.Provider] against the Messages API. Anthropic
// authenticates via x-api-key (not a Bearer token) and requires the
// anthropic-version header on every request.
func (p *Provider) Generate(ctx context.Context, request text.Request) (*text.Response, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	httpResponse, resp, err := httpx.PostJSON[messagesResponse](
		ctx,
		p.client,
		p.baseURL+messagesEndpoint,
		"", // empty so PostJSON does not inject a Bearer token
		buildRequest(model, request),
		httpx.Header{Key: "x-api-key", Value: p.apiKey},
		httpx.Header{Key: "anthropic-version", Value: anthropicVersion},
	)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Anthropic API: %s", httpResponse.Status)
	}

	result := resp.toGeneric()
	if result.Model == "" {
		result.Model = model
	}
	return result, nil
}
