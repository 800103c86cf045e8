package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/promptcast/promptcast/internal/httpx"
	"github.com/promptcast/promptcast/providers/text"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
	defaultModel            = "gpt-4o-2025-01-07"
)

// Provider implements [text.Provider] for the OpenAI Chat Completions API.
// It also works against OpenAI-compatible endpoints (Azure, Ollama,
// OpenRouter) via WithBaseURL.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a Provider initialized from environment variables. It reads
// OPENAI_API_KEY for authentication and OPENAI_API_BASE_URL for the endpoint
// base.
func New() *Provider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
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

// Generate implements [text.Provider] against the chat completions endpoint.
func (p *Provider) Generate(ctx context.Context, request text.Request) (*text.Response, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	httpResponse, resp, err := httpx.PostJSON[chatCompletionResponse](
		ctx,
		p.client,
		p.baseURL+chatCompletionsEndpoint,
		p.apiKey,
		buildRequest(model, request),
	)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from OpenAI API: %s", httpResponse.Status)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenAI response")
	}

	return resp.toGeneric(), nil
}
