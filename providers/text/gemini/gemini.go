package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/promptcast/promptcast/internal/httpx"
	"github.com/promptcast/promptcast/providers/text"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash-exp"
)

// Provider implements [text.Provider] for Google's Gemini generateContent API.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a Provider initialized from environment variables. It reads
// GOOGLE_API_KEY for authentication and GEMINI_API_BASE_URL for the endpoint
// base (defaulting to Google's public API when unset).
func New() *Provider {
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("GOOGLE_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key and returns the provider so calls can be chained.
func (p *Provider) WithAPIKey(apiKey string) text.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL. Use this when targeting a proxy or
// local testing endpoint.
func (p *Provider) WithBaseURL(baseURL string) text.Provider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient replaces the default HTTP client used for API calls.
func (p *Provider) WithHTTPClient(client *http.Client) text.Provider {
	p.client = client
	return p
}

// Generate implements [text.Provider] against the generateContent endpoint.
// Gemini authenticates via the x-goog-api-key header and embeds the model in
// the URL rather than the body.
func (p *Provider) Generate(ctx context.Context, request text.Request) (*text.Response, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)

	httpResponse, resp, err := httpx.PostJSON[generateContentResponse](
		ctx,
		p.client,
		url,
		"", // Gemini does not use Bearer auth.
		buildRequest(request),
		httpx.Header{Key: "x-goog-api-key", Value: p.apiKey},
	)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Gemini API: %s", httpResponse.Status)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in Gemini response")
	}

	result := resp.toGeneric()
	result.Model = model // Gemini omits the model from the response body.
	return result, nil
}
