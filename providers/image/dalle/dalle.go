package dalle

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/promptcast/promptcast/internal/httpx"
	"github.com/promptcast/promptcast/providers/image"
)

const (
	defaultBaseURL      = "https://api.openai.com/v1"
	generationsEndpoint = "/images/generations"
	defaultModel        = "dall-e-3"

	defaultSize    = "1024x1024"
	defaultQuality = "standard"
)

// Provider implements [image.Provider] for OpenAI's image generations API
// (DALL-E). The API returns hosted URLs; the adapter downloads the first one.
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
func (p *Provider) WithAPIKey(apiKey string) image.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL.
func (p *Provider) WithBaseURL(baseURL string) image.Provider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient replaces the default HTTP client used for API calls.
func (p *Provider) WithHTTPClient(client *http.Client) image.Provider {
	p.client = client
	return p
}

// Generate implements [image.Provider]. DALL-E 3 only supports n=1 and takes
// a quality parameter; DALL-E 2 takes neither. The generated image is fetched
// from the URL the API returns, and DALL-E 3's revised prompt is surfaced on
// the response.
func (p *Provider) Generate(ctx context.Context, request image.Request) (*image.Response, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	httpResponse, resp, err := httpx.PostJSON[generationsResponse](
		ctx,
		p.client,
		p.baseURL+generationsEndpoint,
		p.apiKey,
		buildRequest(model, request),
	)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from OpenAI images API: %s", httpResponse.Status)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, fmt.Errorf("no image URL in OpenAI images response")
	}

	item := resp.Data[0]
	data, ext, err := httpx.Download(ctx, p.client, item.URL)
	if err != nil {
		return nil, fmt.Errorf("downloading generated image: %w", err)
	}

	return &image.Response{
		Model:         model,
		Bytes:         data,
		Ext:           ext,
		SourceURL:     item.URL,
		RevisedPrompt: item.RevisedPrompt,
	}, nil
}
