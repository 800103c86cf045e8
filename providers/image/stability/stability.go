package stability

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/promptcast/promptcast/internal/httpx"
	"github.com/promptcast/promptcast/providers/image"
)

const (
	defaultBaseURL = "https://api.stability.ai"
	defaultModel   = "stable-diffusion-3-medium-diffusers"

	defaultWidth    = 1024
	defaultHeight   = 1024
	defaultCfgScale = 7
	defaultSteps    = 30
)

// Provider implements [image.Provider] for Stability AI's text-to-image API.
// Stability returns images inline as base64 artifacts, so no download step is
// needed.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a Provider initialized from environment variables. It reads
// STABILITY_API_KEY for authentication and STABILITY_API_HOST for the
// endpoint base.
func New() *Provider {
	baseURL := os.Getenv("STABILITY_API_HOST")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("STABILITY_API_KEY"),
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

// Generate implements [image.Provider]. The engine (model) is part of the
// URL; the first returned artifact is decoded from base64. Stability always
// produces PNG, and the artifact seed is surfaced on the response.
func (p *Provider) Generate(ctx context.Context, request image.Request) (*image.Response, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("STABILITY_API_KEY is not set")
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", p.baseURL, model)

	httpResponse, resp, err := httpx.PostJSON[textToImageResponse](
		ctx,
		p.client,
		url,
		p.apiKey,
		buildRequest(request),
		httpx.Header{Key: "Accept", Value: "application/json"},
	)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Stability API: %s", httpResponse.Status)
	}
	if len(resp.Artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts in Stability response")
	}

	artifact := resp.Artifacts[0]
	data, err := base64.StdEncoding.DecodeString(artifact.Base64)
	if err != nil {
		return nil, fmt.Errorf("decoding Stability artifact: %w", err)
	}

	return &image.Response{
		Model: model,
		Bytes: data,
		Ext:   "png",
		Seed:  artifact.Seed,
	}, nil
}
