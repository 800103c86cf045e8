package replicate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/promptcast/promptcast/internal/httpx"
	"github.com/promptcast/promptcast/providers/image"
)

const (
	defaultBaseURL = "https://api.replicate.com/v1"
	defaultModel   = "black-forest-labs/flux-dev"

	pollTimeout  = 60 * time.Second
	pollInterval = time.Second
)

// Provider implements [image.Provider] for Replicate's predictions API.
// A generation is a prediction: created with Prefer: wait, polled until it
// reaches a terminal status when the API returns early, then the output URL
// is downloaded.
type Provider struct {
	apiToken string
	baseURL  string
	client   *http.Client
}

// New returns a Provider initialized from environment variables. It reads
// REPLICATE_API_TOKEN for authentication and REPLICATE_API_BASE_URL for the
// endpoint base.
func New() *Provider {
	baseURL := os.Getenv("REPLICATE_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiToken: os.Getenv("REPLICATE_API_TOKEN"),
		baseURL:  baseURL,
		client:   &http.Client{},
	}
}

// WithAPIKey sets the API token and returns the provider so calls can be chained.
func (p *Provider) WithAPIKey(apiKey string) image.Provider {
	p.apiToken = apiKey
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

// Generate implements [image.Provider].
func (p *Provider) Generate(ctx context.Context, request image.Request) (*image.Response, error) {
	if p.apiToken == "" {
		return nil, fmt.Errorf("REPLICATE_API_TOKEN is not set")
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	url := fmt.Sprintf("%s/models/%s/predictions", p.baseURL, model)

	_, created, err := httpx.PostJSON[prediction](
		ctx,
		p.client,
		url,
		p.apiToken,
		createPredictionRequest{Input: buildInput(model, request)},
		httpx.Header{Key: "Prefer", Value: "wait"},
	)
	if err != nil {
		return nil, fmt.Errorf("creating prediction: %w", err)
	}

	result := *created
	if !result.terminal() {
		result, err = p.pollPrediction(ctx, result.ID)
		if err != nil {
			return nil, fmt.Errorf("polling prediction: %w", err)
		}
	}

	if result.Status != statusSucceeded {
		msg := result.Error
		if msg == "" {
			msg = "no error detail"
		}
		return nil, fmt.Errorf("prediction %s with status %s: %s", result.ID, result.Status, msg)
	}

	outputURL, err := result.firstOutputURL()
	if err != nil {
		return nil, err
	}

	data, ext, err := httpx.Download(ctx, p.client, outputURL)
	if err != nil {
		return nil, fmt.Errorf("downloading prediction output: %w", err)
	}

	return &image.Response{
		Model:     model,
		Bytes:     data,
		Ext:       ext,
		SourceURL: outputURL,
	}, nil
}

// pollPrediction fetches the prediction until it reaches a terminal status or
// the poll timeout expires.
func (p *Provider) pollPrediction(ctx context.Context, id string) (prediction, error) {
	pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	url := fmt.Sprintf("%s/predictions/%s", p.baseURL, id)

	for {
		select {
		case <-pollCtx.Done():
			return prediction{}, fmt.Errorf("prediction %s did not finish: %w", id, pollCtx.Err())
		case <-ticker.C:
			_, current, err := httpx.GetJSON[prediction](pollCtx, p.client, url, p.apiToken)
			if err != nil {
				return prediction{}, err
			}
			if current.terminal() {
				return *current, nil
			}
		}
	}
}

// buildInput assembles the model input. Flux models take sizing and format
// parameters; other models just get the prompt.
func buildInput(model string, request image.Request) map[string]any {
	input := map[string]any{"prompt": request.Prompt}
	if strings.Contains(strings.ToLower(model), "flux") {
		input["num_outputs"] = 1
		input["aspect_ratio"] = "1:1"
		input["output_format"] = "png"
	}
	return input
}

var errNoOutput = errors.New("prediction produced no output")
