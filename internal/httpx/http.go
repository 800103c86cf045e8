package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/kaptinlin/jsonrepair"
)

// Header is an extra HTTP header applied to an outgoing request. Headers are
// set after the defaults, so a Header with a default key overrides it.
type Header struct {
	Key   string
	Value string
}

// PostJSON performs a synchronous HTTP POST with a JSON body and decodes the
// JSON response into OutputStruct.
//
// Error handling strategy:
//   - Context errors (timeout, cancellation) are propagated immediately
//   - Non-2xx status codes return an error carrying the status and body
//   - Malformed response JSON is repaired once via jsonrepair before failing
//   - Response body close errors are logged, never returned
//
// When apiKey is non-empty it is sent as a Bearer token; providers that
// authenticate differently pass an empty apiKey and set their own Header.
func PostJSON[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...Header) (*http.Response, *OutputStruct, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer closeBody(res.Body, url)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, fmt.Errorf("non-2xx status %d: %s", res.StatusCode, Truncate(string(respBody), 500))
	}

	resStruct, err := decodeOrRepair[OutputStruct](respBody)
	if err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, Truncate(string(respBody), 500))
	}

	return res, resStruct, nil
}

// GetJSON performs a synchronous HTTP GET and decodes the JSON response into
// OutputStruct. Authentication and error handling match [PostJSON].
func GetJSON[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, headers ...Header) (*http.Response, *OutputStruct, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer closeBody(res.Body, url)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, fmt.Errorf("non-2xx status %d: %s", res.StatusCode, Truncate(string(respBody), 500))
	}

	resStruct, err := decodeOrRepair[OutputStruct](respBody)
	if err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w", res.StatusCode, err)
	}

	return res, resStruct, nil
}

// decodeOrRepair unmarshals data into T. When plain unmarshaling fails it
// repairs the JSON once (providers occasionally return technically invalid
// JSON through proxies) and retries before giving up.
func decodeOrRepair[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return nil, err
		}
		if retryErr := json.Unmarshal([]byte(repaired), &out); retryErr != nil {
			return nil, err
		}
	}
	return &out, nil
}

// closeBody closes a response body, logging close errors without overriding
// the primary error returned by the caller.
func closeBody(body io.ReadCloser, url string) {
	if err := body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error(), "url", url)
	}
}
