package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/promptcast/promptcast/providers/text"
)

// TestGenerate_Basic exercises the happy path: model in the URL, x-goog-api-key
// auth, parts concatenated into the response content.
func TestGenerate_Basic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("expected x-goog-api-key 'test-key', got %q", r.Header.Get("x-goog-api-key"))
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header: %q", r.Header.Get("Authorization"))
		}
		if !strings.Contains(r.URL.Path, "/models/gemini-1.5-pro:generateContent") {
			t.Errorf("expected model in URL path, got %q", r.URL.Path)
		}

		var reqBody generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if len(reqBody.Contents) != 1 || reqBody.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("expected single user turn with prompt, got %+v", reqBody.Contents)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Hi "}, {"text": "there"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 5, "totalTokenCount": 8}
		}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)
	resp, err := provider.Generate(context.Background(), text.Request{Prompt: "hello", Model: "gemini-1.5-pro"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if resp.Content != "Hi there" {
		t.Errorf("expected concatenated parts, got %q", resp.Content)
	}
	if resp.Model != "gemini-1.5-pro" {
		t.Errorf("expected request model echoed, got %q", resp.Model)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("expected lowercased finish reason, got %q", resp.FinishReason)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 8 {
		t.Errorf("expected usage with 8 total tokens, got %+v", resp.Usage)
	}
}

// TestGenerate_DefaultModel verifies that an empty request model falls back to
// the provider default.
func TestGenerate_DefaultModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, defaultModel) {
			t.Errorf("expected default model in URL, got %q", r.URL.Path)
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}, "finishReason": "STOP"}]}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("k").WithBaseURL(server.URL)
	resp, err := provider.Generate(context.Background(), text.Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Model != defaultModel {
		t.Errorf("expected default model %q, got %q", defaultModel, resp.Model)
	}
}

// TestGenerate_MissingAPIKey verifies the pre-flight credential guard.
func TestGenerate_MissingAPIKey(t *testing.T) {
	provider := (&Provider{baseURL: defaultBaseURL, client: &http.Client{}})
	if _, err := provider.Generate(context.Background(), text.Request{Prompt: "hello"}); err == nil {
		t.Fatal("expected error when API key is unset")
	}
}

// TestGenerate_APIError verifies that HTTP errors surface with status and body.
func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "invalid model"}}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("k").WithBaseURL(server.URL)
	_, err := provider.Generate(context.Background(), text.Request{Prompt: "hello"})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("expected provider message preserved, got: %v", err)
	}
}

// TestGenerate_NoCandidates verifies the empty-candidates error path.
func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("k").WithBaseURL(server.URL)
	if _, err := provider.Generate(context.Background(), text.Request{Prompt: "hello"}); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
