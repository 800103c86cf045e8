package gemini

import (
	"strings"

	"github.com/promptcast/promptcast/providers/text"
)

/*
	GEMINI API - REQUEST TYPES
*/

// generateContentRequest is the request body for the generateContent endpoint.
type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

// content is a single conversation turn with its parts.
type content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	MaxOutputTokens *int `json:"maxOutputTokens,omitempty"`
}

// buildRequest converts the generic request into the Gemini wire format.
func buildRequest(request text.Request) generateContentRequest {
	out := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: request.Prompt}}},
		},
	}
	if request.MaxTokens > 0 {
		maxTokens := request.MaxTokens
		out.GenerationConfig = &generationConfig{MaxOutputTokens: &maxTokens}
	}
	return out
}

/*
	GEMINI API - RESPONSE TYPES
*/

// generateContentResponse is the response body of the generateContent endpoint.
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Role  string `json:"role"`
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// toGeneric maps the Gemini response to the provider-agnostic format,
// concatenating all text parts of the first candidate.
func (r generateContentResponse) toGeneric() *text.Response {
	candidate := r.Candidates[0]

	var b strings.Builder
	for _, p := range candidate.Content.Parts {
		b.WriteString(p.Text)
	}

	out := &text.Response{
		Content:      b.String(),
		FinishReason: strings.ToLower(candidate.FinishReason),
	}

	if r.UsageMetadata != nil {
		out.Usage = &text.Usage{
			PromptTokens:     r.UsageMetadata.PromptTokenCount,
			CompletionTokens: r.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      r.UsageMetadata.TotalTokenCount,
		}
	}

	return out
}
