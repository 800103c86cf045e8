package anthropic

import (
	"strings"

	"github.com/promptcast/promptcast/providers/text"
)

/*
	ANTHROPIC MESSAGES API - REQUEST TYPES
*/

// messagesRequest is the request body for the Messages API. MaxTokens is
// required by Anthropic on every request.
type messagesRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// buildRequest converts the generic request into the Messages wire format.
func buildRequest(model string, request text.Request) messagesRequest {
	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return messagesRequest{
		Model: model,
		Messages: []message{
			{Role: "user", Content: request.Prompt},
		},
		MaxTokens: maxTokens,
	}
}

/*
	ANTHROPIC MESSAGES API - RESPONSE TYPES
*/

// messagesResponse is the response body of the Messages API, limited to the
// fields this package consumes. Content blocks other than "text" are ignored.
type messagesResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// toGeneric maps the Anthropic response to the provider-agnostic format,
// concatenating the text blocks.
func (r messagesResponse) toGeneric() *text.Response {
	var b strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	out := &text.Response{
		Model:        r.Model,
		Content:      b.String(),
		FinishReason: r.StopReason,
	}

	if r.Usage != nil {
		out.Usage = &text.Usage{
			PromptTokens:     r.Usage.InputTokens,
			CompletionTokens: r.Usage.OutputTokens,
			TotalTokens:      r.Usage.InputTokens + r.Usage.OutputTokens,
		}
	}

	return out
}
