package openai

import "github.com/promptcast/promptcast/providers/text"

/*
	OPENAI CHAT COMPLETIONS API - REQUEST TYPES
*/

// chatCompletionRequest is the request body for /chat/completions.
type chatCompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// buildRequest converts the generic request into the OpenAI wire format: a
// single user message carrying the prompt.
func buildRequest(model string, request text.Request) chatCompletionRequest {
	return chatCompletionRequest{
		Model: model,
		Messages: []message{
			{Role: "user", Content: request.Prompt},
		},
		MaxTokens: request.MaxTokens,
	}
}

/*
	OPENAI CHAT COMPLETIONS API - RESPONSE TYPES
*/

// chatCompletionResponse is the response body of /chat/completions, limited
// to the fields this package consumes.
type chatCompletionResponse struct {
	Id      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int     `json:"index"`
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// toGeneric maps the OpenAI response to the provider-agnostic format using
// the first choice.
func (r chatCompletionResponse) toGeneric() *text.Response {
	choice := r.Choices[0]

	out := &text.Response{
		Model:        r.Model,
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
	}

	if r.Usage != nil {
		out.Usage = &text.Usage{
			PromptTokens:     r.Usage.PromptTokens,
			CompletionTokens: r.Usage.CompletionTokens,
			TotalTokens:      r.Usage.TotalTokens,
		}
	}

	return out
}
