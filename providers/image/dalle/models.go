package dalle

import "github.com/promptcast/promptcast/providers/image"

/*
	OPENAI IMAGES API - REQUEST TYPES
*/

// generationsRequest is the request body for /images/generations.
type generationsRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size,omitempty"`
	Quality string `json:"quality,omitempty"`
	N       int    `json:"n"`
}

// buildRequest converts the generic request into the DALL-E wire format.
// Quality is a DALL-E 3 parameter; DALL-E 2 rejects it.
func buildRequest(model string, request image.Request) generationsRequest {
	out := generationsRequest{
		Model:  model,
		Prompt: request.Prompt,
		Size:   defaultSize,
		N:      1,
	}
	if model == defaultModel {
		out.Quality = defaultQuality
	}
	return out
}

/*
	OPENAI IMAGES API - RESPONSE TYPES
*/

// generationsResponse is the response body of /images/generations.
type generationsResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}
