package stability

import "github.com/promptcast/promptcast/providers/image"

/*
	STABILITY TEXT-TO-IMAGE API - REQUEST TYPES
*/

// textToImageRequest is the request body for /v1/generation/{engine}/text-to-image.
type textToImageRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type textPrompt struct {
	Text string `json:"text"`
}

// buildRequest converts the generic request into the Stability wire format
// with the generation defaults the CLI has always used.
func buildRequest(request image.Request) textToImageRequest {
	return textToImageRequest{
		TextPrompts: []textPrompt{{Text: request.Prompt}},
		CfgScale:    defaultCfgScale,
		Width:       defaultWidth,
		Height:      defaultHeight,
		Samples:     1,
		Steps:       defaultSteps,
	}
}

/*
	STABILITY TEXT-TO-IMAGE API - RESPONSE TYPES
*/

// textToImageResponse is the response body: one artifact per sample.
type textToImageResponse struct {
	Artifacts []artifact `json:"artifacts"`
}

type artifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason"`
}
