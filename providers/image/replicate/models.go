package replicate

import "encoding/json"

/*
	REPLICATE PREDICTIONS API - TYPES
*/

// createPredictionRequest is the request body for /models/{model}/predictions.
type createPredictionRequest struct {
	Input map[string]any `json:"input"`
}

// Prediction statuses; the last three are terminal.
const (
	statusStarting   = "starting"
	statusProcessing = "processing"
	statusSucceeded  = "succeeded"
	statusFailed     = "failed"
	statusCanceled   = "canceled"
)

// prediction is a Replicate prediction resource. Output is model-dependent:
// flux models return a list of URLs, some models return a single URL string,
// so it stays raw until decoded by firstOutputURL.
type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Output json.RawMessage `json:"output"`
}

// terminal reports whether the prediction has reached a final status.
func (p prediction) terminal() bool {
	switch p.Status {
	case statusSucceeded, statusFailed, statusCanceled:
		return true
	}
	return false
}

// firstOutputURL decodes Output as either a string or a list of strings and
// returns the first URL.
func (p prediction) firstOutputURL() (string, error) {
	if len(p.Output) == 0 {
		return "", errNoOutput
	}

	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}

	return "", errNoOutput
}
