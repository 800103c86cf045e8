package dispatch

import (
	"github.com/hashicorp/go-multierror"

	"github.com/promptcast/promptcast/providers/image"
)

// FailureKind classifies why a per-provider result failed. A successful
// result carries FailureNone.
type FailureKind string

const (
	FailureNone FailureKind = ""

	// FailureMissingCredential means the provider's credential was absent;
	// the adapter was never invoked.
	FailureMissingCredential FailureKind = "missing_credential"

	// FailureProvider means the adapter's remote call failed (auth rejected,
	// rate limited, malformed response, network error, timeout).
	FailureProvider FailureKind = "provider_error"
)

// Payload is the normalized output of one provider invocation: generated
// text, or a generated image.
type Payload struct {
	Text  string
	Image *image.Response
}

// Result is the settled outcome for one targeted provider. Results are
// created once per dispatched provider and never mutated afterwards.
type Result struct {
	Provider string
	Model    string
	Payload  Payload
	Failure  FailureKind
	Err      error
}

// OK reports whether the provider invocation succeeded.
func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Results is the per-provider outcome sequence of one dispatch, ordered by
// provider registry order regardless of completion order.
type Results []Result

// AnySuccess reports whether at least one targeted provider succeeded.
func (rs Results) AnySuccess() bool {
	for _, r := range rs {
		if r.OK() {
			return true
		}
	}
	return false
}

// Err aggregates every per-provider failure into a single error, or nil when
// no provider failed. Partial failure is normal; callers that only need one
// error value (logging, scripting) use this instead of walking the sequence.
func (rs Results) Err() error {
	var combined *multierror.Error
	for _, r := range rs {
		if !r.OK() {
			combined = multierror.Append(combined, &ResultError{Provider: r.Provider, Kind: r.Failure, Err: r.Err})
		}
	}
	return combined.ErrorOrNil()
}

// ResultError is the error form of a failed Result, used by [Results.Err].
type ResultError struct {
	Provider string
	Kind     FailureKind
	Err      error
}

func (e *ResultError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ResultError) Unwrap() error {
	return e.Err
}
