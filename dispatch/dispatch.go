package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/promptcast/promptcast/credentials"
	"github.com/promptcast/promptcast/internal/logging"
	"github.com/promptcast/promptcast/registry"
)

// Request is one invocation: a prompt, optionally pinned to a single
// provider, optionally pinned to a model. Model is only meaningful together
// with Provider — a model without a provider is ambiguous and rejected.
type Request struct {
	Prompt   string
	Provider string // empty: fan out to the whole catalog
	Model    string // empty: each provider's registered default
}

// Request validation errors. These are caller input errors and abort the
// whole dispatch; they never appear as per-provider results.
var (
	ErrEmptyPrompt          = errors.New("prompt is empty")
	ErrModelWithoutProvider = errors.New("model specified without a provider")
)

// Dispatcher routes requests to provider adapters. It resolves the target
// set from the registry, validates credentials against an immutable
// snapshot, invokes adapters (concurrently on fan-out), and collects one
// settled result per targeted provider.
type Dispatcher struct {
	registry *registry.Registry
	creds    credentials.Snapshot
	adapters map[string]Adapter
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch-level log entries.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New builds a Dispatcher over a registry, a credential snapshot, and one
// adapter per registry key. Every registry entry must have an adapter;
// providers without one would silently fall out of fan-out otherwise.
func New(reg *registry.Registry, creds credentials.Snapshot, adapters map[string]Adapter, opts ...Option) (*Dispatcher, error) {
	for _, key := range reg.Keys() {
		if _, ok := adapters[key]; !ok {
			return nil, fmt.Errorf("no adapter registered for provider %q", key)
		}
	}

	d := &Dispatcher{
		registry: reg,
		creds:    creds,
		adapters: adapters,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch resolves the target providers and returns one settled result per
// target, in registry order. Only request validation errors and unknown
// provider keys return a non-nil error; every per-provider failure (missing
// credential, remote failure, timeout) is contained in the result sequence.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Results, error) {
	if req.Prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if req.Model != "" && req.Provider == "" {
		return nil, ErrModelWithoutProvider
	}

	targets, err := d.resolveTargets(req)
	if err != nil {
		return nil, err
	}

	logger := d.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("kind", string(d.registry.Kind())),
	)
	logger.Info("dispatching", slog.Int("targets", len(targets)))

	results := make(Results, len(targets))
	var wg sync.WaitGroup

	for i, entry := range targets {
		model := entry.DefaultModel
		if req.Model != "" && entry.Key == registry.Normalize(req.Provider) {
			model = req.Model
		}

		// Missing credentials settle immediately; the adapter is never called
		// and the remaining providers are unaffected.
		if !d.creds.Has(entry) {
			results[i] = Result{
				Provider: entry.Key,
				Model:    model,
				Failure:  FailureMissingCredential,
				Err:      fmt.Errorf("%s environment variable not set", entry.CredentialEnv),
			}
			logger.Warn("credential missing", slog.String("provider", entry.Key), slog.String("env", entry.CredentialEnv))
			continue
		}

		// Results are written to their registry-order slot, so completion
		// order never leaks into the output ordering.
		if len(targets) == 1 {
			results[i] = d.invoke(ctx, logger, entry.Key, req.Prompt, model)
			continue
		}

		wg.Add(1)
		go func(slot int, key, model string) {
			defer wg.Done()
			results[slot] = d.invoke(ctx, logger, key, req.Prompt, model)
		}(i, entry.Key, model)
	}

	wg.Wait()
	return results, nil
}

// resolveTargets returns the provider entries this request addresses: one
// entry when a provider key is given, the whole catalog otherwise.
func (d *Dispatcher) resolveTargets(req Request) ([]registry.Entry, error) {
	if req.Provider != "" {
		entry, err := d.registry.Lookup(req.Provider)
		if err != nil {
			return nil, err
		}
		return []registry.Entry{entry}, nil
	}
	return d.registry.Entries(), nil
}

// invoke runs one adapter and converts any failure into a contained Result.
func (d *Dispatcher) invoke(ctx context.Context, logger *slog.Logger, key, prompt, model string) Result {
	payload, err := d.adapters[key].Invoke(ctx, prompt, model)
	if err != nil {
		logger.Warn("provider failed", slog.String("provider", key), slog.String("model", model), logging.Err(err))
		return Result{
			Provider: key,
			Model:    model,
			Failure:  FailureProvider,
			Err:      err,
		}
	}

	logger.Info("provider succeeded", slog.String("provider", key), slog.String("model", model))
	return Result{
		Provider: key,
		Model:    model,
		Payload:  payload,
	}
}
