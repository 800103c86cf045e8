package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/promptcast/promptcast/credentials"
	"github.com/promptcast/promptcast/registry"
)

// fakeAdapter records invocations and returns a canned payload or error,
// optionally after an artificial delay.
type fakeAdapter struct {
	calls   atomic.Int32
	delay   time.Duration
	err     error
	payload string
}

func (f *fakeAdapter) Invoke(ctx context.Context, prompt, model string) (Payload, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return Payload{}, ctx.Err()
		}
	}
	if f.err != nil {
		return Payload{}, f.err
	}
	return Payload{Text: fmt.Sprintf("%s:%s:%s", f.payload, model, prompt)}, nil
}

// testRegistry is a three-provider text catalog with distinct credentials.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(registry.KindText,
		registry.Entry{Key: "gemini", DefaultModel: "gemini-default", CredentialEnv: "GOOGLE_API_KEY"},
		registry.Entry{Key: "openai", DefaultModel: "openai-default", CredentialEnv: "OPENAI_API_KEY"},
		registry.Entry{Key: "anthropic", DefaultModel: "anthropic-default", CredentialEnv: "ANTHROPIC_API_KEY"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func allCreds() credentials.Snapshot {
	return credentials.Snapshot{
		"GOOGLE_API_KEY":    "g",
		"OPENAI_API_KEY":    "o",
		"ANTHROPIC_API_KEY": "a",
	}
}

func newDispatcher(t *testing.T, creds credentials.Snapshot, adapters map[string]Adapter) *Dispatcher {
	t.Helper()
	d, err := New(testRegistry(t), creds, adapters)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// TestDispatch_SingleProvider verifies that a pinned provider yields exactly
// one result tagged with its key.
func TestDispatch_SingleProvider(t *testing.T) {
	adapters := map[string]Adapter{
		"gemini":    &fakeAdapter{payload: "g"},
		"openai":    &fakeAdapter{payload: "o"},
		"anthropic": &fakeAdapter{payload: "a"},
	}
	d := newDispatcher(t, allCreds(), adapters)

	for _, key := range []string{"gemini", "openai", "anthropic"} {
		results, err := d.Dispatch(context.Background(), Request{Prompt: "hello", Provider: key})
		if err != nil {
			t.Fatalf("Dispatch(%s) failed: %v", key, err)
		}
		if len(results) != 1 {
			t.Fatalf("expected exactly one result for %s, got %d", key, len(results))
		}
		if results[0].Provider != key {
			t.Errorf("expected result tagged %q, got %q", key, results[0].Provider)
		}
	}
}

// TestDispatch_ExplicitModel reproduces the concrete scenario: provider
// openai pinned with model gpt-4o and a present credential yields one
// success carrying that model.
func TestDispatch_ExplicitModel(t *testing.T) {
	d := newDispatcher(t, allCreds(), map[string]Adapter{
		"gemini":    &fakeAdapter{payload: "g"},
		"openai":    &fakeAdapter{payload: "o"},
		"anthropic": &fakeAdapter{payload: "a"},
	})

	results, err := d.Dispatch(context.Background(), Request{Prompt: "hello", Provider: "openai", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(results) != 1 || !results[0].OK() {
		t.Fatalf("expected one success, got %+v", results)
	}
	if results[0].Provider != "openai" || results[0].Model != "gpt-4o" {
		t.Errorf("expected openai/gpt-4o, got %s/%s", results[0].Provider, results[0].Model)
	}
}

// TestDispatch_DefaultModel verifies that an omitted model resolves to the
// provider's registered default.
func TestDispatch_DefaultModel(t *testing.T) {
	d := newDispatcher(t, allCreds(), map[string]Adapter{
		"gemini":    &fakeAdapter{payload: "g"},
		"openai":    &fakeAdapter{payload: "o"},
		"anthropic": &fakeAdapter{payload: "a"},
	})

	results, err := d.Dispatch(context.Background(), Request{Prompt: "hello", Provider: "openai"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if results[0].Model != "openai-default" {
		t.Errorf("expected registered default model, got %q", results[0].Model)
	}
	if !strings.Contains(results[0].Payload.Text, "openai-default") {
		t.Errorf("expected adapter invoked with default model, got %q", results[0].Payload.Text)
	}
}

// TestDispatch_MissingCredential verifies that an absent credential settles
// as a MissingCredential failure without the adapter ever being called.
func TestDispatch_MissingCredential(t *testing.T) {
	openai := &fakeAdapter{payload: "o"}
	d := newDispatcher(t, credentials.Snapshot{}, map[string]Adapter{
		"gemini":    &fakeAdapter{payload: "g"},
		"openai":    openai,
		"anthropic": &fakeAdapter{payload: "a"},
	})

	results, err := d.Dispatch(context.Background(), Request{Prompt: "hello", Provider: "openai"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if results[0].Failure != FailureMissingCredential {
		t.Errorf("expected MissingCredential failure, got %q", results[0].Failure)
	}
	if !strings.Contains(results[0].Err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected credential name in failure, got: %v", results[0].Err)
	}
	if openai.calls.Load() != 0 {
		t.Errorf("adapter must not be invoked without a credential, got %d calls", openai.calls.Load())
	}
}

// TestDispatch_UnknownProvider verifies the hard failure path: no partial
// results, errors.Is works against the registry sentinel.
func TestDispatch_UnknownProvider(t *testing.T) {
	d := newDispatcher(t, allCreds(), map[string]Adapter{
		"gemini":    &fakeAdapter{payload: "g"},
		"openai":    &fakeAdapter{payload: "o"},
		"anthropic": &fakeAdapter{payload: "a"},
	})

	results, err := d.Dispatch(context.Background(), Request{Prompt: "hello", Provider: "cohere"})
	if !errors.Is(err, registry.ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
	if results != nil {
		t.Errorf("expected no partial results, got %+v", results)
	}
}

// TestDispatch_ModelWithoutProvider verifies that a model id without a
// provider key is rejected as ambiguous.
func TestDispatch_ModelWithoutProvider(t *testing.T) {
	d := newDispatcher(t, allCreds(), map[string]Adapter{
		"gemini":    &fakeAdapter{payload: "g"},
		"openai":    &fakeAdapter{payload: "o"},
		"anthropic": &fakeAdapter{payload: "a"},
	})

	if _, err := d.Dispatch(context.Background(), Request{Prompt: "hello", Model: "gpt-4o"}); !errors.Is(err, ErrModelWithoutProvider) {
		t.Fatalf("expected ErrModelWithoutProvider, got %v", err)
	}
}

// TestDispatch_FanOutPreservesRegistryOrder makes the first provider the
// slowest and asserts that completion order does not leak into the output.
func TestDispatch_FanOutPreservesRegistryOrder(t *testing.T) {
	d := newDispatcher(t, allCreds(), map[string]Adapter{
		"gemini":    &fakeAdapter{payload: "g", delay: 150 * time.Millisecond},
		"openai":    &fakeAdapter{payload: "o", delay: 50 * time.Millisecond},
		"anthropic": &fakeAdapter{payload: "a"},
	})

	start := time.Now()
	results, err := d.Dispatch(context.Background(), Request{Prompt: "hello"})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	want := []string{"gemini", "openai", "anthropic"}
	for i, key := range want {
		if results[i].Provider != key {
			t.Fatalf("result order %v does not match registry order %v", results, want)
		}
	}

	// Concurrent fan-out: total latency tracks the slowest provider, not the sum.
	if elapsed > 400*time.Millisecond {
		t.Errorf("fan-out took %v; providers appear to run sequentially", elapsed)
	}
}

// TestDispatch_PartialFailureContainment reproduces the concrete scenario:
// three providers, one without a credential, one failing remotely — the
// remaining provider still succeeds and order is preserved.
func TestDispatch_PartialFailureContainment(t *testing.T) {
	creds := credentials.Snapshot{
		"GOOGLE_API_KEY":    "g",
		"ANTHROPIC_API_KEY": "a",
		// OPENAI_API_KEY deliberately absent.
	}
	gemini := &fakeAdapter{err: errors.New("503 upstream unavailable")}
	anthropic := &fakeAdapter{payload: "a"}
	d := newDispatcher(t, creds, map[string]Adapter{
		"gemini":    gemini,
		"openai":    &fakeAdapter{payload: "o"},
		"anthropic": anthropic,
	})

	results, err := d.Dispatch(context.Background(), Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Failure != FailureProvider {
		t.Errorf("gemini: expected provider failure, got %q", results[0].Failure)
	}
	if !strings.Contains(results[0].Err.Error(), "503") {
		t.Errorf("gemini: expected provider message preserved, got: %v", results[0].Err)
	}
	if results[1].Failure != FailureMissingCredential {
		t.Errorf("openai: expected missing credential, got %q", results[1].Failure)
	}
	if !results[2].OK() {
		t.Errorf("anthropic: expected success despite sibling failures, got %+v", results[2])
	}
	if !results.AnySuccess() {
		t.Error("expected AnySuccess to report the anthropic success")
	}
}

// TestDispatch_EmptyPrompt verifies prompt validation.
func TestDispatch_EmptyPrompt(t *testing.T) {
	d := newDispatcher(t, allCreds(), map[string]Adapter{
		"gemini":    &fakeAdapter{},
		"openai":    &fakeAdapter{},
		"anthropic": &fakeAdapter{},
	})

	if _, err := d.Dispatch(context.Background(), Request{}); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
}

// TestNew_MissingAdapter verifies that a registry entry without an adapter is
// a construction error, not a silent fan-out gap.
func TestNew_MissingAdapter(t *testing.T) {
	_, err := New(testRegistry(t), allCreds(), map[string]Adapter{"gemini": &fakeAdapter{}})
	if err == nil {
		t.Fatal("expected error for missing adapters")
	}
}

// TestResults_Err verifies failure aggregation and the nil result for
// all-success sequences.
func TestResults_Err(t *testing.T) {
	ok := Result{Provider: "openai"}
	failed := Result{Provider: "gemini", Failure: FailureProvider, Err: errors.New("boom")}

	if err := (Results{ok}).Err(); err != nil {
		t.Errorf("expected nil error for all-success results, got %v", err)
	}

	err := (Results{failed, ok}).Err()
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !strings.Contains(err.Error(), "gemini") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected provider and message in aggregate, got: %v", err)
	}

	var resultErr *ResultError
	if !errors.As(err, &resultErr) {
		t.Error("expected errors.As to find a ResultError in the aggregate")
	}
}
