package dispatch

import (
	"context"

	"github.com/promptcast/promptcast/providers/image"
	"github.com/promptcast/promptcast/providers/text"
)

// InvokeFunc is the uniform invocation signature the dispatcher calls: one
// prompt, one resolved model id, one settled payload or error.
type InvokeFunc func(ctx context.Context, prompt, model string) (Payload, error)

// Adapter normalizes one provider behind the uniform invocation contract.
type Adapter interface {
	Invoke(ctx context.Context, prompt, model string) (Payload, error)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(ctx context.Context, prompt, model string) (Payload, error)

func (f AdapterFunc) Invoke(ctx context.Context, prompt, model string) (Payload, error) {
	return f(ctx, prompt, model)
}

// Middleware wraps an InvokeFunc with per-call policy (timeout, retry,
// logging). Middleware is adapter-local: the dispatcher itself never retries
// or imposes deadlines.
type Middleware func(next InvokeFunc) InvokeFunc

// Chain wraps adapter with the given middleware, first entry outermost.
func Chain(adapter Adapter, middleware ...Middleware) Adapter {
	invoke := adapter.Invoke
	for i := len(middleware) - 1; i >= 0; i-- {
		invoke = middleware[i](invoke)
	}
	return AdapterFunc(invoke)
}

// TextAdapter exposes a [text.Provider] as an Adapter.
func TextAdapter(provider text.Provider) Adapter {
	return AdapterFunc(func(ctx context.Context, prompt, model string) (Payload, error) {
		resp, err := provider.Generate(ctx, text.Request{Prompt: prompt, Model: model})
		if err != nil {
			return Payload{}, err
		}
		return Payload{Text: resp.Content}, nil
	})
}

// ImageAdapter exposes an [image.Provider] as an Adapter.
func ImageAdapter(provider image.Provider) Adapter {
	return AdapterFunc(func(ctx context.Context, prompt, model string) (Payload, error) {
		resp, err := provider.Generate(ctx, image.Request{Prompt: prompt, Model: model})
		if err != nil {
			return Payload{}, err
		}
		return Payload{Image: resp}, nil
	})
}
