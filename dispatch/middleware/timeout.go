package middleware

import (
	"context"
	"time"

	"github.com/promptcast/promptcast/dispatch"
)

// Timeout returns a middleware that enforces a per-invocation deadline via
// context.WithTimeout. The context is canceled once the adapter returns or
// the deadline expires.
//
// If the caller supplies a context that already has a shorter deadline, that
// shorter deadline wins as per normal context semantics.
func Timeout(timeout time.Duration) dispatch.Middleware {
	return func(next dispatch.InvokeFunc) dispatch.InvokeFunc {
		return func(ctx context.Context, prompt, model string) (dispatch.Payload, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, prompt, model)
		}
	}
}
