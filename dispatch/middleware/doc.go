// Package middleware provides built-in middleware implementations for
// provider adapters. Each middleware is constructed via a function that
// returns a [dispatch.Middleware] ready to be passed to [dispatch.Chain].
//
// # Available Middleware
//
//   - [Retry]: Retries failed provider calls with exponential backoff
//     and jitter. Useful for transient HTTP 429 / 5xx errors.
//
//   - [Timeout]: Adds a per-invocation deadline via context.WithTimeout,
//     ensuring that a stalled provider call does not block the caller indefinitely.
//
//   - [Logging]: Emits structured slog log entries before and after
//     every provider call, with three verbosity levels (Minimal, Standard, Verbose).
//
// # Usage
//
//	adapter := dispatch.Chain(dispatch.TextAdapter(provider),
//	    middleware.Timeout(30*time.Second),
//	    middleware.Retry(middleware.RetryConfig{MaxRetries: 3}),
//	    middleware.Logging(slog.Default(), middleware.LogLevelStandard),
//	)
//
// Middlewares execute outermost-first: the first entry in Chain is the
// outermost wrapper, meaning it runs first on the way in and last on the way
// out. In the example above, an invocation travels:
//
//	Timeout (first — outermost) → Retry → Logging → Provider
//
// and the response travels back in reverse:
//
//	Provider → Logging → Retry → Timeout (last — outermost)
package middleware
