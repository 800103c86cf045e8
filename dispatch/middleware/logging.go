package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/promptcast/promptcast/dispatch"
	"github.com/promptcast/promptcast/internal/httpx"
)

// LogLevel controls how much detail the logging middleware emits per invocation.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name and total duration.
	// Use this when you want lightweight audit trails without noise.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the prompt length and,
	// for images, the byte size of the generated artifact. This is the
	// recommended default for most applications.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the prompt and any
	// generated text, each truncated to 500 characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. It will log raw prompt
	// and response text, which may contain sensitive user data, secrets, or PII.
	// It is intended solely for local debugging and development.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// Logging returns a middleware that emits structured slog entries before and
// after every provider invocation.
//
// The logger parameter must not be nil. Use slog.Default() if you have not
// configured a custom logger.
func Logging(logger *slog.Logger, level LogLevel) dispatch.Middleware {
	return func(next dispatch.InvokeFunc) dispatch.InvokeFunc {
		return func(ctx context.Context, prompt, model string) (dispatch.Payload, error) {
			logger.InfoContext(ctx, "provider call",
				buildRequestAttrs(prompt, model, level)...,
			)

			start := time.Now()
			payload, err := next(ctx, prompt, model)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "provider call failed",
					slog.String("model", model),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return dispatch.Payload{}, err
			}

			logger.InfoContext(ctx, "provider call completed",
				buildResponseAttrs(payload, model, elapsed, level)...,
			)

			return payload, nil
		}
	}
}

// buildRequestAttrs returns slog attributes for an outgoing invocation,
// expanding detail according to the requested verbosity level.
func buildRequestAttrs(prompt, model string, level LogLevel) []any {
	attrs := []any{
		slog.String("model", model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.Int("prompt_length", len(prompt)))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("prompt", httpx.Truncate(prompt, truncateLen)))
	}

	return attrs
}

// buildResponseAttrs returns slog attributes for a completed invocation,
// expanding detail according to the requested verbosity level.
func buildResponseAttrs(payload dispatch.Payload, model string, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", model),
		slog.Duration("duration", elapsed),
	}

	if level >= LogLevelStandard && payload.Image != nil {
		attrs = append(attrs, slog.Int("image_bytes", len(payload.Image.Bytes)))
	}

	if level >= LogLevelVerbose && payload.Text != "" {
		attrs = append(attrs, slog.String("response_content", httpx.Truncate(payload.Text, truncateLen)))
	}

	return attrs
}
