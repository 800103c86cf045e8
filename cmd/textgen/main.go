// Command textgen sends one prompt to one or all configured text providers
// and prints the generated text per provider.
//
// Usage:
//
//	textgen "<prompt>" [provider] [model]
//
// With no provider argument the prompt fans out to every configured text
// provider using its default model. A model argument is only valid together
// with a provider.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	_ "github.com/joho/godotenv/autoload"

	"github.com/promptcast/promptcast/credentials"
	"github.com/promptcast/promptcast/dispatch"
	"github.com/promptcast/promptcast/dispatch/middleware"
	"github.com/promptcast/promptcast/internal/logging"
	"github.com/promptcast/promptcast/providers/text/anthropic"
	"github.com/promptcast/promptcast/providers/text/gemini"
	"github.com/promptcast/promptcast/providers/text/openai"
	"github.com/promptcast/promptcast/registry"
	"github.com/promptcast/promptcast/sink"
)

type config struct {
	Timeout     time.Duration `env:"PROMPTCAST_TIMEOUT" envDefault:"120s"`
	LogLevel    string        `env:"PROMPTCAST_LOG_LEVEL" envDefault:"warn"`
	CatalogFile string        `env:"PROMPTCAST_PROVIDERS"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "textgen:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing env config: %w", err)
	}
	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, logging.ParseLevel(cfg.LogLevel))))

	req, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, `usage: textgen "<prompt>" [provider] [model]`)
		return err
	}

	reg, err := textRegistry(cfg.CatalogFile)
	if err != nil {
		return err
	}

	dispatcher, err := dispatch.New(reg, credentials.FromEnv(), textAdapters(cfg))
	if err != nil {
		return err
	}

	results, err := dispatcher.Dispatch(context.Background(), req)
	if err != nil {
		return err
	}

	writer := &sink.TextWriter{Out: os.Stdout}
	return writer.Write(results)
}

// parseArgs maps positional arguments onto a dispatch request.
func parseArgs(args []string) (dispatch.Request, error) {
	if len(args) < 1 || len(args) > 3 {
		return dispatch.Request{}, errors.New("expected 1 to 3 arguments")
	}

	req := dispatch.Request{Prompt: args[0]}
	if len(args) > 1 {
		req.Provider = args[1]
	}
	if len(args) > 2 {
		req.Model = args[2]
	}
	return req, nil
}

// textRegistry returns the built-in text catalog, or the override file's when
// one is configured.
func textRegistry(catalogFile string) (*registry.Registry, error) {
	if catalogFile == "" {
		return registry.DefaultText(), nil
	}

	catalog, err := registry.LoadCatalog(catalogFile)
	if err != nil {
		return nil, err
	}
	return catalog.TextRegistry()
}

// textAdapters builds one middleware-wrapped adapter per built-in text
// provider.
func textAdapters(cfg config) map[string]dispatch.Adapter {
	wrap := func(adapter dispatch.Adapter) dispatch.Adapter {
		return dispatch.Chain(adapter,
			middleware.Timeout(cfg.Timeout),
			middleware.Retry(middleware.RetryConfig{}),
			middleware.Logging(slog.Default(), middleware.LogLevelStandard),
		)
	}

	return map[string]dispatch.Adapter{
		registry.KeyGemini:    wrap(dispatch.TextAdapter(gemini.New())),
		registry.KeyOpenAI:    wrap(dispatch.TextAdapter(openai.New())),
		registry.KeyAnthropic: wrap(dispatch.TextAdapter(anthropic.New())),
	}
}
