// Command imagegen generates one image per targeted provider and saves the
// results under an output directory.
//
// Usage:
//
//	imagegen "<prompt>" [provider]
//
// With no provider argument the prompt goes to the OpenAI image provider.
// Passing "all" fans out to every configured image provider.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/fatih/color"
	_ "github.com/joho/godotenv/autoload"

	"github.com/promptcast/promptcast/credentials"
	"github.com/promptcast/promptcast/dispatch"
	"github.com/promptcast/promptcast/dispatch/middleware"
	"github.com/promptcast/promptcast/internal/logging"
	"github.com/promptcast/promptcast/providers/image/dalle"
	"github.com/promptcast/promptcast/providers/image/replicate"
	"github.com/promptcast/promptcast/providers/image/stability"
	"github.com/promptcast/promptcast/registry"
	"github.com/promptcast/promptcast/sink"
)

type config struct {
	Timeout     time.Duration `env:"PROMPTCAST_TIMEOUT" envDefault:"300s"`
	LogLevel    string        `env:"PROMPTCAST_LOG_LEVEL" envDefault:"warn"`
	CatalogFile string        `env:"PROMPTCAST_PROVIDERS"`
	OutputDir   string        `env:"PROMPTCAST_OUTPUT_DIR" envDefault:"generated_images"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "imagegen:", err)
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
		fmt.Fprintln(os.Stderr, `usage: imagegen "<prompt>" [provider]`)
		return err
	}

	reg, err := imageRegistry(cfg.CatalogFile)
	if err != nil {
		return err
	}

	dispatcher, err := dispatch.New(reg, credentials.FromEnv(), imageAdapters(cfg))
	if err != nil {
		return err
	}

	results, err := dispatcher.Dispatch(context.Background(), req)
	if err != nil {
		return err
	}

	return saveResults(results, cfg.OutputDir)
}

// parseArgs maps positional arguments onto a dispatch request. The provider
// defaults to openai; "all" clears it so the dispatcher fans out.
func parseArgs(args []string) (dispatch.Request, error) {
	if len(args) < 1 || len(args) > 2 {
		return dispatch.Request{}, errors.New("expected 1 or 2 arguments")
	}

	req := dispatch.Request{Prompt: args[0], Provider: registry.KeyOpenAI}
	if len(args) > 1 {
		req.Provider = args[1]
	}
	if registry.Normalize(req.Provider) == "all" {
		req.Provider = ""
	}
	return req, nil
}

// imageRegistry returns the built-in image catalog, or the override file's
// when one is configured.
func imageRegistry(catalogFile string) (*registry.Registry, error) {
	if catalogFile == "" {
		return registry.DefaultImage(), nil
	}

	catalog, err := registry.LoadCatalog(catalogFile)
	if err != nil {
		return nil, err
	}
	return catalog.ImageRegistry()
}

// imageAdapters builds one middleware-wrapped adapter per built-in image
// provider.
func imageAdapters(cfg config) map[string]dispatch.Adapter {
	wrap := func(adapter dispatch.Adapter) dispatch.Adapter {
		return dispatch.Chain(adapter,
			middleware.Timeout(cfg.Timeout),
			middleware.Retry(middleware.RetryConfig{}),
			middleware.Logging(slog.Default(), middleware.LogLevelStandard),
		)
	}

	return map[string]dispatch.Adapter{
		registry.KeyOpenAI:    wrap(dispatch.ImageAdapter(dalle.New())),
		registry.KeyStability: wrap(dispatch.ImageAdapter(stability.New())),
		registry.KeyReplicate: wrap(dispatch.ImageAdapter(replicate.New())),
	}
}

// saveResults writes every successful image to disk and reports each
// provider's outcome on one colored line.
func saveResults(results dispatch.Results, outputDir string) error {
	dir := &sink.Dir{Path: outputDir}

	for _, r := range results {
		if !r.OK() {
			fmt.Printf("%s %s: %v\n", color.RedString("[%s]", r.Provider), r.Model, r.Err)
			continue
		}

		path, err := dir.Save(r)
		if err != nil {
			fmt.Printf("%s %s: %v\n", color.RedString("[%s]", r.Provider), r.Model, err)
			continue
		}

		line := fmt.Sprintf("%s %s → %s", color.GreenString("[%s]", r.Provider), r.Model, path)
		if r.Payload.Image.RevisedPrompt != "" {
			line += fmt.Sprintf("\n  revised prompt: %s", r.Payload.Image.RevisedPrompt)
		}
		fmt.Println(line)
	}

	return nil
}
