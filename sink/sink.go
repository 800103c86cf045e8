// Package sink renders settled dispatch results for the user: text results as
// colored per-provider lines, image results as files under an output
// directory.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/promptcast/promptcast/dispatch"
)

var (
	successLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failureLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText      = color.New(color.Faint).SprintFunc()
)

// TextWriter prints one block per settled result: a colored provider/model
// header followed by the generated text, or the failure reason.
type TextWriter struct {
	Out io.Writer
}

// Write renders every result in order. Failures are rendered inline; the
// caller decides what a fully-failed sequence means for the exit code.
func (w *TextWriter) Write(results dispatch.Results) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}

	for _, r := range results {
		if r.OK() {
			if _, err := fmt.Fprintf(out, "%s %s\n%s\n\n", successLabel("["+r.Provider+"]"), dimText(r.Model), r.Payload.Text); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(out, "%s %s\n%s\n\n", failureLabel("["+r.Provider+"]"), dimText(r.Model), failureReason(r)); err != nil {
			return err
		}
	}

	return nil
}

// failureReason renders a settled failure for the user.
func failureReason(r dispatch.Result) string {
	switch r.Failure {
	case dispatch.FailureMissingCredential:
		return fmt.Sprintf("skipped: %v", r.Err)
	default:
		return fmt.Sprintf("failed: %v", r.Err)
	}
}

// Dir saves image payloads as files under Path, creating the directory on
// first use.
type Dir struct {
	Path string
}

// Save writes one image payload to disk and returns the created file path.
// The filename encodes the provider and model so fan-out runs never collide.
func (d *Dir) Save(result dispatch.Result) (string, error) {
	img := result.Payload.Image
	if img == nil {
		return "", fmt.Errorf("result for %s carries no image payload", result.Provider)
	}

	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", d.Path, err)
	}

	name := fmt.Sprintf("%s_%s.%s", result.Provider, sanitizeModel(result.Model), img.Ext)
	path := filepath.Join(d.Path, name)

	// Never overwrite an earlier generation; suffix with a counter instead.
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(d.Path, fmt.Sprintf("%s_%s_%d.%s", result.Provider, sanitizeModel(result.Model), i, img.Ext))
	}

	if err := os.WriteFile(path, img.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("writing image file %s: %w", path, err)
	}

	return path, nil
}

// sanitizeModel makes a model id filesystem-safe. Replicate model ids carry a
// namespace slash (black-forest-labs/flux-dev).
func sanitizeModel(model string) string {
	replacer := strings.NewReplacer("/", "-", ":", "-", " ", "-")
	return replacer.Replace(model)
}
