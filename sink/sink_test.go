package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptcast/promptcast/dispatch"
	"github.com/promptcast/promptcast/providers/image"
)

// TestTextWriter_RendersSuccessAndFailure verifies that every result renders
// as one block, with failures inlined rather than aborting the write.
func TestTextWriter_RendersSuccessAndFailure(t *testing.T) {
	var buf bytes.Buffer
	w := &TextWriter{Out: &buf}

	results := dispatch.Results{
		{Provider: "gemini", Model: "gemini-2.0-flash-exp", Payload: dispatch.Payload{Text: "a haiku"}},
		{Provider: "openai", Model: "gpt-4o", Failure: dispatch.FailureMissingCredential, Err: errors.New("OPENAI_API_KEY environment variable not set")},
		{Provider: "anthropic", Model: "claude-3-7-sonnet-20250224", Failure: dispatch.FailureProvider, Err: errors.New("status 503")},
	}

	if err := w.Write(results); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"[gemini]", "a haiku", "[openai]", "skipped: OPENAI_API_KEY", "[anthropic]", "failed: status 503"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}

	// Registry order must survive rendering.
	if strings.Index(out, "[gemini]") > strings.Index(out, "[openai]") {
		t.Error("results rendered out of order")
	}
}

// TestDir_SaveWritesFile verifies that image bytes land on disk with a
// provider/model-derived name and the payload's extension.
func TestDir_SaveWritesFile(t *testing.T) {
	d := &Dir{Path: filepath.Join(t.TempDir(), "generated_images")}

	result := dispatch.Result{
		Provider: "openai",
		Model:    "dall-e-3",
		Payload:  dispatch.Payload{Image: &image.Response{Bytes: []byte("png-bytes"), Ext: "png"}},
	}

	path, err := d.Save(result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if filepath.Base(path) != "openai_dall-e-3.png" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("file content mismatch: %q", data)
	}
}

// TestDir_SaveDoesNotOverwrite verifies that a second save of the same
// provider/model pair gets a counter suffix instead of clobbering the first.
func TestDir_SaveDoesNotOverwrite(t *testing.T) {
	d := &Dir{Path: t.TempDir()}

	result := dispatch.Result{
		Provider: "stability",
		Model:    "stable-diffusion-3-medium-diffusers",
		Payload:  dispatch.Payload{Image: &image.Response{Bytes: []byte("first"), Ext: "png"}},
	}

	first, err := d.Save(result)
	if err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	result.Payload.Image.Bytes = []byte("second")
	second, err := d.Save(result)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	if first == second {
		t.Fatalf("second save reused path %s", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Errorf("first file was overwritten: %q", data)
	}
}

// TestDir_SaveSanitizesModelID verifies that namespaced model ids produce a
// flat filename.
func TestDir_SaveSanitizesModelID(t *testing.T) {
	d := &Dir{Path: t.TempDir()}

	result := dispatch.Result{
		Provider: "replicate",
		Model:    "black-forest-labs/flux-dev",
		Payload:  dispatch.Payload{Image: &image.Response{Bytes: []byte("x"), Ext: "webp"}},
	}

	path, err := d.Save(result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	base := filepath.Base(path)
	if strings.Contains(base, "/") {
		t.Errorf("filename still contains a slash: %q", base)
	}
	if base != "replicate_black-forest-labs-flux-dev.webp" {
		t.Errorf("unexpected filename %q", base)
	}
}

// TestDir_SaveRejectsTextResult verifies the guard against saving a result
// that carries no image payload.
func TestDir_SaveRejectsTextResult(t *testing.T) {
	d := &Dir{Path: t.TempDir()}

	_, err := d.Save(dispatch.Result{Provider: "openai", Payload: dispatch.Payload{Text: "not an image"}})
	if err == nil {
		t.Fatal("expected error for missing image payload")
	}
}
