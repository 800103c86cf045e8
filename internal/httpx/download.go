package httpx

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MaxDownloadSize caps the bytes read from a single asset download (32 MiB).
// Image providers return single images well under this limit.
const MaxDownloadSize = 32 << 20

// Download fetches a binary asset (typically a generated image) from url and
// returns its bytes together with an inferred file extension.
//
// The extension is taken from the response Content-Type when it names an
// image format, then from the URL path, falling back to "png" which is what
// every supported image provider produces by default.
//
// Failed downloads frequently come back as HTML error pages from CDNs; those
// bodies are converted to markdown so the failure message stays readable.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("error creating request: %w", err)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("error downloading %s: %w", url, err)
	}
	defer closeBody(res.Body, url)

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxDownloadSize))
	if err != nil {
		return nil, "", fmt.Errorf("error reading download body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, "", fmt.Errorf("download failed with status %d: %s", res.StatusCode, readableBody(res.Header.Get("Content-Type"), data))
	}

	return data, inferExtension(res.Header.Get("Content-Type"), url), nil
}

// readableBody turns an error response body into something fit for an error
// message. HTML bodies are converted to markdown first; everything is truncated.
func readableBody(contentType string, body []byte) string {
	text := string(body)
	if strings.Contains(contentType, "text/html") || strings.HasPrefix(strings.TrimSpace(text), "<") {
		if markdown, err := htmltomarkdown.ConvertString(text); err == nil {
			text = markdown
		}
	}
	return Truncate(strings.TrimSpace(text), 500)
}

// inferExtension derives a file extension from the Content-Type header, then
// the URL path, defaulting to "png".
func inferExtension(contentType, url string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "image/png":
			return "png"
		case "image/jpeg":
			return "jpg"
		case "image/webp":
			return "webp"
		case "image/gif":
			return "gif"
		}
	}

	if ext := strings.TrimPrefix(path.Ext(stripQuery(url)), "."); ext != "" && len(ext) <= 4 {
		return strings.ToLower(ext)
	}

	return "png"
}

func stripQuery(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
