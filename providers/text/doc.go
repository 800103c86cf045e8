// Package text defines the provider-agnostic contract for text generation:
// the [Provider] interface plus the [Request] and [Response] types shared by
// every adapter. Concrete adapters live in the gemini, openai, and anthropic
// subpackages; each one translates this contract into its service's wire
// format over raw net/http.
package text
