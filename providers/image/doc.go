// Package image defines the provider-agnostic contract for image generation.
// Concrete adapters live in the dalle, stability, and replicate subpackages.
// Each adapter resolves its provider's delivery mechanism — hosted URLs for
// DALL-E and Replicate, inline base64 for Stability — down to the same
// normalized [Response] of decoded bytes plus a file extension.
package image
