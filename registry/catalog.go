package registry

// Built-in provider keys.
const (
	KeyGemini    = "gemini"
	KeyOpenAI    = "openai"
	KeyAnthropic = "anthropic"
	KeyStability = "stability"
	KeyReplicate = "replicate"
)

// Credential environment variable names, one per external service.
const (
	EnvGoogleAPIKey      = "GOOGLE_API_KEY"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvAnthropicAPIKey   = "ANTHROPIC_API_KEY"
	EnvStabilityAPIKey   = "STABILITY_API_KEY"
	EnvReplicateAPIToken = "REPLICATE_API_TOKEN"
)

// DefaultText returns the built-in text catalog. Fan-out order: Gemini,
// OpenAI, Anthropic.
func DefaultText() *Registry {
	return MustNew(KindText,
		Entry{
			Key:          KeyGemini,
			DefaultModel: "gemini-2.0-flash-exp",
			AltModels: []string{
				"gemini-2.5-pro",
				"gemini-1.5-pro",
				"gemini-1.5-flash",
			},
			CredentialEnv: EnvGoogleAPIKey,
		},
		Entry{
			Key:          KeyOpenAI,
			DefaultModel: "gpt-4o-2025-01-07",
			AltModels: []string{
				"gpt-4o",
				"o3",
				"o1-mini",
				"gpt-4-turbo",
				"gpt-3.5-turbo",
			},
			CredentialEnv: EnvOpenAIAPIKey,
		},
		Entry{
			Key:          KeyAnthropic,
			DefaultModel: "claude-3-7-sonnet-20250224",
			AltModels: []string{
				"claude-3-5-sonnet-20241022",
				"claude-3-5-haiku-20241022",
				"claude-3-opus-20240229",
			},
			CredentialEnv: EnvAnthropicAPIKey,
		},
	)
}

// DefaultImage returns the built-in image catalog. The OpenAI entry comes
// first; it is also the single-provider default for image generation.
func DefaultImage() *Registry {
	return MustNew(KindImage,
		Entry{
			Key:          KeyOpenAI,
			DefaultModel: "dall-e-3",
			AltModels: []string{
				"dall-e-2",
			},
			CredentialEnv: EnvOpenAIAPIKey,
		},
		Entry{
			Key:          KeyStability,
			DefaultModel: "stable-diffusion-3-medium-diffusers",
			AltModels: []string{
				"stable-diffusion-xl-1024-v1-0",
				"stable-diffusion-v1-6",
			},
			CredentialEnv: EnvStabilityAPIKey,
		},
		Entry{
			Key:          KeyReplicate,
			DefaultModel: "black-forest-labs/flux-dev",
			AltModels: []string{
				"black-forest-labs/flux-schnell",
				"black-forest-labs/flux-1.1-pro-ultra",
			},
			CredentialEnv: EnvReplicateAPIToken,
		},
	)
}
