package config

// Backend types
const (
	BackendOpenAI    = "openai"
	BackendLangChain = "langchain"
	BackendGemini    = "gemini"
)

// Response formats requested from the model
const (
	ResponseFormatText = "text"
	ResponseFormatJSON = "json"
)

// Default models per backend
const (
	DefaultOpenAIModel = "gpt-4"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// DefaultTemperature is the sampling temperature used for every explanation request.
const DefaultTemperature = 0.7

// apiKeyEnvVars lists the environment variables consulted for the credential,
// in order of precedence, per backend.
var apiKeyEnvVars = map[string][]string{
	BackendOpenAI:    {"LLM_API_KEY", "OPENAI_API_KEY"},
	BackendLangChain: {"LLM_API_KEY", "OPENAI_API_KEY"},
	BackendGemini:    {"LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(backend string) string {
	if backend == BackendGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}
