package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"word-explainer/internal/types"
)

var configEnvVars = []string{
	"CONFIG_PATH", "ENV_FILE", "LLM_BACKEND", "LLM_MODEL", "LLM_ENDPOINT",
	"LLM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	"LOG_MAX_SIZE", "LOG_MAX_BACKUPS", "LOG_MAX_AGE",
}

// clearEnv unsets every variable LoadConfig reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func missingPaths(t *testing.T) (string, string) {
	dir := t.TempDir()
	return filepath.Join(dir, "config.yaml"), filepath.Join(dir, ".env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)

	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultMaxBodySize, cfg.Server.MaxBodySize)
	assert.Equal(t, BackendOpenAI, cfg.LLM.Backend)
	assert.Equal(t, DefaultOpenAIModel, cfg.LLM.Model)
	assert.Equal(t, ResponseFormatText, cfg.LLM.ResponseFormat)
	assert.Zero(t, cfg.LLM.MaxRetries)
	assert.Zero(t, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)

	yamlContent := `
log:
  level: DEBUG
server:
  port: 1234
llm:
  backend: gemini
  timeout: 30s
  max_retries: 2
  response_format: json
prompts:
  dir: /etc/word-explainer/prompts
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0o600))

	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, BackendGemini, cfg.LLM.Backend)
	assert.Equal(t, DefaultGeminiModel, cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, uint(2), cfg.LLM.MaxRetries)
	assert.Equal(t, ResponseFormatJSON, cfg.LLM.ResponseFormat)
	assert.Equal(t, "/etc/word-explainer/prompts", cfg.Prompts.Dir)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)
	require.NoError(t, os.WriteFile(cfgPath, []byte("llm: [not a map"), 0o600))

	_, err := LoadConfig(cfgPath, envPath)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)
	require.NoError(t, os.WriteFile(cfgPath, []byte("llm:\n  api_key: from-yaml\n  model: from-yaml\n"), 0o600))

	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)
	require.NoError(t, os.WriteFile(envPath, []byte("OPENAI_API_KEY=from-dotenv\n"), 0o600))

	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.LLM.APIKey)
}

func TestLoadConfig_ProcessEnvWinsOverEnvFile(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)
	require.NoError(t, os.WriteFile(envPath, []byte("OPENAI_API_KEY=from-dotenv\n"), 0o600))
	t.Setenv("OPENAI_API_KEY", "from-process")

	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.LLM.APIKey)
}

func TestLoadConfig_GeminiKeyEnv(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)
	t.Setenv("LLM_BACKEND", "Gemini")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)
	assert.Equal(t, BackendGemini, cfg.LLM.Backend)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
}

func TestLoadConfigWithOverrides(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)
	t.Setenv("LLM_BACKEND", "openai")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := LoadConfigWithOverrides(cfgPath, envPath, Overrides{Backend: "Gemini"})
	require.NoError(t, err)
	assert.Equal(t, BackendGemini, cfg.LLM.Backend)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)

	cfg, err = LoadConfigWithOverrides(cfgPath, envPath, Overrides{Model: "gpt-4.1", APIKey: " explicit "})
	require.NoError(t, err)
	assert.Equal(t, BackendOpenAI, cfg.LLM.Backend)
	assert.Equal(t, "gpt-4.1", cfg.LLM.Model)
	assert.Equal(t, "explicit", cfg.LLM.APIKey)

	assert.Equal(t, "openai", os.Getenv("LLM_BACKEND"))
	assert.Equal(t, "gpt-4o", os.Getenv("LLM_MODEL"))
}

func TestResolveAPIKey(t *testing.T) {
	assert.Equal(t, "explicit", ResolveAPIKey("explicit", "configured"))
	assert.Equal(t, "configured", ResolveAPIKey("", "configured"))
	assert.Empty(t, ResolveAPIKey("", ""))
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfgPath, envPath := missingPaths(t)
	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)

	cfg.LLM.Backend = "bard"
	cfg.LLM.ResponseFormat = "xml"
	cfg.Server.Port = 0

	err = cfg.Validate()
	require.Error(t, err)

	var cfgErr *types.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, `unknown llm backend: "bard"`)
	assert.Contains(t, cfgErr.Reason, `unknown response format: "xml"`)
	assert.Contains(t, cfgErr.Reason, "invalid server port: 0")
}

func TestGetLogLevel(t *testing.T) {
	cfg := &Config{}
	for level, want := range map[string]string{"debug": "DEBUG", "WARNING": "WARN", "ERROR": "ERROR", "": "INFO"} {
		cfg.Log.Level = level
		assert.Equal(t, want, cfg.GetLogLevel().String())
	}
}
