package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"word-explainer/internal/types"
)

// Default configuration values
const (
	DefaultMaxBodySize int64 = 64 * 1024 // 64KB
	DefaultConfigPath        = "config.yaml"
	DefaultEnvFile           = ".env"
)

// PromptsConfig holds configuration for prompt loading
type PromptsConfig struct {
	Dir string `yaml:"dir"` // Optional directory with prompt template overrides
}

// LLMConfig holds configuration for the completion backend
type LLMConfig struct {
	Backend        string        `yaml:"backend"`         // openai, langchain, gemini (default: openai)
	Model          string        `yaml:"model"`           // Defaults per backend
	Endpoint       string        `yaml:"endpoint"`        // Empty means the SDK default
	APIKey         string        `yaml:"api_key"`         // From YAML or Env
	Timeout        time.Duration `yaml:"timeout"`         // 0 means no timeout
	MaxRetries     uint          `yaml:"max_retries"`     // 0 means a single attempt
	RetryBackoff   time.Duration `yaml:"retry_backoff"`   // Base delay between retries
	ResponseFormat string        `yaml:"response_format"` // text, json (default: text)
}

// Config holds the configuration for the word explainer
type Config struct {
	Log struct {
		Level    string `yaml:"level"`  // DEBUG, INFO, WARN, ERROR
		Format   string `yaml:"format"` // text, json
		Output   string `yaml:"output"` // stdout, stderr, /path/to/file
		Rotation struct {
			MaxSize    int  `yaml:"max_size"`    // Megabytes
			MaxBackups int  `yaml:"max_backups"` // Number of old files to keep
			MaxAge     int  `yaml:"max_age"`     // Days to keep
			Compress   bool `yaml:"compress"`
		} `yaml:"rotation"`
	} `yaml:"log"`

	Server struct {
		Port         int           `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		MaxBodySize  int64         `yaml:"max_body_size"`
	} `yaml:"server"`

	LLM LLMConfig `yaml:"llm"`

	Prompts PromptsConfig `yaml:"prompts"`
}

// GetLogLevel returns the slog.Level based on Log.Level string
func (c *Config) GetLogLevel() slog.Level {
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig loads configuration from a YAML file and supplements it with
// environment variables. Variables from envFile are loaded into the process
// environment first without overriding ones that are already set. Empty paths
// fall back to CONFIG_PATH / ENV_FILE and then to the defaults; missing files
// are not an error.
func LoadConfig(configPath, envFile string) (*Config, error) {
	return LoadConfigWithOverrides(configPath, envFile, Overrides{})
}

// Overrides are values supplied on the command line. Non-empty fields win
// over the file and the environment.
type Overrides struct {
	Backend string
	Model   string
	APIKey  string
}

// LoadConfigWithOverrides is LoadConfig with command line overrides applied
// before the per-backend defaults and API key lookup.
func LoadConfigWithOverrides(configPath, envFile string, ov Overrides) (*Config, error) {
	if envFile == "" {
		envFile = getEnv("ENV_FILE", DefaultEnvFile)
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
		slog.Debug("env file not found", "path", envFile)
	}

	cfg := &Config{}

	// Set some defaults before loading
	cfg.Log.Level = "INFO"
	cfg.Log.Format = "text"
	cfg.Log.Output = "stderr"
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 60 * time.Second
	cfg.Server.MaxBodySize = DefaultMaxBodySize
	cfg.LLM.Backend = BackendOpenAI
	cfg.LLM.RetryBackoff = 1 * time.Second
	cfg.LLM.ResponseFormat = ResponseFormatText

	// Log Rotation defaults
	cfg.Log.Rotation.MaxSize = 100
	cfg.Log.Rotation.MaxBackups = 10
	cfg.Log.Rotation.MaxAge = 7
	cfg.Log.Rotation.Compress = true

	if configPath == "" {
		configPath = getEnv("CONFIG_PATH", DefaultConfigPath)
	}
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config %s: %w", configPath, err)
		}
		slog.Debug("config loaded", "path", configPath)
	} else {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
		slog.Debug("config not found, using defaults", "path", configPath)
	}

	// Environment variables override the file
	if v := os.Getenv("LLM_BACKEND"); v != "" {
		cfg.LLM.Backend = v
	}
	if ov.Backend != "" {
		cfg.LLM.Backend = ov.Backend
	}
	cfg.LLM.Backend = strings.ToLower(strings.TrimSpace(cfg.LLM.Backend))
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	if ov.Model != "" {
		cfg.LLM.Model = ov.Model
	}
	cfg.LLM.Endpoint = getEnv("LLM_ENDPOINT", cfg.LLM.Endpoint)
	for _, key := range apiKeyEnvVars[cfg.LLM.Backend] {
		if v := os.Getenv(key); v != "" {
			cfg.LLM.APIKey = v
			break
		}
	}

	cfg.LLM.APIKey = ResolveAPIKey(strings.TrimSpace(ov.APIKey), cfg.LLM.APIKey)

	if envPort := getEnvInt("PORT", 0); envPort != 0 {
		cfg.Server.Port = envPort
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.Log.Level = envLogLevel
	}
	if envLogFormat := os.Getenv("LOG_FORMAT"); envLogFormat != "" {
		cfg.Log.Format = envLogFormat
	}
	if envLogOutput := getEnv("LOG_OUTPUT", ""); envLogOutput != "" {
		cfg.Log.Output = envLogOutput
	}
	if envLogMaxSize := getEnvInt("LOG_MAX_SIZE", 0); envLogMaxSize != 0 {
		cfg.Log.Rotation.MaxSize = envLogMaxSize
	}
	if envLogMaxBackups := getEnvInt("LOG_MAX_BACKUPS", 0); envLogMaxBackups != 0 {
		cfg.Log.Rotation.MaxBackups = envLogMaxBackups
	}
	if envLogMaxAge := getEnvInt("LOG_MAX_AGE", 0); envLogMaxAge != 0 {
		cfg.Log.Rotation.MaxAge = envLogMaxAge
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel(cfg.LLM.Backend)
	}

	return cfg, nil
}

// ResolveAPIKey returns the explicit key when given, otherwise the configured one.
func ResolveAPIKey(explicit, configured string) string {
	if explicit != "" {
		return explicit
	}
	return configured
}

// Validate validates the configuration. The API key is checked when the
// completion client is constructed, since it may still be supplied explicitly.
func (c *Config) Validate() error {
	var errs []string

	switch c.LLM.Backend {
	case BackendOpenAI, BackendLangChain, BackendGemini:
	default:
		errs = append(errs, fmt.Sprintf("unknown llm backend: %q", c.LLM.Backend))
	}

	switch c.LLM.ResponseFormat {
	case ResponseFormatText, ResponseFormatJSON:
	default:
		errs = append(errs, fmt.Sprintf("unknown response format: %q", c.LLM.ResponseFormat))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	if c.LLM.Timeout < 0 {
		errs = append(errs, "llm timeout must not be negative")
	}

	if len(errs) > 0 {
		return &types.ConfigurationError{Reason: strings.Join(errs, "; ")}
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
