package client

import (
	"context"
	"fmt"

	"word-explainer/internal/config"
	"word-explainer/internal/llm"
	"word-explainer/internal/types"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/genai"
)

// NewLLM creates the completion client selected by cfg.LLM.Backend.
// The API key must already be resolved into cfg.LLM.APIKey; without one a
// *types.ConfigurationError is returned and no client is built.
// The returned client is safe for concurrent use as long as cfg is not modified afterwards.
func NewLLM(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, &types.ConfigurationError{
			Field:  "llm.api_key",
			Reason: "API key not found; set LLM_API_KEY or the backend key variable in the environment or .env file, or pass it directly",
		}
	}

	model := cfg.LLM.Model
	if model == "" {
		model = config.DefaultModel(cfg.LLM.Backend)
	}
	opts := QueryOptions{
		Temperature: config.DefaultTemperature,
		JSONMode:    cfg.LLM.ResponseFormat == config.ResponseFormatJSON,
	}

	switch cfg.LLM.Backend {
	case config.BackendOpenAI, "":
		reqOpts := []option.RequestOption{
			option.WithAPIKey(cfg.LLM.APIKey),
			// Retries are decided by the explainer from the error kind
			option.WithMaxRetries(0),
		}
		if cfg.LLM.Endpoint != "" {
			reqOpts = append(reqOpts, option.WithBaseURL(cfg.LLM.Endpoint))
		}
		client := openai.NewClient(reqOpts...)
		adapter := NewOpenAIAdapter(&client, model, opts)
		adapter.SetTimeout(cfg.LLM.Timeout)
		return adapter, nil

	case config.BackendLangChain:
		lcOpts := []lcopenai.Option{
			lcopenai.WithToken(cfg.LLM.APIKey),
			lcopenai.WithModel(model),
		}
		if cfg.LLM.Endpoint != "" {
			lcOpts = append(lcOpts, lcopenai.WithBaseURL(cfg.LLM.Endpoint))
		}
		lc, err := lcopenai.New(lcOpts...)
		if err != nil {
			return nil, fmt.Errorf("create langchain llm: %w", err)
		}
		adapter := NewLangChainAdapter(lc, model, opts)
		adapter.SetTimeout(cfg.LLM.Timeout)
		return adapter, nil

	case config.BackendGemini:
		clientCfg := &genai.ClientConfig{
			APIKey:  cfg.LLM.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if cfg.LLM.Endpoint != "" {
			clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.LLM.Endpoint}
		}
		gc, err := genai.NewClient(ctx, clientCfg)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		adapter := NewGeminiAdapter(gc, model, opts)
		adapter.SetTimeout(cfg.LLM.Timeout)
		return adapter, nil

	default:
		return nil, &types.ConfigurationError{
			Field:  "llm.backend",
			Reason: fmt.Sprintf("unknown backend %q", cfg.LLM.Backend),
		}
	}
}
