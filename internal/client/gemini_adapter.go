package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"word-explainer/internal/types"

	"google.golang.org/genai"
)

// GeminiAdapter implements llm.Client using the Google GenAI SDK
type GeminiAdapter struct {
	client  *genai.Client
	model   string
	opts    QueryOptions
	timeout time.Duration
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client *genai.Client, model string, opts QueryOptions) *GeminiAdapter {
	return &GeminiAdapter{
		client: client,
		model:  model,
		opts:   opts,
	}
}

// SetTimeout sets the request timeout. Zero disables it.
func (a *GeminiAdapter) SetTimeout(d time.Duration) {
	a.timeout = d
}

// Name returns the model name
func (a *GeminiAdapter) Name() string {
	return "gemini-" + a.model
}

// SimpleTextQuery sends a single text request and returns the text response.
func (a *GeminiAdapter) SimpleTextQuery(ctx context.Context, systemPrompt, userInput string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(a.opts.Temperature)),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	if a.opts.JSONMode {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(userInput), cfg)
	if err != nil {
		return "", a.wrapError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", types.Classify(types.KindMalformedResponse, errors.New("no gemini response candidates"))
	}
	return resp.Text(), nil
}

// wrapError tags genai errors with their kind
func (a *GeminiAdapter) wrapError(err error) error {
	wrapped := fmt.Errorf("gemini request: %w", err)

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return types.Classify(kindForStatus(apiErr.Code), wrapped)
	}

	return types.Classify(kindForTransport(err), wrapped)
}
