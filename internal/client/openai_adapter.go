package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"word-explainer/internal/types"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// QueryOptions are the sampling settings applied to every request an adapter sends.
type QueryOptions struct {
	Temperature float64
	JSONMode    bool // Ask the backend for a JSON object reply
}

// OpenAIAdapter implements llm.Client interface using OpenAI official client
type OpenAIAdapter struct {
	client  *openai.Client
	model   string
	opts    QueryOptions
	timeout time.Duration
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(client *openai.Client, model string, opts QueryOptions) *OpenAIAdapter {
	return &OpenAIAdapter{
		client: client,
		model:  model,
		opts:   opts,
	}
}

// SetTimeout sets the request timeout. Zero disables it.
func (a *OpenAIAdapter) SetTimeout(d time.Duration) {
	a.timeout = d
}

// Name returns the model name
func (a *OpenAIAdapter) Name() string {
	return "openai-" + a.model
}

// Ping sends a minimal request to verify connection
func (a *OpenAIAdapter) Ping(ctx context.Context) error {
	slog.Info("checking llm connection...", "backend", a.Name())
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("hello"),
		},
		MaxTokens: openai.Int(1),
	}
	_, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return fmt.Errorf("llm ping failed: %w", a.wrapError(err))
	}
	slog.Info("llm connection verified")
	return nil
}

// Chat sends a chat completion request
func (a *OpenAIAdapter) Chat(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	// Apply configured timeout if valid
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	// Use default model if not provided
	if params.Model == "" {
		params.Model = openai.ChatModel(a.model)
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, a.wrapError(err)
	}
	return resp, nil
}

// SimpleTextQuery sends a single text request and returns the text response.
func (a *OpenAIAdapter) SimpleTextQuery(ctx context.Context, systemPrompt, userInput string) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion

	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userInput))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.model),
		Messages:    messages,
		Temperature: openai.Float(a.opts.Temperature),
	}
	if a.opts.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		}
	}

	resp, err := a.Chat(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", types.Classify(types.KindMalformedResponse, errors.New("no openai response choices"))
	}

	return resp.Choices[0].Message.Content, nil
}

// wrapError tags openai errors with their kind
func (a *OpenAIAdapter) wrapError(err error) error {
	if err == nil {
		return nil
	}

	wrapped := fmt.Errorf("openai request: %w", err)

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return types.Classify(kindForStatus(apiErr.StatusCode), wrapped)
	}

	return types.Classify(kindForTransport(err), wrapped)
}
