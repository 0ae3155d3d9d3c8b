package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"word-explainer/internal/types"

	"github.com/tmc/langchaingo/llms"
)

// statusCodePattern extracts the HTTP status langchaingo embeds in its error text.
var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// LangChainAdapter implements llm.Client on top of a LangChainGo model
type LangChainAdapter struct {
	model     llms.Model
	modelName string
	opts      QueryOptions
	timeout   time.Duration
}

// NewLangChainAdapter creates a new LangChainGo adapter
func NewLangChainAdapter(model llms.Model, modelName string, opts QueryOptions) *LangChainAdapter {
	return &LangChainAdapter{
		model:     model,
		modelName: modelName,
		opts:      opts,
	}
}

// SetTimeout sets the request timeout. Zero disables it.
func (a *LangChainAdapter) SetTimeout(d time.Duration) {
	a.timeout = d
}

// Name returns the model name
func (a *LangChainAdapter) Name() string {
	return "langchain-" + a.modelName
}

// SimpleTextQuery sends a single text request and returns the text response.
func (a *LangChainAdapter) SimpleTextQuery(ctx context.Context, systemPrompt, userInput string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var messages []llms.MessageContent
	if systemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userInput))

	callOpts := []llms.CallOption{llms.WithTemperature(a.opts.Temperature)}
	if a.opts.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := a.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", a.wrapError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", types.Classify(types.KindMalformedResponse, errors.New("no langchain response choices"))
	}
	return resp.Choices[0].Content, nil
}

// wrapError tags langchaingo errors with their kind. The library flattens API
// errors into strings, so the status code is read back from the message.
func (a *LangChainAdapter) wrapError(err error) error {
	wrapped := fmt.Errorf("langchain request: %w", err)

	if kind := kindForTransport(err); kind != types.KindUnknown {
		return types.Classify(kind, wrapped)
	}
	if m := statusCodePattern.FindStringSubmatch(err.Error()); m != nil {
		if status, convErr := strconv.Atoi(m[1]); convErr == nil {
			return types.Classify(kindForStatus(status), wrapped)
		}
	}
	return types.Classify(types.KindUnknown, wrapped)
}
