package llm

import "context"

// Client is a single-shot text completion backend.
// Implementations hold only immutable configuration and are safe for concurrent use.
type Client interface {
	// SimpleTextQuery sends one system + user message pair and returns the
	// text of the first generated reply.
	SimpleTextQuery(ctx context.Context, systemPrompt, userInput string) (string, error)
	// Name identifies the backend and model, e.g. "openai-gpt-4".
	Name() string
}
