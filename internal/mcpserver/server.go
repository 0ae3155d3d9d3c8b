package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"word-explainer/internal/explainer"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolName is the name the explain tool is registered under.
const ToolName = "explain_word"

// Generator produces explanations. *explainer.Explainer satisfies it.
type Generator interface {
	GenerateExplanation(ctx context.Context, word, nativeLanguage, learningStyle string) (explainer.Explanation, error)
}

// ExplainInput is the argument object of the explain_word tool.
type ExplainInput struct {
	Word           string `json:"word" jsonschema:"the vocabulary word to explain"`
	NativeLanguage string `json:"native_language,omitempty" jsonschema:"language of the definition, default English"`
	LearningStyle  string `json:"learning_style,omitempty" jsonschema:"mnemonic style such as analogy or story, default standard"`
}

// New creates an MCP server exposing the explain_word tool.
func New(gen Generator, version string) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: "word-explainer", Version: version}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolName,
		Description: "Explain a vocabulary word with a definition, a mnemonic and an example sentence.",
	}, explainTool(gen))

	return s
}

func explainTool(gen Generator) mcp.ToolHandlerFor[ExplainInput, explainer.Explanation] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExplainInput) (*mcp.CallToolResult, explainer.Explanation, error) {
		word := strings.TrimSpace(in.Word)
		if word == "" {
			return nil, explainer.Explanation{}, errors.New("word is required")
		}

		slog.Debug("tool call", "tool", ToolName, "word", word)
		exp, err := gen.GenerateExplanation(ctx, word, in.NativeLanguage, in.LearningStyle)
		if err != nil {
			// Reported to the client as a tool error result
			return nil, explainer.Explanation{}, err
		}
		return nil, exp, nil
	}
}

// ServeStdio runs s over stdin/stdout until ctx is done or the client disconnects.
// Nothing else may write to stdout while it runs.
func ServeStdio(ctx context.Context, s *mcp.Server) error {
	slog.Info("mcp server starting", "transport", "stdio")
	return s.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves s over the streamable HTTP transport.
func HTTPHandler(s *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s }, nil)
}
