package mcpserver

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"word-explainer/internal/explainer"
	"word-explainer/internal/types"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type stubGenerator struct {
	err error
}

func (g *stubGenerator) GenerateExplanation(_ context.Context, word, nativeLanguage, learningStyle string) (explainer.Explanation, error) {
	if g.err != nil {
		return explainer.Explanation{}, g.err
	}
	if nativeLanguage == "" {
		nativeLanguage = explainer.DefaultNativeLanguage
	}
	if learningStyle == "" {
		learningStyle = explainer.DefaultLearningStyle
	}
	return explainer.Explanation{
		Word:           word,
		Definition:     "D",
		Mnemonic:       "M",
		Example:        "E",
		NativeLanguage: nativeLanguage,
		LearningStyle:  learningStyle,
	}, nil
}

func connect(t *testing.T, gen Generator) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := New(gen, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestListTools(t *testing.T) {
	cs := connect(t, &stubGenerator{})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, ToolName, res.Tools[0].Name)
	assert.NotNil(t, res.Tools[0].InputSchema)
}

func TestExplainWord(t *testing.T) {
	cs := connect(t, &stubGenerator{})

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: map[string]any{"word": "ameliorate", "native_language": "Chinese"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Equal(t, "ameliorate", gjson.Get(text, "word").String())
	assert.Equal(t, "D", gjson.Get(text, "definition").String())
	assert.Equal(t, "Chinese", gjson.Get(text, "native_language").String())
	assert.Equal(t, explainer.DefaultLearningStyle, gjson.Get(text, "learning_style").String())
}

func TestExplainWord_GenerationError(t *testing.T) {
	cause := types.Classify(types.KindRateLimit, errors.New("429 slow down"))
	cs := connect(t, &stubGenerator{err: types.NewExplanationGenerationError("gale", cause)})

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: map[string]any{"word": "gale"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "error generating word explanation: 429 slow down")
}

func TestExplainWord_BlankWord(t *testing.T) {
	cs := connect(t, &stubGenerator{})

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: map[string]any{"word": "  "},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "word is required")
}

func TestHTTPHandler(t *testing.T) {
	srv := httptest.NewServer(HTTPHandler(New(&stubGenerator{}, "test")))
	defer srv.Close()

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL}, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: map[string]any{"word": "gale"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "gale", gjson.Get(resultText(t, res), "word").String())
}
