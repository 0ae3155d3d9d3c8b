package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"word-explainer/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGeminiAdapter(t *testing.T, handler http.HandlerFunc) *GeminiAdapter {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: ts.URL},
	})
	require.NoError(t, err)
	return NewGeminiAdapter(gc, "gemini-2.0-flash", QueryOptions{Temperature: 0.7})
}

func TestGeminiAdapter_SimpleTextQuery(t *testing.T) {
	var reqBody map[string]any
	adapter := newTestGeminiAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": "Definition: D\nExample: E"}},
					},
					"finishReason": "STOP",
				},
			},
		})
	})

	got, err := adapter.SimpleTextQuery(context.Background(), "system text", "user text")
	require.NoError(t, err)
	assert.Equal(t, "Definition: D\nExample: E", got)
	assert.Equal(t, "gemini-gemini-2.0-flash", adapter.Name())

	genCfg, ok := reqBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.7, genCfg["temperature"], 1e-6)
	assert.Contains(t, reqBody, "systemInstruction")
}

func TestGeminiAdapter_RateLimited(t *testing.T) {
	adapter := newTestGeminiAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := adapter.SimpleTextQuery(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Equal(t, types.KindRateLimit, types.KindOf(err))
	assert.Contains(t, err.Error(), "quota exceeded")
}
