package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClient_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns extracted DSL and metadata", func(t *testing.T) {
		var gotPath string
		var gotBody anthropicRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content": []map[string]string{
					{"type": "text", "text": "```\n(layer \"WALLS\")\n(line 0 0 100 0)\n```"},
				},
				"stop_reason": "end_turn",
				"usage":       map[string]int{"input_tokens": 120, "output_tokens": 30},
			})
		}))
		defer server.Close()

		client := NewAnthropicClient(AnthropicOptions{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})

		res, err := client.Generate(context.Background(), &Request{
			Requirement: "a wall",
			Settings:    Settings{Units: "mm", Scale: 100},
		})

		require.NoError(t, err)
		assert.Equal(t, "/v1/messages", gotPath)
		assert.Equal(t, "test-model", gotBody.Model)
		require.Len(t, gotBody.Messages, 1)
		assert.Contains(t, gotBody.Messages[0].Content, "a wall")
		assert.NotEmpty(t, gotBody.System)

		assert.True(t, res.Success)
		assert.Equal(t, "(layer \"WALLS\")\n(line 0 0 100 0)", res.Code)
		assert.Greater(t, res.Metadata.PromptLength, 0)
		assert.Greater(t, res.Metadata.ResponseLength, 0)
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
			})
		}))
		defer server.Close()

		client := NewAnthropicClient(AnthropicOptions{BaseURL: server.URL, APIKey: "bad"})

		_, err := client.Generate(context.Background(), &Request{Requirement: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "generation:")
		assert.Contains(t, err.Error(), "invalid x-api-key")
	})

	t.Run("marks chatter-only responses as unsuccessful", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content":     []map[string]string{{"type": "text", "text": "Sorry, I cannot draw that."}},
				"stop_reason": "end_turn",
			})
		}))
		defer server.Close()

		client := NewAnthropicClient(AnthropicOptions{BaseURL: server.URL, APIKey: "k"})

		res, err := client.Generate(context.Background(), &Request{Requirement: "x"})

		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "no DSL statements")
	})
}
