package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verlyx/hub-server/internal/config"
	"github.com/verlyx/hub-server/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.AIConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o",
	})
}

func TestClientComplete(t *testing.T) {
	t.Run("sends model options and bearer key", func(t *testing.T) {
		var got completionRequest

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": "hello"}},
				},
			})
		})

		reply, err := client.Complete(context.Background(), []ChatMessage{
			{Role: "user", Content: "hi"},
		}, CompletionOptions{MaxTokens: 500, Temperature: 0.6, JSONResponse: true})

		require.NoError(t, err)
		assert.Equal(t, "hello", reply)
		assert.Equal(t, "gpt-4o", got.Model)
		assert.Equal(t, 500, got.MaxTokens)
		assert.InDelta(t, 0.6, got.Temperature, 1e-9)
		require.NotNil(t, got.ResponseFormat)
		assert.Equal(t, "json_object", got.ResponseFormat.Type)
	})

	t.Run("empty choices yield empty string, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		})

		reply, err := client.Complete(context.Background(), nil, CompletionOptions{})
		require.NoError(t, err)
		assert.Equal(t, "", reply)
	})

	t.Run("non 200 status is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		})

		_, err := client.Complete(context.Background(), nil, CompletionOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestSystemPrompt(t *testing.T) {
	base := SystemPrompt(models.ContextGeneral)
	project := SystemPrompt(models.ContextProject)
	task := SystemPrompt(models.ContextTask)

	assert.NotContains(t, base, "CONTEXT:")
	assert.Contains(t, project, "specific project")
	assert.Contains(t, task, "specific task")

	// both context prompts extend the base, they never replace it
	assert.Contains(t, project, base)
	assert.Contains(t, task, base)

	// unknown context types fall back to the base prompt
	assert.Equal(t, base, SystemPrompt(models.ContextType("weird")))
}
