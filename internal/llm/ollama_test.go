package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsynth/symgen/internal/llm"
)

func TestOllamaComplete_ContinuationContract(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"response": " Doc, my chest has been hurting for weeks.",
			"done":     true,
		})
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(llm.OllamaConfig{BaseURL: srv.URL, Model: "test-model"})

	prompt := "You are a sick patient."
	got, err := client.Complete(context.Background(), prompt, llm.Options{})
	require.NoError(t, err)

	// Output must be a causal continuation: prompt prefix, then reply.
	assert.Equal(t, prompt+" Doc, my chest has been hurting for weeks.", got)

	// Default decoding options are forwarded as Ollama runner options.
	opts, ok := gotBody["options"].(map[string]interface{})
	require.True(t, ok, "request must carry an options object")
	assert.EqualValues(t, 500, opts["num_predict"])
	assert.EqualValues(t, 0.6, opts["temperature"])
	assert.EqualValues(t, 0.9, opts["top_p"])
	assert.EqualValues(t, 1.2, opts["repeat_penalty"])
	assert.Equal(t, false, gotBody["stream"])
}

func TestOllamaComplete_CallerOverridesOptions(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"response": "ok", "done": true})
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(llm.OllamaConfig{BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), "p", llm.Options{MaxLength: 64, Temperature: 1.1})
	require.NoError(t, err)

	opts := gotBody["options"].(map[string]interface{})
	assert.EqualValues(t, 64, opts["num_predict"])
	assert.EqualValues(t, 1.1, opts["temperature"])
	// Unset fields fall back to defaults
	assert.EqualValues(t, 0.9, opts["top_p"])
}

func TestOllamaComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(llm.OllamaConfig{BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), "p", llm.Options{})
	assert.Error(t, err)
}

func TestOllamaComplete_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(llm.OllamaConfig{BaseURL: srv.URL})

	// Default breaker trips after 3 consecutive failures.
	for i := 0; i < 3; i++ {
		_, err := client.Complete(context.Background(), "p", llm.Options{})
		require.Error(t, err)
	}

	_, err := client.Complete(context.Background(), "p", llm.Options{})
	assert.ErrorIs(t, err, llm.ErrCircuitOpen)
}

func TestOllamaEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embed", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(llm.OllamaConfig{BaseURL: srv.URL, Model: "nomic-embed-text"})
	vec, err := client.Embed(context.Background(), "I feel pain in my neck")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestOllamaEmbed_EmptyVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"embeddings": [][]float32{}})
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(llm.OllamaConfig{BaseURL: srv.URL})
	_, err := client.Embed(context.Background(), "text")
	assert.Error(t, err)
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := llm.Options{}.WithDefaults()
	assert.Equal(t, llm.DefaultOptions(), opts)

	partial := llm.Options{MaxLength: 100}.WithDefaults()
	assert.Equal(t, 100, partial.MaxLength)
	assert.Equal(t, 0.6, partial.Temperature)
	assert.Equal(t, 0.9, partial.TopP)
	assert.Equal(t, 1.2, partial.RepetitionPenalty)
}
