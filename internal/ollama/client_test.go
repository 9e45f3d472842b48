package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cacheSize int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL, Model: "test-model", CacheSize: cacheSize})
	// Keep tests fast: a single attempt, no backoff.
	c.retry = RetryConfig{MaxRetries: 1}
	return c
}

func TestChat_ReturnsMessageContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": "  risposta  "},
		})
	}, 0)

	out, err := client.Chat(context.Background(), "prompt", Options{Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "risposta", out)
}

func TestChat_EmptyPrompt(t *testing.T) {
	client := New(Config{})
	_, err := client.Chat(context.Background(), "", Options{})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGenerate_ReturnsResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "OK"})
	}, 0)

	out, err := client.Generate(context.Background(), "prompt", Options{Temperature: 0.1})
	require.NoError(t, err)
	assert.Equal(t, "OK", out)
}

func TestGenerate_CachesLowTemperatureResponses(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "cached"})
	}, 16)

	for i := 0; i < 3; i++ {
		out, err := client.Generate(context.Background(), "same prompt", Options{Temperature: 0.1})
		require.NoError(t, err)
		assert.Equal(t, "cached", out)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_HighTemperatureNotCached(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "fresh"})
	}, 16)

	for i := 0; i < 2; i++ {
		_, err := client.Generate(context.Background(), "same prompt", Options{Temperature: 0.7})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerate_ServerErrorWrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}, 0)

	_, err := client.Generate(context.Background(), "prompt", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "   "})
	}, 0)

	_, err := client.Generate(context.Background(), "prompt", Options{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestModels_ListsNames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "llama3.2"}, {"name": "mistral"}},
		})
	}, 0)

	names, err := client.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2", "mistral"}, names)
}

func TestModels_Unreachable(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := client.Models(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOptions_WireOmitsZeroValues(t *testing.T) {
	assert.Nil(t, Options{}.wire())

	wire := Options{Temperature: 0.7, TopP: 0.9, TopK: 40, NumPredict: 500}.wire()
	assert.Len(t, wire, 4)
	assert.Equal(t, 0.7, wire["temperature"])
}
