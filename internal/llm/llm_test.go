package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/datagenie/datagenie/internal/config"
)

func TestGenerateOllama(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Model: gotReq.Model, Response: "[{\"$limit\": 5}]", Done: true})
	}))
	defer srv.Close()

	c := NewClient(config.LLMConfig{
		Backend:     BackendOllama,
		OllamaURL:   srv.URL,
		OllamaModel: "mistral:7b-instruct",
		Timeout:     5 * time.Second,
	})

	out, err := c.Generate(context.Background(), "limit to five")
	require.NoError(t, err)
	require.Equal(t, "[{\"$limit\": 5}]", out)
	require.Equal(t, "limit to five", gotReq.Prompt)
	require.False(t, gotReq.Stream)
}

func TestGenerateOllamaServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(config.LLMConfig{Backend: BackendOllama, OllamaURL: srv.URL, Timeout: time.Second})
	_, err := c.Generate(context.Background(), "x")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	require.Equal(t, BackendOllama, be.Backend)
}

func TestGenerateAzure(t *testing.T) {
	var sawBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sawBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[{\"$match\": {}}]"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.LLMConfig{
		Backend: BackendAzure,
		Timeout: 5 * time.Second,
		Azure: config.AzureConfig{
			Endpoint:   srv.URL,
			APIVersion: "2024-02-01",
			Model:      "gpt-4o",
			APIKey:     "test-key",
		},
	})

	out, err := c.Generate(context.Background(), "match everything")
	require.NoError(t, err)
	require.Equal(t, "[{\"$match\": {}}]", out)

	messages, ok := sawBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	require.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	require.Equal(t, "match everything", messages[1].(map[string]interface{})["content"])

	// sampling must be pinned on the wire, not left to service defaults
	temp, ok := sawBody["temperature"].(float64)
	require.True(t, ok, "temperature must be serialized")
	require.InDelta(t, 0, temp, 1e-6)
	require.Equal(t, float64(1), sawBody["top_p"])
	require.Equal(t, float64(2048), sawBody["max_tokens"])
}

func TestGenerateAzureUnconfigured(t *testing.T) {
	c := NewClient(config.LLMConfig{Backend: BackendAzure})
	_, err := c.Generate(context.Background(), "x")
	var be *BackendError
	require.ErrorAs(t, err, &be)
}

func TestGenerateOpenAIPlaceholder(t *testing.T) {
	c := NewClient(config.LLMConfig{Backend: BackendOpenAI})
	_, err := c.Generate(context.Background(), "x")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	require.Contains(t, err.Error(), "not implemented")
}

func TestGenerateUnknownBackend(t *testing.T) {
	c := NewClient(config.LLMConfig{Backend: "carrier-pigeon"})
	_, err := c.Generate(context.Background(), "x")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	require.Equal(t, "carrier-pigeon", be.Backend)
}
