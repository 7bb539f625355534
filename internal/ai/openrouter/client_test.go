package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(url, key string) *Client {
	return New(Config{APIKey: key, BaseURL: url, Model: "test-model"}, zap.NewNop())
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got completionRequest
	var headers http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, completionsPath, r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  1. What is a goroutine?  "}},
				{"message": map[string]any{"role": "assistant", "content": "ignored"}},
			},
		})
	}))
	defer server.Close()

	text, err := newTestClient(server.URL, "secret").Complete(context.Background(), "user prompt", "system prompt")
	require.NoError(t, err)
	require.Equal(t, "1. What is a goroutine?", text)

	require.Equal(t, "Bearer secret", headers.Get("Authorization"))
	require.Equal(t, appTitle, headers.Get("X-Title"))
	require.Equal(t, "test-model", got.Model)
	require.Equal(t, defaultTemperature, got.Temperature)
	require.Equal(t, defaultMaxTokens, got.MaxTokens)
	require.Equal(t, []message{
		{Role: "system", Content: "system prompt"},
		{Role: "user", Content: "user prompt"},
	}, got.Messages)
}

func TestCompleteOmitsEmptySystemMessage(t *testing.T) {
	var got completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "secret").Complete(context.Background(), "prompt", "  ")
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	require.Equal(t, "user", got.Messages[0].Role)
}

func TestCompleteWithoutKeyIsAuthError(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "  ").Complete(context.Background(), "prompt", "")
	require.True(t, ai.IsKind(err, ai.KindAuth), "got %v", err)
	require.False(t, called, "no request should be sent without credentials")
}

func TestCompleteNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "secret").Complete(context.Background(), "prompt", "")

	var providerErr *ai.Error
	require.ErrorAs(t, err, &providerErr)
	require.Equal(t, ai.KindStatus, providerErr.Kind)
	require.Equal(t, http.StatusTooManyRequests, providerErr.StatusCode)
	require.Contains(t, providerErr.Body, "rate limited")
}

func TestCompleteMalformedResponses(t *testing.T) {
	bodies := map[string]string{
		"not json":      `<html>`,
		"no choices":    `{"choices":[]}`,
		"no message":    `{"choices":[{}]}`,
		"empty content": `{"choices":[{"message":{"content":"   "}}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, "secret").Complete(context.Background(), "prompt", "")
			require.True(t, ai.IsKind(err, ai.KindMalformed), "got %v", err)
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := New(Config{APIKey: "secret", BaseURL: server.URL, Timeout: 50 * time.Millisecond}, zap.NewNop())
	_, err := client.Complete(context.Background(), "prompt", "")
	require.True(t, ai.IsKind(err, ai.KindTimeout), "got %v", err)
}

func TestCompleteTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url, "secret").Complete(context.Background(), "prompt", "")
	require.True(t, ai.IsKind(err, ai.KindTransport), "got %v", err)
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{APIKey: "k"}, nil)
	require.Equal(t, defaultModel, c.Model())
	require.Equal(t, defaultBaseURL, c.baseURL)
	require.Equal(t, ai.DefaultTimeout, c.timeout)
	require.Equal(t, providerName, c.Provider())
}
