package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

func TestNewLLMService_MissingKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestNewLLMService_Defaults(t *testing.T) {
	s, err := NewLLMService(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", s.ModelName())
	assert.Equal(t, "https://openrouter.ai/api/v1", s.baseURL)
	assert.Equal(t, 1000, s.maxTokens)
	assert.InDelta(t, 0.7, s.temperature, 1e-9)
}

func TestComplete_RequestContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "RAG Chatbot", r.Header.Get("X-Title"))
		assert.NotEmpty(t, r.Header.Get("HTTP-Referer"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "google/gemini-pro", req.Model)
		assert.Equal(t, []chatMessage{{Role: "user", Content: "hello?"}}, req.Messages)
		assert.Equal(t, 1000, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi there"}}]}`))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "or-key", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := s.Complete(context.Background(), "hello?", driven.CompleteOptions{Model: "google/gemini-pro"})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", got)
}

func TestComplete_ZeroTemperature(t *testing.T) {
	var got []float64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = append(got, req.Temperature)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	zero, warm := 0.0, 0.9
	s, err := NewLLMService(Config{APIKey: "key", BaseURL: server.URL, Temperature: &zero})
	require.NoError(t, err)
	assert.Zero(t, s.temperature)

	_, err = s.Complete(context.Background(), "q", driven.CompleteOptions{})
	require.NoError(t, err)
	_, err = s.Complete(context.Background(), "q", driven.CompleteOptions{Temperature: &warm})
	require.NoError(t, err)
	_, err = s.Complete(context.Background(), "q", driven.CompleteOptions{Temperature: &zero})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.9, 0}, got)
}

func TestComplete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"insufficient credits"}}`))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Complete(context.Background(), "q", driven.CompleteOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter error (status 402)")
	assert.Contains(t, err.Error(), "insufficient credits")
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	s, err := NewLLMService(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Complete(context.Background(), "q", driven.CompleteOptions{})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	good, err := NewLLMService(Config{APIKey: "good", BaseURL: server.URL})
	require.NoError(t, err)
	assert.NoError(t, good.Ping(context.Background()))

	bad, err := NewLLMService(Config{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)
	assert.Error(t, bad.Ping(context.Background()))
}
