package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameer-511/ai-cv-analysis/internal/config"
)

func testPrompt() Prompt {
	return Prompt{
		System: "You are a helpful assistant that analyzes resumes and returns a strict JSON object.",
		User:   "Analyze this CV.",
	}
}

func chatSuccessBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify auth headers
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// Verify request body shape
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		require.NoError(t, err)
		assert.Equal(t, "gpt-3.5-turbo", reqBody["model"])
		assert.Equal(t, 0.0, reqBody["temperature"])
		assert.Equal(t, float64(800), reqBody["max_tokens"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)
		system := messages[0].(map[string]interface{})
		user := messages[1].(map[string]interface{})
		assert.Equal(t, "system", system["role"])
		assert.Equal(t, "user", user["role"])
		assert.Equal(t, "Analyze this CV.", user["content"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(chatSuccessBody(`{"skills": ["Go"]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	reply, err := client.Complete(context.Background(), testPrompt(), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"skills": ["Go"]}`, reply)
}

func TestOpenAIClient_Complete_ModelOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&reqBody)
		assert.Equal(t, "gpt-4o-mini", reqBody["model"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(chatSuccessBody("ok"))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		Model:  "gpt-4",
		APIURL: server.URL,
	})

	// Per-call override wins over the configured model
	reply, err := client.Complete(context.Background(), testPrompt(), &CompletionOptions{Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestOpenAIClient_Complete_MissingAPIKey(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIURL: server.URL,
	})

	_, err := client.Complete(context.Background(), testPrompt(), nil)

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "OPENAI_API_KEY", confErr.Setting)
	// The check happens before any network call
	assert.Equal(t, int32(0), calls.Load())
}

func TestOpenAIClient_Complete_Upstream500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	_, err := client.Complete(context.Background(), testPrompt(), nil)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Contains(t, upErr.Body, "boom")
}

func TestOpenAIClient_Complete_Upstream429(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	_, err := client.Complete(context.Background(), testPrompt(), nil)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.StatusCode)
}

func TestOpenAIClient_Complete_BodyNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	_, err := client.Complete(context.Background(), testPrompt(), nil)

	var malErr *MalformedResponseError
	require.ErrorAs(t, err, &malErr)
}

func TestOpenAIClient_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	_, err := client.Complete(context.Background(), testPrompt(), nil)

	var malErr *MalformedResponseError
	require.ErrorAs(t, err, &malErr)
}

func TestOpenAIClient_Complete_LegacyTextShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": [{"text": "legacy reply"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	reply, err := client.Complete(context.Background(), testPrompt(), nil)
	require.NoError(t, err)
	assert.Equal(t, "legacy reply", reply)
}

func TestOpenAIClient_Complete_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	_, err := client.Complete(context.Background(), testPrompt(), &CompletionOptions{Timeout: 50 * time.Millisecond})

	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
}

func TestOpenAIClient_Complete_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewOpenAIClient(config.OpenAIConfig{
		APIKey: "test-key",
		APIURL: server.URL,
	})

	_, err := client.Complete(context.Background(), testPrompt(), nil)

	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
}
