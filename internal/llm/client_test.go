package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func TestOllamaClient_Chat_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-guard3:8b", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 0.0, req.Options.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleUser, req.Messages[0].Role)
		assert.Equal(t, "hello", req.Messages[0].Content)
		assert.Equal(t, RoleAssistant, req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"llama-guard3:8b","message":{"role":"assistant","content":"  safe\n"}}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	text, err := client.Chat(context.Background(), []Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi"},
	}, ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "safe", text)
}

func TestOllamaClient_Chat_RequestBodyShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["stream"])
		assert.Equal(t, map[string]any{"temperature": 0.0}, body["options"])
		w.Write([]byte(`{"message":{"content":"safe"}}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), nil)
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})
	require.NoError(t, err)
}

func TestOllamaClient_Chat_OverridesModelAndEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "custom-guard", req.Model)
		w.Write([]byte(`{"message":{"content":"unsafe\nS1"}}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	text, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{
		Model:    "custom-guard",
		Endpoint: srv.URL + "/",
	})

	require.NoError(t, err)
	assert.Equal(t, "unsafe\nS1", text)
}

func TestOllamaClient_Chat_FallsBackToChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"unsafe\nS12"}}]}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	text, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "unsafe\nS12", text)
}

func TestOllamaClient_Chat_EmptyPrimaryUsesChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"content":""},"choices":[{"message":{"content":"safe"}}]}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	text, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "safe", text)
}

func TestOllamaClient_Chat_NoKnownFieldReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"done":true}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	text, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestOllamaClient_Chat_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`model "llama-guard3:8b" not found`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendStatus)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "not found")
}

func TestOllamaClient_Chat_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestOllamaClient_Chat_Unavailable(t *testing.T) {
	client := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	assert.ErrorIs(t, err, ErrOllamaUnavailable)
}

func TestOllamaClient_Chat_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"message":{"content":"safe"}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Chat(ctx, []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Available_True(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background(), ""))
}

func TestOllamaClient_Available_False(t *testing.T) {
	client := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, client.Available(context.Background(), ""))
}

func TestOllamaClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"content":"safe"}}`))
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	client := NewOllamaClient(testConfig(srv.URL), obs)
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "llama-guard3:8b", captured.Model)
	assert.Equal(t, srv.URL, captured.Endpoint)
	assert.True(t, captured.Success)
	assert.GreaterOrEqual(t, captured.LatencyMs, int64(0))
}

func TestOllamaClient_ObserverStatusErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	client := NewOllamaClient(testConfig(srv.URL), obs)
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, ChatOptions{})

	require.Error(t, err)
	assert.False(t, captured.Success)
	assert.Equal(t, "STATUS", captured.ErrorCode)
	assert.Equal(t, http.StatusInternalServerError, captured.StatusCode)
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) OnCallComplete(e CallEvent) { o.fn(e) }
