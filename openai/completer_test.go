package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model               string  `json:"model"`
	Temperature         float64 `json:"temperature"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	Messages            []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const completionResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "Key pains: export quality."}
  }]
}`

func newServer(t *testing.T, status int, body string, requests chan<- chatRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil && strings.HasSuffix(r.URL.Path, "/chat/completions") {
			data, _ := io.ReadAll(r.Body)
			var req chatRequest
			_ = json.Unmarshal(data, &req)
			requests <- req
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	requests := make(chan chatRequest, 1)
	srv := newServer(t, http.StatusOK, completionResponse, requests)
	c := openai.NewCompleter("sk-test", srv.URL+"/v1/")

	text, err := c.Complete(context.Background(),
		&insight.Prompt{System: "You are an analyst.", User: "Analyze this."},
		insight.DefaultCompletionSettings())

	require.NoError(t, err)
	assert.Equal(t, "Key pains: export quality.", text)

	req := <-requests
	assert.Equal(t, insight.DefaultModel, req.Model)
	assert.InDelta(t, insight.DefaultTemperature, req.Temperature, 1e-9)
	assert.Equal(t, insight.DefaultMaxTokens, req.MaxCompletionTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "You are an analyst.", req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "Analyze this.", req.Messages[1].Content)
}

func TestCompleter_NoChoices(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`, nil)
	c := openai.NewCompleter("sk-test", srv.URL+"/v1/")

	text, err := c.Complete(context.Background(), &insight.Prompt{User: "hi"}, insight.DefaultCompletionSettings())

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestCompleter_DoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"upstream failure","type":"server_error"}}`)
	}))
	t.Cleanup(srv.Close)
	c := openai.NewCompleter("sk-test", srv.URL+"/v1/")

	_, err := c.Complete(context.Background(), &insight.Prompt{User: "hi"}, insight.DefaultCompletionSettings())

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
