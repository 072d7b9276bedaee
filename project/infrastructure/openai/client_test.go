package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatgpt-slack-bot/project/domain"
)

func newCompletionServer(t *testing.T, status int, body string, got *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestCreateCompletion(t *testing.T) {
	var got map[string]any
	srv := newCompletionServer(t, http.StatusOK,
		`{"id":"cmpl-1","object":"text_completion","choices":[{"text":"hi there","index":0},{"text":"second","index":1}]}`, &got)
	defer srv.Close()

	cc := NewCompletionClient("sk-test", srv.URL+"/v1", "")
	text, err := cc.CreateCompletion(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)

	assert.Equal(t, DefaultModel, got["model"])
	assert.Equal(t, "hello", got["prompt"])
	assert.InDelta(t, 0.5, got["temperature"], 1e-6)
	assert.EqualValues(t, 2048, got["max_tokens"])
}

func TestCreateCompletion_NoChoices(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, `{"id":"cmpl-2","choices":[]}`, nil)
	defer srv.Close()

	cc := NewCompletionClient("sk-test", srv.URL+"/v1", "")
	_, err := cc.CreateCompletion(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestCreateCompletion_APIError(t *testing.T) {
	srv := newCompletionServer(t, http.StatusInternalServerError,
		`{"error":{"message":"server exploded","type":"server_error"}}`, nil)
	defer srv.Close()

	cc := NewCompletionClient("sk-test", srv.URL+"/v1", "")
	_, err := cc.CreateCompletion(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server exploded")
}
