package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport records outbound calls without touching the network
type countingTransport struct {
	calls int32
	resp  func(*http.Request) *http.Response
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.resp(r), nil
}

func TestNewLLMClient(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		client := NewLLMClient(LLMConfig{APIKey: " key "})

		assert.True(t, client.HasCredential())
		assert.Equal(t, defaultModel, client.Model())
		assert.Equal(t, defaultAPIURL, client.apiURL)
		assert.Equal(t, "key", client.apiKey)
		assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
	})

	t.Run("should treat blank key as missing", func(t *testing.T) {
		client := NewLLMClient(LLMConfig{APIKey: "   "})
		assert.False(t, client.HasCredential())
	})
}

func TestLLMClient_CreateChatCompletion(t *testing.T) {
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":"[]"}}]}`)
	}))
	defer ts.Close()

	client := NewLLMClient(LLMConfig{APIKey: "secret", APIURL: ts.URL, Model: "google/gemini-2.5-flash"})
	resp, err := client.CreateChatCompletion(context.Background(), ChatRequest{
		Messages:    BuildSuggestionMessages("rice"),
		Temperature: 0.8,
	})
	require.NoError(t, err)

	content, ok := resp.FirstContent()
	assert.True(t, ok)
	assert.Equal(t, "[]", content)

	assert.Equal(t, "google/gemini-2.5-flash", gotBody["model"])
	assert.Equal(t, 0.8, gotBody["temperature"])
	messages, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestLLMClient_MissingKeyMakesNoCall(t *testing.T) {
	transport := &countingTransport{resp: func(r *http.Request) *http.Response {
		return &http.Response{StatusCode: http.StatusOK, Header: make(http.Header), Body: io.NopCloser(strings.NewReader(`{}`))}
	}}
	client := NewLLMClient(LLMConfig{HTTPClient: &http.Client{Transport: transport}})

	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, int32(0), atomic.LoadInt32(&transport.calls))

	// Same guarantee through the service
	svc := NewSuggestionService(client)
	_, err = svc.Suggest(context.Background(), "roti, dal, onion")
	assert.True(t, IsKind(err, KindConfiguration))
	assert.Equal(t, int32(0), atomic.LoadInt32(&transport.calls))
}

func TestLLMClient_APIError(t *testing.T) {
	transport := &countingTransport{resp: func(r *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", maxErrorBody*2))),
		}
	}}
	client := NewLLMClient(LLMConfig{APIKey: "k", HTTPClient: &http.Client{Transport: transport}})

	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Len(t, apiErr.Body, maxErrorBody)
	assert.Equal(t, int32(1), atomic.LoadInt32(&transport.calls))
}

func TestLLMClient_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>gateway</html>`)
	}))
	defer ts.Close()

	client := NewLLMClient(LLMConfig{APIKey: "k", APIURL: ts.URL})
	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")

	svc := NewSuggestionService(client)
	_, err = svc.Suggest(context.Background(), "rice")
	assert.True(t, IsKind(err, KindUpstream))
}

func TestLLMClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	client := NewLLMClient(LLMConfig{APIKey: "k", APIURL: ts.URL, Timeout: 50 * time.Millisecond})
	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}
