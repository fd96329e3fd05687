package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIURL  = "https://ai.gateway.lovable.dev/v1/chat/completions"
	defaultModel   = "google/gemini-2.5-flash"
	defaultTimeout = 60 * time.Second

	// upstream error bodies are only logged; keep them bounded
	maxErrorBody = 4 << 10
)

// ErrMissingAPIKey is returned before any network call when no credential is set
var ErrMissingAPIKey = errors.New("AI gateway API key is not configured")

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat-completion API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Choice is one generated alternative in a chat-completion response
type Choice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// ChatResponse is the subset of the chat-completion response we read
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// FirstContent returns the text of the first choice, if there is any
func (r *ChatResponse) FirstContent() (string, bool) {
	if r == nil || len(r.Choices) == 0 {
		return "", false
	}
	content := r.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", false
	}
	return content, true
}

// APIError is a non-success HTTP answer from the chat-completion API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// LLMConfig configures LLMClient
type LLMConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set
	HTTPClient *http.Client
}

// LLMClient talks to an OpenAI-compatible chat-completion endpoint
type LLMClient struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewLLMClient creates a new LLMClient instance
func NewLLMClient(cfg LLMConfig) *LLMClient {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &LLMClient{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		httpClient: httpClient,
	}
}

// HasCredential reports whether an API key is configured
func (c *LLMClient) HasCredential() bool {
	return c.apiKey != ""
}

// Model returns the default model identifier
func (c *LLMClient) Model() string {
	return c.model
}

// CreateChatCompletion sends one chat-completion request. It never retries.
func (c *LLMClient) CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.HasCredential() {
		return nil, ErrMissingAPIKey
	}
	if req.Model == "" {
		req.Model = c.model
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
