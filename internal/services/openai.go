package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ameer-511/ai-cv-analysis/internal/config"
)

const (
	defaultModel   = "gpt-3.5-turbo"
	defaultAPIURL  = "https://api.openai.com/v1/chat/completions"
	defaultTimeout = 30 * time.Second
	maxTokens      = 800
)

// CompletionOptions carries per-call overrides. Zero values mean "use the
// configured or default value".
type CompletionOptions struct {
	Model   string
	Timeout time.Duration
}

// ModelClient sends a prompt to an OpenAI-compatible chat-completions
// endpoint and returns the raw assistant reply text. It performs no retries;
// retry policy belongs to the caller.
type ModelClient interface {
	Complete(ctx context.Context, prompt Prompt, opts *CompletionOptions) (string, error)
}

type openAIClient struct {
	cfg        config.OpenAIConfig
	httpClient *http.Client
}

func NewOpenAIClient(cfg config.OpenAIConfig) ModelClient {
	// Timeout is applied per call via context so overrides can shorten or
	// extend it.
	return &openAIClient{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatResponse models the chat-completions reply, including the older
// completions shape where the text sits directly on the choice.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete implements ModelClient.
func (c *openAIClient) Complete(ctx context.Context, prompt Prompt, opts *CompletionOptions) (string, error) {
	if opts == nil {
		opts = &CompletionOptions{}
	}

	apiKey := c.cfg.APIKey
	if apiKey == "" {
		return "", &ConfigurationError{Setting: "OPENAI_API_KEY"}
	}

	model := config.FirstNonEmpty(opts.Model, c.cfg.Model, defaultModel)
	apiURL := config.FirstNonEmpty(c.cfg.APIURL, defaultAPIURL)
	timeout := config.FirstPositive(opts.Timeout, c.cfg.Timeout, defaultTimeout)

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: 0.0,
		MaxTokens:   maxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &MalformedResponseError{Reason: "invalid JSON body", Body: string(respBody)}
	}

	if len(parsed.Choices) == 0 {
		return "", &MalformedResponseError{Reason: "no choices in response", Body: string(respBody)}
	}

	if content := parsed.Choices[0].Message.Content; content != "" {
		return content, nil
	}
	// Older completions shape
	if text := parsed.Choices[0].Text; text != "" {
		return text, nil
	}

	return "", &MalformedResponseError{Reason: "no assistant message content", Body: string(respBody)}
}
