// Package clients contains HTTP clients for external collaborators.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/coinpulse/coinpulse/internal/domain"
	"github.com/coinpulse/coinpulse/internal/services/promptbuilder"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// LLMClient defines the interface for the advisory text generator.
type LLMClient interface {
	// GetInsight sends the advisory context to the LLM and returns the
	// generated commentary.
	GetInsight(ctx context.Context, advisory promptbuilder.AdvisoryContext) (string, error)
}

// OpenAICompatibleClient talks to any OpenAI-compatible chat completion API.
type OpenAICompatibleClient struct {
	apiURL        string
	apiKey        string
	model         string
	httpClient    *http.Client
	promptBuilder *promptbuilder.PromptBuilder
	maxRetries    int
	retryDelay    time.Duration
}

// NewOpenAICompatibleClient creates a new client for OpenAI-compatible APIs.
func NewOpenAICompatibleClient(apiURL, apiKey, model string, pb *promptbuilder.PromptBuilder) *OpenAICompatibleClient {
	return &OpenAICompatibleClient{
		apiURL:        apiURL,
		apiKey:        apiKey,
		model:         model,
		promptBuilder: pb,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// GetInsight builds prompts, sends a chat request to the LLM API and returns
// the commentary text. Failures after retries are reported as
// domain.ErrProviderFailure so the advisor can substitute its fallback.
func (c *OpenAICompatibleClient) GetInsight(ctx context.Context, advisory promptbuilder.AdvisoryContext) (string, error) {
	if c.apiKey == "" {
		return "", errors.Wrap(domain.ErrProviderFailure, "LLM API key is empty")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: promptbuilder.SystemPrompt},
			{Role: "user", Content: c.promptBuilder.BuildUserPrompt(advisory)},
		},
		Temperature: 0.3,
		MaxTokens:   1200,
	}

	requestID := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", errors.Wrap(domain.ErrProviderFailure, ctx.Err().Error())
			case <-time.After(c.retryDelay):
			}
		}

		text, err := c.send(ctx, reqBody, requestID)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}

	return "", errors.Wrapf(domain.ErrProviderFailure, "after %d attempts: %v", c.maxRetries, lastErr)
}

func (c *OpenAICompatibleClient) send(ctx context.Context, reqBody chatRequest, requestID string) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "send chat request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read chat response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "decode chat response")
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
