// ABOUTME: OpenAI-compatible chat completion provider (Groq by default)
// ABOUTME: Goes through the shared HTTP client so timeouts and user agent stay consistent

package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	coreerrors "oddly-enough-api/core/errors"
	"oddly-enough-api/core/interfaces"
)

const (
	// DefaultChatURL is the Groq OpenAI-compatible endpoint
	DefaultChatURL = "https://api.groq.com/openai/v1/chat/completions"

	// DefaultChatModel is a fast small Groq model
	DefaultChatModel = "llama-3.1-8b-instant"
)

// ChatProvider talks to an OpenAI-compatible /chat/completions endpoint
type ChatProvider struct {
	client   interfaces.HTTPClient
	endpoint string
	apiKey   string
	model    string
}

// NewChatProvider creates a chat provider. Empty endpoint and model select the Groq defaults.
func NewChatProvider(client interfaces.HTTPClient, endpoint, apiKey, model string) (*ChatProvider, error) {
	if client == nil {
		return nil, errors.New("HTTP client not configured")
	}
	if apiKey == "" {
		return nil, errors.New("chat provider requires an API key")
	}
	if endpoint == "" {
		endpoint = DefaultChatURL
	}
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatProvider{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Name implements Provider
func (p *ChatProvider) Name() string {
	return "chat:" + p.model
}

// Complete implements Provider
func (p *ChatProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	resp, err := p.client.Post(ctx, p.endpoint, bytes.NewReader(body), map[string]string{
		"Authorization": "Bearer " + p.apiKey,
	})
	if err != nil {
		return "", err
	}
	rc := resp.Body()
	defer rc.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(rc, 512))
		return "", &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(msg)),
			API:        p.Name(),
		}
	}

	var decoded chatResponse
	if err := json.NewDecoder(rc).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("empty chat response")
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
