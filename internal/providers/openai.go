// Package providers — openai.go
// OpenAI-compatible client using standard HTTP. Works against any
// chat-completions endpoint that speaks the OpenAI schema (x.ai, OpenAI,
// OpenRouter, DeepSeek, etc.).
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an OpenAI-compatible chat + image client.
type Client struct {
	APIKey     string
	APIBase    string
	ImageModel string
	HTTPClient *http.Client
}

// NewClient creates a Client for the given endpoint.
func NewClient(apiKey, apiBase string) *Client {
	if apiBase == "" {
		apiBase = "https://api.openai.com/v1"
	}
	return &Client{
		APIKey:     apiKey,
		APIBase:    apiBase,
		ImageModel: "flux",
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Chat sends a chat completion request. Tools, when present, are forwarded
// verbatim with tool_choice set to automatic so the model decides whether
// to invoke one.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body := map[string]any{
		"model":       req.Model,
		"messages":    req.Messages,
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
	}
	if len(req.Tools) > 0 {
		body["tools"] = req.Tools
		body["tool_choice"] = "auto"
	}

	respBody, err := c.post(ctx, "/chat/completions", body)
	if err != nil {
		return nil, err
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices")
	}

	choice := parsed.Choices[0]
	content := ""
	if choice.Message.Content != nil {
		content = *choice.Message.Content
	}
	finish := choice.FinishReason
	if finish == "" {
		finish = "stop"
	}
	return &ChatResponse{
		Content:      content,
		ToolCalls:    choice.Message.ToolCalls,
		FinishReason: finish,
	}, nil
}

// GenerateImage requests one 1024x1024 image for the prompt and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":  c.ImageModel,
		"prompt": prompt,
		"n":      1,
		"size":   "1024x1024",
	}

	respBody, err := c.post(ctx, "/images/generations", body)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse image response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("image response has no data")
	}
	return parsed.Data[0].URL, nil
}

func (c *Client) post(ctx context.Context, path string, body map[string]any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.APIBase, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: HTTP %d: %s", path, resp.StatusCode, truncate(string(respBody), 200))
	}
	return respBody, nil
}

// chatCompletionResponse mirrors the OpenAI chat completion response structure.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content   *string    `json:"content"`
			ToolCalls []ToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
