// Package providers defines the chat-completion provider interface and wire types.
package providers

import "context"

// Message is one entry in a conversation log, in OpenAI chat-completion format.
// Content may be empty on assistant messages that only carry tool calls.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a model-issued request to execute a tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its raw JSON argument payload.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatRequest holds all parameters for a chat completion call.
// Tools is included on the first pass only; the second pass omits it.
type ChatRequest struct {
	Messages    []Message
	Tools       []map[string]any
	Model       string
	MaxTokens   int
	Temperature float64
}

// ChatResponse is the assistant message returned by the completion endpoint.
type ChatResponse struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason string
}

// HasToolCalls reports whether the response requests tool execution.
func (r *ChatResponse) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// ChatProvider is the completion endpoint collaborator.
type ChatProvider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ImageProvider generates an image from a free-text prompt and returns its URL.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
