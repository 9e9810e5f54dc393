// Package tools defines the callable capabilities exposed to the model
// and the registry that dispatches model tool calls to local handlers.
package tools

import (
	"context"
	"encoding/json"
)

// Tool is a named, schema-described capability the model may request.
type Tool interface {
	// Name returns the tool name used in LLM function calls.
	Name() string

	// Description returns what the tool does, for model selection.
	Description() string

	// Parameters returns the JSON Schema for tool parameters.
	Parameters() map[string]any

	// Execute runs the tool with the given arguments. Backend failures
	// should be reported inside the Result text where possible; a returned
	// error is converted to a failure Result by the registry.
	Execute(ctx context.Context, args map[string]any) (Result, error)
}

// Result is a tool's structured output: display text plus optional media
// references and an optional call-to-action link.
type Result struct {
	Text      string   `json:"text"`
	Images    []string `json:"images,omitempty"`
	ActionURL string   `json:"action_url,omitempty"`
}

// JSON serializes the result for the tool message content.
func (r Result) JSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		return `{"text":""}`
	}
	return string(data)
}

// ToSchema converts a tool to OpenAI function calling format.
func ToSchema(t Tool) map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        t.Name(),
			"description": t.Description(),
			"parameters":  t.Parameters(),
		},
	}
}

// stringArg extracts a string argument, tolerating absent or mistyped values.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}
