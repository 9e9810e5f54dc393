package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name   string
	result Result
	err    error
}

func (t *stubTool) Name() string               { return t.name }
func (t *stubTool) Description() string        { return "stub" }
func (t *stubTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (t *stubTool) Execute(context.Context, map[string]any) (Result, error) {
	return t.result, t.err
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	tool := &stubTool{name: "lookup"}
	reg.Register(tool)

	assert.Equal(t, tool, reg.Get("lookup"))
	assert.Nil(t, reg.Get("missing"))
}

func TestRegistry_SchemasInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubTool{name: "b"})
	reg.Register(&stubTool{name: "a"})

	schemas := reg.Schemas()
	require.Len(t, schemas, 2)

	fn0 := schemas[0]["function"].(map[string]any)
	fn1 := schemas[1]["function"].(map[string]any)
	assert.Equal(t, "b", fn0["name"])
	assert.Equal(t, "a", fn1["name"])
	assert.Equal(t, "function", schemas[0]["type"])
}

func TestRegistry_DispatchSuccess(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubTool{name: "lookup", result: Result{Text: "found it"}})

	result := reg.Dispatch(context.Background(), "lookup", nil)
	assert.Equal(t, "found it", result.Text)
}

func TestRegistry_DispatchUnknownTool(t *testing.T) {
	reg := NewRegistry()

	result := reg.Dispatch(context.Background(), "teleport", nil)
	assert.Contains(t, result.Text, "teleport")
	assert.Contains(t, result.Text, "not available")
	assert.Empty(t, result.Images)
}

func TestRegistry_DispatchHandlerError(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubTool{name: "flaky", err: errors.New("backend down")})

	result := reg.Dispatch(context.Background(), "flaky", nil)
	assert.Contains(t, result.Text, "failed")
	assert.NotContains(t, result.Text, "backend down", "raw errors stay out of user-facing text")
}

func TestResult_JSON(t *testing.T) {
	r := Result{Text: "hi", Images: []string{"u1"}, ActionURL: "u2"}
	assert.JSONEq(t, `{"text":"hi","images":["u1"],"action_url":"u2"}`, r.JSON())

	empty := Result{Text: "only text"}
	assert.JSONEq(t, `{"text":"only text"}`, empty.JSON())
}
