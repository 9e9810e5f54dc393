package tools

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Registry holds all registered tools, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry. Re-registering a name replaces it.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Schemas returns OpenAI function-call schemas for all registered tools,
// in registration order.
func (r *Registry) Schemas() []map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schemas := make([]map[string]any, 0, len(r.order))
	for _, name := range r.order {
		schemas = append(schemas, ToSchema(r.tools[name]))
	}
	return schemas
}

// Dispatch looks up and invokes the named tool. It always returns a Result:
// unknown names and handler errors become failure text, never a panic or an
// error the caller has to branch on.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	tool := r.Get(name)
	if tool == nil {
		log.Printf("[Tools] unknown tool requested: %q", name)
		return Result{Text: fmt.Sprintf("The %q capability is not available.", name)}
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		log.Printf("[Tools] %s failed: %v", name, err)
		return Result{Text: fmt.Sprintf("The %s lookup failed, please try again later.", name)}
	}
	return result
}
