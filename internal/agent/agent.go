// Package agent implements the two-pass tool-calling turn: one inbound user
// message in, zero or more catalog lookups, exactly one outbound reply out.
package agent

import (
	"context"
	"encoding/json"
	"log"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/providers"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/session"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/tools"
)

// Apology is the fixed fallback text when a turn fails. The user always
// receives a reply; diagnostic detail stays in the logs.
const Apology = "Sorry, something went wrong on our side. Please try again in a moment."

// Reply is the final output of one turn.
type Reply struct {
	Text      string
	Images    []string
	ActionURL string
}

// Agent orchestrates completion calls and tool execution for one bot.
type Agent struct {
	Provider    providers.ChatProvider
	Sessions    session.Store
	Tools       *tools.Registry
	Model       string
	MaxTokens   int
	Temperature float64

	// HistoryLimit bounds each conversation's log (system message included).
	// Zero disables trimming.
	HistoryLimit int
}

// Config holds tunables for creating an Agent.
type Config struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	HistoryLimit int
}

// New creates an Agent with defaults filled in.
func New(provider providers.ChatProvider, store session.Store, registry *tools.Registry, cfg Config) *Agent {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	return &Agent{
		Provider:     provider,
		Sessions:     store,
		Tools:        registry,
		Model:        cfg.Model,
		MaxTokens:    cfg.MaxTokens,
		Temperature:  cfg.Temperature,
		HistoryLimit: cfg.HistoryLimit,
	}
}

// HandleTurn processes one inbound user message through to exactly one Reply.
// It never returns an error: every failure branch degrades to the apology.
//
// First pass sends the log plus the tool schemas with tool_choice automatic.
// If the model selected tools, they run sequentially in response order, each
// result is appended as a correlated tool message, and a second pass without
// schemas produces the final text. Appends are persisted as they happen and
// never rolled back, so the next turn's context reflects what was attempted.
func (a *Agent) HandleTurn(ctx context.Context, key, userText string) Reply {
	messages, err := a.Sessions.GetOrCreate(ctx, key)
	if err != nil {
		log.Printf("[Agent] session load failed for %s: %v", key, err)
		return Reply{Text: Apology}
	}

	userMsg := providers.Message{Role: "user", Content: userText}
	messages = a.append(ctx, key, messages, userMsg)

	resp, err := a.Provider.Chat(ctx, providers.ChatRequest{
		Messages:    messages,
		Tools:       a.Tools.Schemas(),
		Model:       a.Model,
		MaxTokens:   a.MaxTokens,
		Temperature: a.Temperature,
	})
	if err != nil {
		log.Printf("[Agent] first completion pass failed for %s: %v", key, err)
		return Reply{Text: Apology}
	}

	if !resp.HasToolCalls() {
		a.append(ctx, key, nil, providers.Message{Role: "assistant", Content: resp.Content})
		a.trim(ctx, key)
		return Reply{Text: resp.Content}
	}

	assistantMsg := providers.Message{
		Role:      "assistant",
		Content:   resp.Content,
		ToolCalls: resp.ToolCalls,
	}
	messages = a.append(ctx, key, messages, assistantMsg)

	reply := Reply{}
	for _, call := range resp.ToolCalls {
		result := a.Tools.Dispatch(ctx, call.Function.Name, parseArguments(call.Function.Arguments))

		reply.Images = append(reply.Images, result.Images...)
		if reply.ActionURL == "" && result.ActionURL != "" {
			reply.ActionURL = result.ActionURL
		}

		toolMsg := providers.Message{
			Role:       "tool",
			Content:    result.JSON(),
			ToolCallID: call.ID,
			Name:       call.Function.Name,
		}
		messages = a.append(ctx, key, messages, toolMsg)
	}

	// Second pass: the model composes the final sentence around the tool
	// output it has now seen. No schemas on this call.
	second, err := a.Provider.Chat(ctx, providers.ChatRequest{
		Messages:    messages,
		Model:       a.Model,
		MaxTokens:   a.MaxTokens,
		Temperature: a.Temperature,
	})
	if err != nil {
		log.Printf("[Agent] second completion pass failed for %s: %v", key, err)
		return Reply{Text: Apology}
	}

	a.append(ctx, key, nil, providers.Message{Role: "assistant", Content: second.Content})
	a.trim(ctx, key)

	reply.Text = second.Content
	return reply
}

// append persists msgs and, when a working slice is given, extends it too.
// Store failures are logged, not fatal: the in-memory turn continues.
func (a *Agent) append(ctx context.Context, key string, working []providers.Message, msgs ...providers.Message) []providers.Message {
	if err := a.Sessions.Append(ctx, key, msgs...); err != nil {
		log.Printf("[Agent] append failed for %s: %v", key, err)
	}
	if working != nil {
		working = append(working, msgs...)
	}
	return working
}

func (a *Agent) trim(ctx context.Context, key string) {
	if a.HistoryLimit <= 0 {
		return
	}
	if err := a.Sessions.Trim(ctx, key, a.HistoryLimit); err != nil {
		log.Printf("[Agent] trim failed for %s: %v", key, err)
	}
}

// parseArguments decodes a tool call's raw JSON payload. Malformed payloads
// yield empty arguments so the handler's own validation path can respond;
// they never abort the turn.
func parseArguments(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		log.Printf("[Agent] malformed tool arguments: %v", err)
		return nil
	}
	return args
}
