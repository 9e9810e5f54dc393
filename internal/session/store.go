// Package session implements the per-conversation message log.
//
// A conversation is keyed by the chat platform identity and holds an ordered
// message sequence whose first entry is always the system (persona) message.
// Logs are created lazily on first use and trimmed to a fixed bound every
// turn so long-lived chats do not grow without limit.
package session

import (
	"context"
	"sync"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/providers"
)

// Store is the conversation log backend.
type Store interface {
	// GetOrCreate returns the log for key, seeding a new log with exactly
	// one system message when none exists yet.
	GetOrCreate(ctx context.Context, key string) ([]providers.Message, error)

	// Append adds messages to the end of the log, preserving order.
	Append(ctx context.Context, key string, msgs ...providers.Message) error

	// Trim keeps the leading system message plus the most recent max-1
	// messages. Lossy and irreversible; callers must apply the same bound
	// on every turn.
	Trim(ctx context.Context, key string, max int) error
}

// MemoryStore keeps conversation logs in a mutex-guarded map.
// Logs live for the process lifetime and are lost on restart.
type MemoryStore struct {
	systemPrompt string
	mu           sync.Mutex
	logs         map[string][]providers.Message
}

// NewMemoryStore creates an in-memory store seeding new logs with systemPrompt.
func NewMemoryStore(systemPrompt string) *MemoryStore {
	return &MemoryStore{
		systemPrompt: systemPrompt,
		logs:         make(map[string][]providers.Message),
	}
}

// GetOrCreate returns a copy of the log for key, creating it if needed.
func (s *MemoryStore) GetOrCreate(_ context.Context, key string) ([]providers.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[key]
	if !ok {
		log = []providers.Message{{Role: "system", Content: s.systemPrompt}}
		s.logs[key] = log
	}
	out := make([]providers.Message, len(log))
	copy(out, log)
	return out, nil
}

// Append adds messages to the end of the log for key.
func (s *MemoryStore) Append(_ context.Context, key string, msgs ...providers.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[key]
	if !ok {
		log = []providers.Message{{Role: "system", Content: s.systemPrompt}}
	}
	s.logs[key] = append(log, msgs...)
	return nil
}

// Trim bounds the log for key to max messages, keeping the system message.
func (s *MemoryStore) Trim(_ context.Context, key string, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[key]
	if !ok || len(log) <= max || max < 2 {
		return nil
	}
	trimmed := make([]providers.Message, 0, max)
	trimmed = append(trimmed, log[0])
	trimmed = append(trimmed, log[len(log)-(max-1):]...)
	s.logs[key] = trimmed
	return nil
}

// Len reports the current log length for key. Zero when absent.
func (s *MemoryStore) Len(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs[key])
}
