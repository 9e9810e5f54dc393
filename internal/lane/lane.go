// Package lane serializes turns per conversation key.
//
// The conversation log is shared mutable state: two near-simultaneous
// messages from the same chat must not interleave their appends. Each key
// gets its own lane with a single worker that processes turns FIFO; turns
// for different keys run concurrently. Idle lanes expire on their own.
package lane

import (
	"context"
	"errors"
	"sync"
	"time"
)

// workerIdleTimeout shuts down a lane's worker after inactivity.
const workerIdleTimeout = 5 * time.Minute

// laneBacklog bounds how many turns may queue per conversation.
const laneBacklog = 64

// ErrBacklogFull is returned when a conversation's queue is saturated.
var ErrBacklogFull = errors.New("lane: backlog full")

// TurnRequest is one inbound message awaiting processing.
type TurnRequest struct {
	Key    string
	ChatID string
	Text   string
}

// TurnHandler processes a single turn.
type TurnHandler func(ctx context.Context, req TurnRequest)

// Manager owns the per-key lanes.
type Manager struct {
	handler TurnHandler

	mu    sync.Mutex
	lanes map[string]*lane
}

type lane struct {
	queue chan queuedTurn
}

type queuedTurn struct {
	req  TurnRequest
	done chan struct{}
}

// NewManager creates a lane manager dispatching to handler.
func NewManager(handler TurnHandler) *Manager {
	return &Manager{
		handler: handler,
		lanes:   make(map[string]*lane),
	}
}

// Submit enqueues a turn on its key's lane and waits until it has been
// processed, or until ctx is cancelled.
func (m *Manager) Submit(ctx context.Context, req TurnRequest) error {
	item := queuedTurn{req: req, done: make(chan struct{})}
	if err := m.enqueue(req.Key, item); err != nil {
		return err
	}

	select {
	case <-item.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue places the turn on its lane under the manager lock. Lane expiry
// also runs under the lock, so a lane seen here cannot vanish before the
// send lands.
func (m *Manager) enqueue(key string, item queuedTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lanes[key]
	if !ok {
		l = &lane{queue: make(chan queuedTurn, laneBacklog)}
		m.lanes[key] = l
		go m.runWorker(key, l)
	}

	select {
	case l.queue <- item:
		return nil
	default:
		return ErrBacklogFull
	}
}

// runWorker drains one lane sequentially until it goes idle.
func (m *Manager) runWorker(key string, l *lane) {
	idle := time.NewTimer(workerIdleTimeout)
	defer idle.Stop()

	for {
		select {
		case item := <-l.queue:
			m.handler(context.Background(), item.req)
			close(item.done)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(workerIdleTimeout)

		case <-idle.C:
			m.mu.Lock()
			if len(l.queue) > 0 {
				m.mu.Unlock()
				idle.Reset(workerIdleTimeout)
				continue
			}
			delete(m.lanes, key)
			m.mu.Unlock()
			return
		}
	}
}

// LaneCount reports how many lanes currently exist.
func (m *Manager) LaneCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lanes)
}
