package lane

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_ProcessesTurn(t *testing.T) {
	var got TurnRequest
	m := NewManager(func(_ context.Context, req TurnRequest) {
		got = req
	})

	err := m.Submit(context.Background(), TurnRequest{Key: "telegram:1", ChatID: "1", Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Text)
}

func TestSubmit_SameKeySerialized(t *testing.T) {
	var mu sync.Mutex
	active := 0
	maxActive := 0
	var order []string

	m := NewManager(func(_ context.Context, req TurnRequest) {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		order = append(order, req.Text)
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
	})

	var wg sync.WaitGroup
	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		wg.Add(1)
		text := text
		go func() {
			defer wg.Done()
			_ = m.Submit(context.Background(), TurnRequest{Key: "telegram:1", ChatID: "1", Text: text})
		}()
		// Stagger submissions so queue order is deterministic.
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "turns for one key never overlap")
	assert.Equal(t, texts, order)
}

func TestSubmit_DifferentKeysRunConcurrently(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})

	m := NewManager(func(_ context.Context, req TurnRequest) {
		started <- req.Key
		<-release
	})

	var wg sync.WaitGroup
	for _, key := range []string{"telegram:1", "telegram:2"} {
		wg.Add(1)
		key := key
		go func() {
			defer wg.Done()
			_ = m.Submit(context.Background(), TurnRequest{Key: key, ChatID: key, Text: "hi"})
		}()
	}

	// Both handlers start before either finishes.
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("expected both keys to start concurrently")
		}
	}
	close(release)
	wg.Wait()
}

func TestSubmit_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	m := NewManager(func(_ context.Context, _ TurnRequest) {
		<-block
	})
	defer close(block)

	// Occupy the lane.
	go func() {
		_ = m.Submit(context.Background(), TurnRequest{Key: "k", Text: "first"})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := m.Submit(ctx, TurnRequest{Key: "k", Text: "second"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLaneCount(t *testing.T) {
	m := NewManager(func(context.Context, TurnRequest) {})

	require.NoError(t, m.Submit(context.Background(), TurnRequest{Key: "a", Text: "1"}))
	require.NoError(t, m.Submit(context.Background(), TurnRequest{Key: "b", Text: "2"}))
	assert.Equal(t, 2, m.LaneCount())
}
