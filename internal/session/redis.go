package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/providers"
)

// keyPrefix namespaces conversation logs in Redis.
const keyPrefix = "session:"

// sessionTTL expires idle conversations; refreshed on every write.
const sessionTTL = 7 * 24 * time.Hour

// RedisStore keeps conversation logs in Redis as JSON-encoded arrays,
// letting multiple bot instances share history.
type RedisStore struct {
	client       *redis.Client
	systemPrompt string
}

// NewRedisStore connects to the Redis at url and verifies the connection.
func NewRedisStore(url, systemPrompt string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, systemPrompt: systemPrompt}, nil
}

// GetOrCreate returns the log for key, seeding a new one when absent.
func (s *RedisStore) GetOrCreate(ctx context.Context, key string) ([]providers.Message, error) {
	log, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = []providers.Message{{Role: "system", Content: s.systemPrompt}}
		if err := s.save(ctx, key, log); err != nil {
			return nil, err
		}
	}
	return log, nil
}

// Append adds messages to the end of the log for key.
func (s *RedisStore) Append(ctx context.Context, key string, msgs ...providers.Message) error {
	log, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if log == nil {
		log = []providers.Message{{Role: "system", Content: s.systemPrompt}}
	}
	return s.save(ctx, key, append(log, msgs...))
}

// Trim bounds the log for key to max messages, keeping the system message.
func (s *RedisStore) Trim(ctx context.Context, key string, max int) error {
	log, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if log == nil || len(log) <= max || max < 2 {
		return nil
	}
	trimmed := make([]providers.Message, 0, max)
	trimmed = append(trimmed, log[0])
	trimmed = append(trimmed, log[len(log)-(max-1):]...)
	return s.save(ctx, key, trimmed)
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) load(ctx context.Context, key string) ([]providers.Message, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var log []providers.Message
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", key, err)
	}
	return log, nil
}

func (s *RedisStore) save(ctx context.Context, key string, log []providers.Message) error {
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
