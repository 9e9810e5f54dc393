package cmd

import (
	"fmt"
	"log"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/agent"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/catalog"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/config"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/providers"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/session"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/tools"
)

// buildAgent wires the catalog, session store, provider, and tool registry
// into an Agent from the loaded config. The returned cleanup closes any
// external connections.
func buildAgent(cfg config.Config) (*agent.Agent, func(), error) {
	cleanup := func() {}

	client := providers.NewClient(cfg.LLMAPIKey, cfg.LLMAPIBase)
	client.ImageModel = cfg.ImageModel

	var shop catalog.Store
	if cfg.DatabaseURL != "" {
		pg, err := catalog.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog database: %w", err)
		}
		shop = pg
		cleanup = chain(cleanup, func() { pg.Close() })
		log.Println("[Setup] catalog: postgres")
	} else {
		shop = catalog.NewFixtureStore()
		log.Println("[Setup] catalog: built-in fixtures")
	}

	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = agent.DefaultSystemPrompt
	}

	var sessions session.Store
	if cfg.RedisURL != "" {
		rs, err := session.NewRedisStore(cfg.RedisURL, prompt)
		if err != nil {
			return nil, nil, fmt.Errorf("session store: %w", err)
		}
		sessions = rs
		cleanup = chain(cleanup, func() { rs.Close() })
		log.Println("[Setup] sessions: redis")
	} else {
		sessions = session.NewMemoryStore(prompt)
		log.Println("[Setup] sessions: in-memory")
	}

	registry := tools.NewRegistry()
	registry.Register(&tools.OrderStatusTool{Catalog: shop})
	registry.Register(&tools.ProductSearchTool{Catalog: shop})
	registry.Register(&tools.SceneImageTool{Images: client})

	bot := agent.New(client, sessions, registry, agent.Config{
		Model:        cfg.Model,
		MaxTokens:    cfg.MaxTokens,
		Temperature:  cfg.Temperature,
		HistoryLimit: cfg.HistoryLimit,
	})
	return bot, cleanup, nil
}

func chain(first, second func()) func() {
	return func() {
		second()
		first()
	}
}
