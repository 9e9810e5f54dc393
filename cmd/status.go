package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved configuration",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()

	fmt.Println("🤖 shopbot Status")
	fmt.Println()
	fmt.Printf("Model: %s (%s)\n", cfg.Model, cfg.LLMAPIBase)
	fmt.Printf("Image model: %s\n", cfg.ImageModel)
	fmt.Printf("Port: %d\n", cfg.Port)
	fmt.Printf("History limit: %d messages\n", cfg.HistoryLimit)

	fmt.Println("\nCollaborators:")
	fmt.Printf("  Telegram: %s\n", configured(cfg.TelegramToken != ""))
	fmt.Printf("  LLM key:  %s\n", configured(cfg.LLMAPIKey != ""))
	if cfg.DatabaseURL != "" {
		fmt.Println("  Catalog:  postgres")
	} else {
		fmt.Println("  Catalog:  built-in fixtures")
	}
	if cfg.RedisURL != "" {
		fmt.Println("  Sessions: redis")
	} else {
		fmt.Println("  Sessions: in-memory")
	}

	if problems := cfg.Problems(); len(problems) > 0 {
		fmt.Println("\nProblems:")
		for _, p := range problems {
			fmt.Printf("  ⚠ %s\n", p)
		}
	}
	return nil
}

func configured(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗ not configured"
}
