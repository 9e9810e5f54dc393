package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/config"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the bot locally (no Telegram)",
	Long:  "Run a turn against the configured LLM and catalog from the terminal. With no message, starts an interactive session.",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if cfg.LLMAPIKey == "" {
		return fmt.Errorf("LLM_API_KEY (or GROK_API_KEY / OPENAI_API_KEY) is not set")
	}

	bot, cleanup, err := buildAgent(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	turn := func(text string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TurnTimeout)*time.Second)
		defer cancel()
		reply := bot.HandleTurn(ctx, "cli:local", text)
		fmt.Println(reply.Text)
		for _, img := range reply.Images {
			fmt.Printf("  [image] %s\n", img)
		}
		if reply.ActionURL != "" {
			fmt.Printf("  [link] %s\n", reply.ActionURL)
		}
	}

	if len(args) > 0 {
		turn(strings.Join(args, " "))
		return nil
	}

	fmt.Println("shopbot interactive chat — empty line to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		turn(line)
	}
	return scanner.Err()
}
