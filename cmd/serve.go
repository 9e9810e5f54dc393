package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/agent"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/config"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/lane"
	"github.com/simba1145141919810/ai-customer-bot-v3/internal/telegram"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Telegram webhook server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

// webhookServer handles inbound Telegram updates and dispatches replies.
type webhookServer struct {
	bot         *agent.Agent
	lanes       *lane.Manager
	dispatcher  *telegram.Dispatcher
	problems    []string
	turnTimeout time.Duration
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv := &webhookServer{
		problems:    cfg.Problems(),
		turnTimeout: time.Duration(cfg.TurnTimeout) * time.Second,
	}

	// A misconfigured process still serves: the webhook acknowledges updates
	// and reports the degraded state instead of crashing per request.
	if len(srv.problems) > 0 {
		for _, p := range srv.problems {
			log.Printf("[Setup] ⚠ %s", p)
		}
		log.Println("[Setup] running in misconfigured mode; updates will be acknowledged but not processed")
	} else {
		bot, cleanup, err := buildAgent(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		dispatcher := &telegram.Dispatcher{Client: telegram.NewClient(cfg.TelegramToken)}
		srv.bot = bot
		srv.dispatcher = dispatcher
		srv.lanes = lane.NewManager(srv.processTurn)
	}

	router := mux.NewRouter()
	router.HandleFunc("/webhook", srv.handleWebhook).Methods("POST")
	router.HandleFunc("/healthz", srv.handleHealth).Methods("GET")
	router.HandleFunc("/", srv.handleHome).Methods("GET")

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on :%d", cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-sigCh:
		log.Println("[Server] shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		return err
	}
}

// handleWebhook acknowledges every update immediately and processes text
// messages in the background, serialized per chat.
func (s *webhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if len(s.problems) > 0 {
		writeJSON(w, map[string]string{"status": "misconfigured"})
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		// Malformed payloads are acknowledged and otherwise ignored.
		writeJSON(w, map[string]string{"status": "ok"})
		return
	}

	msg := update.Message
	if msg == nil || msg.ChatID() == "" || msg.Body() == "" {
		writeJSON(w, map[string]string{"status": "ok"})
		return
	}

	req := lane.TurnRequest{
		Key:    "telegram:" + msg.ChatID(),
		ChatID: msg.ChatID(),
		Text:   msg.Body(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.turnTimeout)
		defer cancel()
		if err := s.lanes.Submit(ctx, req); err != nil {
			log.Printf("[Server] turn for %s not processed: %v", req.Key, err)
		}
	}()

	writeJSON(w, map[string]string{"status": "ok"})
}

// processTurn runs one turn end to end: orchestrate, then deliver.
func (s *webhookServer) processTurn(ctx context.Context, req lane.TurnRequest) {
	ctx, cancel := context.WithTimeout(ctx, s.turnTimeout)
	defer cancel()

	reply := s.bot.HandleTurn(ctx, req.Key, req.Text)
	if err := s.dispatcher.Deliver(ctx, req.ChatID, reply.Text, reply.Images, reply.ActionURL); err != nil {
		log.Printf("[Server] delivery failed for chat %s: %v", req.ChatID, err)
	}
}

func (s *webhookServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if len(s.problems) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"status": "misconfigured", "problems": s.problems})
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *webhookServer) handleHome(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "Bot running!")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
