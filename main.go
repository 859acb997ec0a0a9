package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/prompt-battle/cliparse"
	"github.com/danielhkuo/prompt-battle/gemini"
	"github.com/danielhkuo/prompt-battle/middleware"
	"github.com/danielhkuo/prompt-battle/ratelimit"
	"github.com/danielhkuo/prompt-battle/router"
	"github.com/danielhkuo/prompt-battle/store"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to Gemini
	client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		slog.Error("gemini client setup failed", "error", err)
		os.Exit(1)
	}
	generator := gemini.NewService(client, cfg.GeminiModel)

	// In-memory state
	battles := store.New(cfg.MaxBattles)
	limiter := ratelimit.NewLimiter(nil)

	stop := make(chan struct{})
	defer close(stop)
	limiter.StartSweeper(5*time.Minute, stop)

	// Create router
	mux := router.NewRouter(battles, limiter, generator, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin, mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
