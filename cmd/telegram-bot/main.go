package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Harie1904/agente-noticias-alexandre/internal/assistant"
	"github.com/Harie1904/agente-noticias-alexandre/internal/config"
	"github.com/Harie1904/agente-noticias-alexandre/internal/database"
	"github.com/Harie1904/agente-noticias-alexandre/internal/llm"
	"github.com/Harie1904/agente-noticias-alexandre/internal/metrics"
	"github.com/Harie1904/agente-noticias-alexandre/internal/reader"
	"github.com/Harie1904/agente-noticias-alexandre/internal/search"
	"github.com/Harie1904/agente-noticias-alexandre/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_WEBHOOK_URL is required")
	}

	ctx := context.Background()

	textGen, err := buildTextGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	asst := assistant.New(
		textGen,
		search.NewTavilyClient(cfg.TavilyAPIKey),
		reader.New(),
	)

	bot, err := telegram.NewBot(cfg, asst, metrics.NewStore(db.SQL))
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// buildTextGenerator selects the LLM provider configured via LLM_PROVIDER.
func buildTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return llm.NewGeminiClient(ctx, cfg)
	default:
		return llm.NewMistralClient(cfg), nil
	}
}
