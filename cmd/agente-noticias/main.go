package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Harie1904/agente-noticias-alexandre/internal/app"
	"github.com/Harie1904/agente-noticias-alexandre/internal/assistant"
	"github.com/Harie1904/agente-noticias-alexandre/internal/config"
	"github.com/Harie1904/agente-noticias-alexandre/internal/database"
	"github.com/Harie1904/agente-noticias-alexandre/internal/llm"
	"github.com/Harie1904/agente-noticias-alexandre/internal/metrics"
	"github.com/Harie1904/agente-noticias-alexandre/internal/reader"
	"github.com/Harie1904/agente-noticias-alexandre/internal/search"
)

func main() {
	// Maintenance subcommands run standalone, without the interactive banner.
	if len(os.Args) > 1 && os.Args[1] == "metrics-cleanup" {
		_ = godotenv.Load()
		runMetricsCleanup(os.Args[2:])
		return
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("ASSISTENTE AVALIADOR DE NOTÍCIAS")
	fmt.Println(strings.Repeat("=", 50))

	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		printInitError(err)
		return
	}

	textGen, err := buildTextGenerator(ctx, cfg)
	if err != nil {
		printInitError(err)
		return
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		printInitError(err)
		return
	}
	defer db.Close()

	asst := assistant.New(
		textGen,
		search.NewTavilyClient(cfg.TavilyAPIKey),
		reader.New(),
	)

	application := app.NewApp(asst, &metrics.TokenCounter{}, metrics.NewStore(db.SQL), os.Stdin, os.Stdout)
	if err := application.Run(ctx); err != nil {
		log.Fatalf("Input error: %v", err)
	}
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

func printInitError(err error) {
	fmt.Printf("\nERRO ao inicializar o agente: %v\n\n", err)
}

func runMetricsCleanup(args []string) {
	cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
	cleanupCmd.Parse(args)

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/agente.db"
	}

	db, err := database.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	affected, err := metrics.NewStore(db.SQL).Cleanup(*days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Successfully removed %d old metric records.\n", affected)
}
