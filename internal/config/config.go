package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported values for LLM_PROVIDER.
const (
	ProviderMistral = "mistral"
	ProviderGemini  = "gemini"
)

// Config holds the configuration for the application.
type Config struct {
	LLMProvider   string
	MistralAPIKey string
	MistralModel  string
	GeminiAPIKey  string
	GeminiModel   string
	TavilyAPIKey  string
	DatabasePath  string

	// Telegram Config
	TelegramBotToken     string
	TelegramWebhookURL   string
	TelegramAllowUserIDs []int64
	AdminTelegramID      int64
	Port                 string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderMistral))
	if provider != ProviderMistral && provider != ProviderGemini {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q (expected %q or %q)", provider, ProviderMistral, ProviderGemini)
	}

	mistralAPIKey := os.Getenv("MISTRAL_API_KEY")
	if provider == ProviderMistral && mistralAPIKey == "" {
		return nil, fmt.Errorf("ERRO: MISTRAL_API_KEY não encontrada no arquivo .env")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if provider == ProviderGemini && geminiAPIKey == "" {
		return nil, fmt.Errorf("ERRO: GEMINI_API_KEY não encontrada no arquivo .env")
	}

	// TAVILY_API_KEY is deliberately not required here: the search client
	// reports its absence on the first search attempt.
	tavilyAPIKey := os.Getenv("TAVILY_API_KEY")

	// Telegram Config (optional for the CLI, required by the bot binary)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	telegramAllowUserIDs := parseIDList(os.Getenv("TELEGRAM_ALLOW_USER_ID"))

	var adminTelegramID int64
	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			adminTelegramID = id
		}
	}

	return &Config{
		LLMProvider:          provider,
		MistralAPIKey:        mistralAPIKey,
		MistralModel:         getEnv("MISTRAL_MODEL", "ministral-8b-latest"),
		GeminiAPIKey:         geminiAPIKey,
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		TavilyAPIKey:         tavilyAPIKey,
		DatabasePath:         getEnv("DATABASE_PATH", "data/agente.db"),
		TelegramBotToken:     telegramBotToken,
		TelegramWebhookURL:   telegramWebhookURL,
		TelegramAllowUserIDs: telegramAllowUserIDs,
		AdminTelegramID:      adminTelegramID,
		Port:                 getEnv("PORT", "8080"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseIDList parses a comma-separated list of Telegram user IDs,
// skipping entries that are not valid integers.
func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
