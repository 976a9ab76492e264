package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Harie1904/agente-noticias-alexandre/internal/assistant"
	"github.com/Harie1904/agente-noticias-alexandre/internal/config"
	"github.com/Harie1904/agente-noticias-alexandre/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Prompt-token count above which an execution is reported to the admin.
const promptTokenAlertThreshold = 4000

// Bot wraps the Telegram API around the news assistant.
type Bot struct {
	api          *tgbotapi.BotAPI
	assistant    *assistant.Assistant
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, asst *assistant.Assistant, metricsStore *metrics.Store) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, _ := tgbotapi.NewWebhook(webhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		assistant:    asst,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if !isAllowedUser(b.cfg.TelegramAllowUserIDs, update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.Text == "/metrics" {
		b.handleMetricsRequest(msg)
		return
	}

	statusMsg := tgbotapi.NewMessage(msg.Chat.ID, "🤔 *Pensando...*")
	statusMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	response, metas := b.assistant.Respond(context.Background(), msg.Text)

	for _, m := range metas {
		if err := b.metricsStore.RecordMeta(m); err != nil {
			log.Printf("Warning: failed to record metrics for %s: %v", m.AgentName, err)
		}
		if m.Usage.PromptTokens > promptTokenAlertThreshold {
			alert := fmt.Sprintf("⚠️ *Context Bloat Alert*\nAgent: %s\nModel: %s\nPrompt Tokens: %d",
				m.AgentName, m.Usage.Model, m.Usage.PromptTokens)
			b.sendAdminAlert(alert)
		}
	}

	// Responses carry free-form LLM text, so they are sent without a parse
	// mode to avoid Telegram entity-parsing failures.
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, response)
	b.api.Send(edit)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		denied := tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Acesso negado*: apenas o administrador.")
		denied.ParseMode = "Markdown"
		b.api.Send(denied)
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Erro ao buscar métricas."))
		return
	}

	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath))

	msg := tgbotapi.NewMessage(chatID, formatUsageReport(usage, health))
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

// formatUsageReport renders the /metrics admin report.
func formatUsageReport(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Relatório de Uso e Saúde*\n\n")

	sb.WriteString("🗓 *Atividade LLM recente*\n")
	if len(usage) == 0 {
		sb.WriteString("_Sem dados ainda_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execuções)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *Saúde do sistema*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disco: %s\n", health.DatabaseDiskSize))

	return sb.String()
}

func isAllowedUser(allowed []int64, userID int64) bool {
	for _, id := range allowed {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) sendAdminAlert(text string) {
	if b.cfg.AdminTelegramID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(b.cfg.AdminTelegramID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}
