package assistant

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/Harie1904/agente-noticias-alexandre/internal/shared"
)

//go:embed sentiment_prompt.md
var sentimentPrompt string

// Trigger phrases removed from the input before analysis, replaced literally
// in this exact order. Matching is case-sensitive: only the lowercase forms
// of the command grammar are stripped.
var sentimentTriggers = []string{
	"analise",
	"sentimento",
	"analisa",
	"o sentimento",
	"da notícia",
	"desta notícia",
	"do texto",
}

const (
	// Inputs shorter than this (in runes) get a prompting-for-more message
	// instead of an LLM call.
	minSentimentTextLen = 20

	// Fetched article bodies are truncated to keep prompts small.
	maxArticleRunes = 4000

	sentimentHelpMessage = "Por favor, forneça o texto da notícia para análise. Exemplo: 'Analise o sentimento: [texto da notícia]'"
)

type sentimentPromptData struct {
	Text string
}

// analyzeSentiment classifies the supplied text as POSITIVO or NEGATIVO with
// a short justification. The LLM response is returned verbatim (trimmed);
// no format validation is performed.
func (a *Assistant) analyzeSentiment(ctx context.Context, input string) (string, []shared.AgentMeta) {
	afterTriggers := input
	for _, trigger := range sentimentTriggers {
		afterTriggers = strings.ReplaceAll(afterTriggers, trigger, "")
	}

	// URL detection happens before the colon strip, which would otherwise
	// mangle the scheme.
	text := strings.TrimSpace(strings.ReplaceAll(afterTriggers, ":", ""))
	if url := articleURL(afterTriggers); url != "" && a.articles != nil {
		body, err := a.articles.ArticleText(ctx, url)
		if err != nil {
			return fmt.Sprintf("ERRO ao ler a notícia: %v", err), nil
		}
		text = truncateRunes(strings.TrimSpace(body), maxArticleRunes)
	}

	if utf8.RuneCountInString(text) < minSentimentTextLen {
		return sentimentHelpMessage, nil
	}

	prompt, err := buildSentimentPrompt(sentimentPromptData{Text: text})
	if err != nil {
		return fmt.Sprintf("ERRO ao analisar sentimento: %v", err), nil
	}

	start := time.Now()
	resp, err := a.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("ERRO ao analisar sentimento: %v", err), nil
	}

	meta := shared.AgentMeta{
		AgentName: "Sentiment",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	return strings.TrimSpace(resp.Content), []shared.AgentMeta{meta}
}

// articleURL returns the first http(s) token in the text, or "" when the
// text carries no URL.
func articleURL(text string) string {
	for _, field := range strings.Fields(text) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return field
		}
	}
	return ""
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func buildSentimentPrompt(data sentimentPromptData) (string, error) {
	tmpl, err := template.New("sentiment").Parse(sentimentPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
