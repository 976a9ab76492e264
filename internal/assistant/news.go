package assistant

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Harie1904/agente-noticias-alexandre/internal/search"
	"github.com/Harie1904/agente-noticias-alexandre/internal/shared"
)

//go:embed news_summary_prompt.md
var newsSummaryPrompt string

//go:embed news_sentiment_prompt.md
var newsSentimentPrompt string

const (
	maxNewsResults = 5

	noNewsMessage        = "Nenhuma notícia encontrada para este tópico."
	missingTavilyMessage = "ERRO: TAVILY_API_KEY não encontrada no arquivo .env"
)

type newsSummaryPromptData struct {
	Results string
}

type newsSentimentPromptData struct {
	Summary string
}

// searchAndSummarize runs the three-step news pipeline: search, summarize
// the results, then classify the sentiment of the summary. Each step is a
// hard dependency on the previous one succeeding; a failure discards
// everything computed so far.
func (a *Assistant) searchAndSummarize(ctx context.Context, input string) (string, []shared.AgentMeta) {
	// The full raw input is the search query; trigger words are not
	// stripped from it.
	results, err := a.searcher.Search(ctx, input, maxNewsResults)
	if err != nil {
		if errors.Is(err, search.ErrMissingAPIKey) {
			return missingTavilyMessage, nil
		}
		return fmt.Sprintf("ERRO ao buscar notícias: %v", err), nil
	}
	if len(results) == 0 {
		return noNewsMessage, nil
	}

	summaryPrompt, err := buildNewsSummaryPrompt(newsSummaryPromptData{Results: formatSearchResults(results)})
	if err != nil {
		return fmt.Sprintf("ERRO ao processar resultados: %v", err), nil
	}

	start := time.Now()
	summaryResp, err := a.textGen.GenerateContent(ctx, summaryPrompt)
	if err != nil {
		return fmt.Sprintf("ERRO ao processar resultados: %v", err), nil
	}
	metas := []shared.AgentMeta{{
		AgentName: "NewsSummary",
		Usage:     summaryResp.Usage,
		Latency:   time.Since(start),
	}}

	sentimentPrompt, err := buildNewsSentimentPrompt(newsSentimentPromptData{Summary: summaryResp.Content})
	if err != nil {
		return fmt.Sprintf("ERRO ao processar resultados: %v", err), metas
	}

	start = time.Now()
	sentimentResp, err := a.textGen.GenerateContent(ctx, sentimentPrompt)
	if err != nil {
		return fmt.Sprintf("ERRO ao processar resultados: %v", err), metas
	}
	metas = append(metas, shared.AgentMeta{
		AgentName: "NewsSentiment",
		Usage:     sentimentResp.Usage,
		Latency:   time.Since(start),
	})

	separator := strings.Repeat("=", 50)
	response := fmt.Sprintf("%s\n\n%s\nANÁLISE DE SENTIMENTO\n%s\n%s",
		summaryResp.Content, separator, separator, strings.TrimSpace(sentimentResp.Content))
	return response, metas
}

// formatSearchResults renders the results as numbered title/content/source
// blocks separated by blank lines.
func formatSearchResults(results []search.Result) string {
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "Sem título"
		}
		content := r.Content
		if content == "" {
			content = "Sem conteúdo"
		}
		blocks = append(blocks, fmt.Sprintf("%d. %s\n   %s\n   Fonte: %s", i+1, title, content, r.URL))
	}
	return strings.Join(blocks, "\n\n")
}

func buildNewsSummaryPrompt(data newsSummaryPromptData) (string, error) {
	tmpl, err := template.New("news_summary").Parse(newsSummaryPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func buildNewsSentimentPrompt(data newsSentimentPromptData) (string, error) {
	tmpl, err := template.New("news_sentiment").Parse(newsSentimentPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
