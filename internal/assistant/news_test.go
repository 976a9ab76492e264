package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Harie1904/agente-noticias-alexandre/internal/llm"
	"github.com/Harie1904/agente-noticias-alexandre/internal/search"
	"github.com/Harie1904/agente-noticias-alexandre/internal/shared"
)

func TestSearchAndSummarize(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gen := &mockTextGenerator{
			responses: map[string]llm.ContentResponse{
				"Resultados:": {
					Content: "• Economia em alta\n• Mercado reage bem\n",
					Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
				},
				"Notícias:": {
					Content: "\nSentimento: POSITIVO\nJustificativa: notícias de crescimento.\n",
					Usage:   shared.TokenUsage{PromptTokens: 8, CompletionTokens: 4, TotalTokens: 12},
				},
			},
		}
		searcher := &mockSearcher{
			results: []search.Result{
				{
					Title:   "Economia cresce 2% no trimestre",
					Content: "O PIB avançou impulsionado pelo consumo.",
					URL:     "https://noticias.test/economia",
				},
				{
					Title:   "Bolsa fecha em alta",
					Content: "Investidores reagiram aos dados positivos.",
					URL:     "https://noticias.test/bolsa",
				},
			},
		}
		a := New(gen, searcher, nil)

		response, metas := a.Respond(context.Background(), "Busque notícias sobre economia")

		if searcher.searchCalls != 1 {
			t.Fatalf("Expected 1 search, got %d", searcher.searchCalls)
		}
		// The raw input is the query; nothing is stripped from it.
		if searcher.lastQuery != "Busque notícias sobre economia" {
			t.Errorf("Expected the raw input as query, got '%s'", searcher.lastQuery)
		}
		if searcher.lastMax != 5 {
			t.Errorf("Expected max results 5, got %d", searcher.lastMax)
		}
		if gen.generateContentCalls != 2 {
			t.Fatalf("Expected 2 LLM calls, got %d", gen.generateContentCalls)
		}

		wantBlocks := "Resultados: 1. Economia cresce 2% no trimestre\n" +
			"   O PIB avançou impulsionado pelo consumo.\n" +
			"   Fonte: https://noticias.test/economia\n\n" +
			"2. Bolsa fecha em alta\n" +
			"   Investidores reagiram aos dados positivos.\n" +
			"   Fonte: https://noticias.test/bolsa"
		if !strings.Contains(gen.prompts[0], wantBlocks) {
			t.Errorf("Unexpected summary prompt:\n%s", gen.prompts[0])
		}
		// The summary is embedded in the second prompt untrimmed.
		if !strings.Contains(gen.prompts[1], "Notícias: • Economia em alta\n• Mercado reage bem\n") {
			t.Errorf("Unexpected sentiment prompt:\n%s", gen.prompts[1])
		}

		separator := strings.Repeat("=", 50)
		want := "• Economia em alta\n• Mercado reage bem\n\n\n" +
			separator + "\nANÁLISE DE SENTIMENTO\n" + separator +
			"\nSentimento: POSITIVO\nJustificativa: notícias de crescimento."
		if response != want {
			t.Errorf("Expected response:\n%q\ngot:\n%q", want, response)
		}

		if len(metas) != 2 {
			t.Fatalf("Expected 2 meta entries, got %+v", metas)
		}
		if metas[0].AgentName != "NewsSummary" || metas[0].Usage.TotalTokens != 15 {
			t.Errorf("Unexpected summary meta: %+v", metas[0])
		}
		if metas[1].AgentName != "NewsSentiment" || metas[1].Usage.TotalTokens != 12 {
			t.Errorf("Unexpected sentiment meta: %+v", metas[1])
		}
	})

	t.Run("NoResults", func(t *testing.T) {
		gen := &mockTextGenerator{}
		searcher := &mockSearcher{}
		a := New(gen, searcher, nil)

		response, metas := a.Respond(context.Background(), "busque notícias sobre um assunto inexistente")

		if response != noNewsMessage {
			t.Errorf("Expected '%s', got '%s'", noNewsMessage, response)
		}
		if gen.generateContentCalls != 0 {
			t.Errorf("Expected zero LLM calls for empty results, got %d", gen.generateContentCalls)
		}
		if len(metas) != 0 {
			t.Errorf("Expected no meta entries, got %+v", metas)
		}
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		gen := &mockTextGenerator{}
		searcher := &mockSearcher{err: search.ErrMissingAPIKey}
		a := New(gen, searcher, nil)

		response, _ := a.Respond(context.Background(), "busque notícias sobre tecnologia")

		if response != "ERRO: TAVILY_API_KEY não encontrada no arquivo .env" {
			t.Errorf("Expected the missing-key message, got '%s'", response)
		}
		if gen.generateContentCalls != 0 {
			t.Errorf("Expected zero LLM calls, got %d", gen.generateContentCalls)
		}
	})

	t.Run("SearchError", func(t *testing.T) {
		gen := &mockTextGenerator{}
		searcher := &mockSearcher{err: fmt.Errorf("connection refused")}
		a := New(gen, searcher, nil)

		response, metas := a.Respond(context.Background(), "busque notícias sobre tecnologia")

		if response != "ERRO ao buscar notícias: connection refused" {
			t.Errorf("Expected the search error string, got '%s'", response)
		}
		if len(metas) != 0 {
			t.Errorf("Expected no meta entries, got %+v", metas)
		}
	})

	t.Run("SummaryFailureDiscardsEverything", func(t *testing.T) {
		gen := &mockTextGenerator{failOnCall: 1}
		searcher := &mockSearcher{
			results: []search.Result{{Title: "Qualquer", Content: "Coisa", URL: "https://noticias.test/q"}},
		}
		a := New(gen, searcher, nil)

		response, metas := a.Respond(context.Background(), "busque notícias sobre economia")

		if response != "ERRO ao processar resultados: mock ai error" {
			t.Errorf("Expected the processing error string, got '%s'", response)
		}
		if len(metas) != 0 {
			t.Errorf("Expected no meta entries when the first call fails, got %+v", metas)
		}
	})

	t.Run("SentimentFailureKeepsSummaryMeta", func(t *testing.T) {
		gen := &mockTextGenerator{
			failOnCall: 2,
			responses: map[string]llm.ContentResponse{
				"Resultados:": {
					Content: "• Resumo parcial\n",
					Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
				},
			},
		}
		searcher := &mockSearcher{
			results: []search.Result{{Title: "Qualquer", Content: "Coisa", URL: "https://noticias.test/q"}},
		}
		a := New(gen, searcher, nil)

		response, metas := a.Respond(context.Background(), "busque notícias sobre economia")

		if response != "ERRO ao processar resultados: mock ai error" {
			t.Errorf("Expected the processing error string, got '%s'", response)
		}
		// The summary call succeeded; its usage is still reported.
		if len(metas) != 1 || metas[0].AgentName != "NewsSummary" {
			t.Fatalf("Expected only the summary meta, got %+v", metas)
		}
	})
}

func TestFormatSearchResults(t *testing.T) {
	results := []search.Result{
		{Title: "", Content: "Conteúdo presente", URL: "https://a.test"},
		{Title: "Título presente", Content: "", URL: "https://b.test"},
	}

	got := formatSearchResults(results)

	want := "1. Sem título\n   Conteúdo presente\n   Fonte: https://a.test\n\n" +
		"2. Título presente\n   Sem conteúdo\n   Fonte: https://b.test"
	if got != want {
		t.Errorf("Expected:\n%q\ngot:\n%q", want, got)
	}
}
