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

// --- Mocks ---

// mockTextGenerator returns canned responses keyed on prompt markers and
// records every prompt it receives.
type mockTextGenerator struct {
	generateContentCalls int
	prompts              []string
	responses            map[string]llm.ContentResponse
	err                  error
	failOnCall           int // 1-based; 0 means never fail
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.generateContentCalls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	if m.failOnCall > 0 && m.generateContentCalls == m.failOnCall {
		return llm.ContentResponse{}, fmt.Errorf("mock ai error")
	}
	for marker, resp := range m.responses {
		if strings.Contains(prompt, marker) {
			return resp, nil
		}
	}
	return llm.ContentResponse{Content: "resposta padrão"}, nil
}

type mockSearcher struct {
	searchCalls int
	lastQuery   string
	lastMax     int
	results     []search.Result
	err         error
}

func (m *mockSearcher) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	m.searchCalls++
	m.lastQuery = query
	m.lastMax = maxResults
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

type mockArticleReader struct {
	articleCalls int
	lastURL      string
	text         string
	err          error
}

func (m *mockArticleReader) ArticleText(ctx context.Context, url string) (string, error) {
	m.articleCalls++
	m.lastURL = url
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// --- Tests ---

func TestRespondGeneralFallback(t *testing.T) {
	gen := &mockTextGenerator{
		responses: map[string]llm.ContentResponse{
			"Você é um assistente de notícias": {
				Content: "Paris é a capital da França.\n",
				Usage:   shared.TokenUsage{PromptTokens: 12, CompletionTokens: 8, TotalTokens: 20},
			},
		},
	}
	a := New(gen, &mockSearcher{}, nil)

	response, metas := a.Respond(context.Background(), "Qual a capital da França?")

	// The general handler returns the completion verbatim, untrimmed.
	if response != "Paris é a capital da França.\n" {
		t.Errorf("Expected the completion verbatim, got '%s'", response)
	}
	if gen.generateContentCalls != 1 {
		t.Fatalf("Expected 1 LLM call, got %d", gen.generateContentCalls)
	}
	if !strings.Contains(gen.prompts[0], "Qual a capital da França?") {
		t.Errorf("Expected the raw input inside the prompt, got '%s'", gen.prompts[0])
	}
	if len(metas) != 1 || metas[0].AgentName != "General" {
		t.Fatalf("Expected one 'General' meta entry, got %+v", metas)
	}
	if metas[0].Usage.TotalTokens != 20 {
		t.Errorf("Expected usage to flow through, got %+v", metas[0].Usage)
	}
}

func TestRespondGeneralError(t *testing.T) {
	gen := &mockTextGenerator{err: fmt.Errorf("mock ai error")}
	a := New(gen, &mockSearcher{}, nil)

	response, metas := a.Respond(context.Background(), "Como funciona a inflação?")

	if response != "ERRO: mock ai error" {
		t.Errorf("Expected 'ERRO: mock ai error', got '%s'", response)
	}
	if len(metas) != 0 {
		t.Errorf("Expected no meta entries on failure, got %+v", metas)
	}
}
