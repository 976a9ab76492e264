package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Harie1904/agente-noticias-alexandre/internal/assistant"
	"github.com/Harie1904/agente-noticias-alexandre/internal/metrics"
)

// exitKeywords end the interactive session, matched case-insensitively.
var exitKeywords = []string{"sair", "exit", "quit"}

// App holds the interactive console session's dependencies.
type App struct {
	assistant    *assistant.Assistant
	counter      *metrics.TokenCounter
	metricsStore *metrics.Store
	in           io.Reader
	out          io.Writer
}

// NewApp creates and initializes a new App instance. metricsStore may be
// nil when persistence is disabled.
func NewApp(asst *assistant.Assistant, counter *metrics.TokenCounter, metricsStore *metrics.Store, in io.Reader, out io.Writer) *App {
	return &App{
		assistant:    asst,
		counter:      counter,
		metricsStore: metricsStore,
		in:           in,
		out:          out,
	}
}

// Run drives the read-dispatch-print loop until an exit keyword or EOF,
// then prints the session's token usage.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprint(a.out, "\nAgente inicializado com sucesso!\n")
	fmt.Fprint(a.out, "Digite 'sair' para encerrar\n\n")
	fmt.Fprint(a.out, "Comandos disponíveis:\n")
	fmt.Fprint(a.out, "  - 'Busque notícias sobre [tópico]'\n")
	fmt.Fprint(a.out, "  - 'Analise o sentimento: [texto da notícia]'\n\n")

	scanner := bufio.NewScanner(a.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(a.out, "Você: ")
		if !scanner.Scan() {
			// End of input counts as the end of the session.
			fmt.Fprint(a.out, a.counter.Report())
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if isExitKeyword(input) {
			fmt.Fprint(a.out, "\nEncerrando assistente...\n")
			fmt.Fprint(a.out, a.counter.Report())
			return nil
		}
		if input == "" {
			fmt.Fprint(a.out, "Por favor, digite uma pergunta válida.\n")
			continue
		}

		a.handleTurn(ctx, input)
	}
}

// handleTurn dispatches one utterance. A panic inside a handler is reported
// and the loop continues with the next turn.
func (a *App) handleTurn(ctx context.Context, input string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(a.out, "\nERRO ao processar pergunta: %v\n\n", r)
		}
	}()

	response, metas := a.assistant.Respond(ctx, input)
	fmt.Fprintf(a.out, "\nAssistente: %s\n\n", response)

	for _, meta := range metas {
		a.counter.Add(meta.Usage)
		if a.metricsStore != nil {
			if err := a.metricsStore.RecordMeta(meta); err != nil {
				log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, err)
			}
		}
	}
}

func isExitKeyword(input string) bool {
	lower := strings.ToLower(input)
	for _, keyword := range exitKeywords {
		if lower == keyword {
			return true
		}
	}
	return false
}
