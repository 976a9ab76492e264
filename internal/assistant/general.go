package assistant

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"github.com/Harie1904/agente-noticias-alexandre/internal/shared"
)

//go:embed general_prompt.md
var generalPrompt string

type generalPromptData struct {
	Question string
}

// answerGeneral is the fallback path for inputs matching no intent rule. It
// wraps the raw input in a brief-answer prompt and returns the completion
// verbatim.
func (a *Assistant) answerGeneral(ctx context.Context, input string) (string, []shared.AgentMeta) {
	prompt, err := buildGeneralPrompt(generalPromptData{Question: input})
	if err != nil {
		return fmt.Sprintf("ERRO: %v", err), nil
	}

	start := time.Now()
	resp, err := a.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("ERRO: %v", err), nil
	}

	meta := shared.AgentMeta{
		AgentName: "General",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	return resp.Content, []shared.AgentMeta{meta}
}

func buildGeneralPrompt(data generalPromptData) (string, error) {
	tmpl, err := template.New("general").Parse(generalPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
