package metrics

import (
	"fmt"
	"strings"

	"github.com/Harie1904/agente-noticias-alexandre/internal/shared"
)

// TokenCounter accumulates token usage across the LLM calls of one session.
// Not safe for concurrent use; the interactive loop that owns it is
// single-threaded.
type TokenCounter struct {
	promptTokens     int
	completionTokens int
	totalTokens      int
}

// Add merges one completion's usage into the running totals. Responses
// without usage metadata add zero.
func (c *TokenCounter) Add(usage shared.TokenUsage) {
	c.promptTokens += usage.PromptTokens
	c.completionTokens += usage.CompletionTokens
	c.totalTokens += usage.TotalTokens
}

// Totals returns the accumulated usage.
func (c *TokenCounter) Totals() shared.TokenUsage {
	return shared.TokenUsage{
		PromptTokens:     c.promptTokens,
		CompletionTokens: c.completionTokens,
		TotalTokens:      c.totalTokens,
	}
}

// Report renders the usage block printed when the assistant session ends.
func (c *TokenCounter) Report() string {
	separator := strings.Repeat("=", 50)
	return fmt.Sprintf("\n%s\nTOKENS UTILIZADOS:\n  Prompt tokens: %d\n  Completion tokens: %d\n  Total tokens: %d\n%s\n\n",
		separator, c.promptTokens, c.completionTokens, c.totalTokens, separator)
}
