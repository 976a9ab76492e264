package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a completion call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// IsZero reports whether the provider returned no usage metadata.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// AgentMeta holds operational metadata for one handler execution.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}
