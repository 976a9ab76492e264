package assistant

import "strings"

// Intent classifies a user utterance into one of the three handling paths.
type Intent string

const (
	IntentSentiment Intent = "sentiment"
	IntentNews      Intent = "news"
	IntentGeneral   Intent = "general"
)

var (
	sentimentKeywords = []string{"analise", "sentimento", "analisa"}
	newsKeywords      = []string{"busque", "buscar", "notícias", "noticias", "procure"}
)

// intentRules are evaluated in order; the first match wins. IntentGeneral is
// the fallback when no rule matches.
var intentRules = []struct {
	matches func(string) bool
	intent  Intent
}{
	{containsAny(sentimentKeywords), IntentSentiment},
	{containsAny(newsKeywords), IntentNews},
}

// DetectIntent classifies the input by case-insensitive substring matching
// against fixed keyword sets. No tokenization, no stemming.
func DetectIntent(input string) Intent {
	lower := strings.ToLower(input)
	for _, rule := range intentRules {
		if rule.matches(lower) {
			return rule.intent
		}
	}
	return IntentGeneral
}

func containsAny(keywords []string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}
