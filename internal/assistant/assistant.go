package assistant

import (
	"context"

	"github.com/Harie1904/agente-noticias-alexandre/internal/llm"
	"github.com/Harie1904/agente-noticias-alexandre/internal/search"
	"github.com/Harie1904/agente-noticias-alexandre/internal/shared"
)

// ArticleReader fetches the readable text of a news article URL.
type ArticleReader interface {
	ArticleText(ctx context.Context, url string) (string, error)
}

// Assistant routes a user utterance to the matching handler and returns the
// response text plus per-call execution metadata. Handlers never return
// errors: provider failures are converted into user-visible ERRO strings at
// the handler boundary, so a failed turn can never end the session.
type Assistant struct {
	textGen  llm.TextGenerator
	searcher search.Searcher
	articles ArticleReader
}

// New creates a new Assistant. articles may be nil, in which case URLs in
// sentiment requests are treated as plain text.
func New(textGen llm.TextGenerator, searcher search.Searcher, articles ArticleReader) *Assistant {
	return &Assistant{
		textGen:  textGen,
		searcher: searcher,
		articles: articles,
	}
}

// Respond handles one conversation turn. Turns are stateless: the reply is
// built solely from the current input.
func (a *Assistant) Respond(ctx context.Context, input string) (string, []shared.AgentMeta) {
	switch DetectIntent(input) {
	case IntentSentiment:
		return a.analyzeSentiment(ctx, input)
	case IntentNews:
		return a.searchAndSummarize(ctx, input)
	default:
		return a.answerGeneral(ctx, input)
	}
}
