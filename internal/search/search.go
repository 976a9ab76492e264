package search

import (
	"context"
	"errors"
)

// Result is a single web-search hit.
type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Searcher is an interface for querying a web-search provider.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// ErrMissingAPIKey is returned when the search credential is absent. The
// credential is checked lazily on the first search attempt, never at startup.
var ErrMissingAPIKey = errors.New("tavily: api key is missing")
