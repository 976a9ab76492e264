package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const tavilyAPIURL = "https://api.tavily.com/search"

// tavilyClient is a client for the Tavily search API.
type tavilyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTavilyClient creates a new Tavily search client. The API key may be
// empty; Search reports its absence per call instead.
func NewTavilyClient(apiKey string) Searcher {
	return &tavilyClient{
		apiKey:  apiKey,
		baseURL: tavilyAPIURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tavilyRequest struct {
	Query       string `json:"query"`
	APIKey      string `json:"api_key"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []Result `json:"results"`
}

// Search posts a query to Tavily and returns up to maxResults results.
func (c *tavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(tavilyRequest{
		Query:       query,
		APIKey:      c.apiKey,
		SearchDepth: "basic",
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily api error: status %d", resp.StatusCode)
	}

	var response tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := response.Results
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
