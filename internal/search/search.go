// Package search provides web lookups for interview research: technical
// concept validation and job market context. Backed by the Google Custom
// Search API, with deterministic placeholder results when unconfigured.
package search

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const maxResultsPerRequest = 10

// Result is one structured search hit.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"display_link"`
}

// Client performs searches. When the API key or engine id is missing it
// degrades to labelled placeholder results instead of failing, so research
// never blocks an interview.
type Client struct {
	service  *customsearch.Service
	engineID string
}

// NewClient builds a Client. Empty credentials yield a placeholder-only
// client, not an error.
func NewClient(ctx context.Context, apiKey, engineID string) (*Client, error) {
	if apiKey == "" || engineID == "" {
		return &Client{}, nil
	}
	service, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}
	return &Client{service: service, engineID: engineID}, nil
}

// Configured reports whether real searches are available.
func (c *Client) Configured() bool {
	return c.service != nil
}

// Search runs a query and returns up to limit structured results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 || limit > maxResultsPerRequest {
		limit = maxResultsPerRequest
	}
	if !c.Configured() {
		return placeholderResults(query, limit), nil
	}

	resp, err := c.service.Cse.List().
		Context(ctx).
		Cx(c.engineID).
		Q(query).
		Num(int64(limit)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:       item.Title,
			URL:         item.Link,
			Snippet:     item.Snippet,
			DisplayLink: item.DisplayLink,
		})
	}
	return results, nil
}

// SearchConcept researches a technical concept with targeted queries and
// returns the merged results.
func (c *Client) SearchConcept(ctx context.Context, concept, extra string) ([]Result, error) {
	queries := []string{
		fmt.Sprintf("%s definition programming", concept),
		strings.TrimSpace(fmt.Sprintf("%s best practices %s", concept, extra)),
		fmt.Sprintf("%s examples tutorial", concept),
	}

	var merged []Result
	for _, query := range queries {
		results, err := c.Search(ctx, query, 3)
		if err != nil {
			return nil, err
		}
		merged = append(merged, results...)
	}
	return merged, nil
}

// placeholderResults are clearly labelled stand-ins used without API
// credentials.
func placeholderResults(query string, limit int) []Result {
	if limit > 3 {
		limit = 3
	}
	results := make([]Result, 0, limit)
	for i := 0; i < limit; i++ {
		results = append(results, Result{
			Title:       fmt.Sprintf("Placeholder result %d for %q", i+1, query),
			URL:         fmt.Sprintf("https://example.com/result-%d", i+1),
			Snippet:     fmt.Sprintf("Search is not configured; this is a placeholder for %q. Set GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_ENGINE_ID for real results.", query),
			DisplayLink: "example.com",
		})
	}
	return results
}
