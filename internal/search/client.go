// Package search provides the optional external search capability used to
// gather research context. Search is advisory: every caller must degrade
// gracefully when the capability is absent or a query fails.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Snippet is a normalized search result used as generation context
type Snippet struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Client is an abstraction over search providers. The response shape is
// provider-dependent (a result list, a single record, a plain string, or
// something else entirely); callers coerce it with Normalize.
type Client interface {
	Search(ctx context.Context, query string) (any, error)
}

// DefaultTimeout bounds a single search call
const DefaultTimeout = 15 * time.Second

// GoogleClient implements Client backed by Google Programmable Search
type GoogleClient struct {
	svc        *customsearch.Service
	cx         string
	maxResults int64
	timeout    time.Duration
}

// NewGoogleClient creates a search client for the given API key and engine ID.
// A non-positive timeout falls back to DefaultTimeout.
func NewGoogleClient(ctx context.Context, apiKey, cx string, timeout time.Duration) (*GoogleClient, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &GoogleClient{
		svc:        svc,
		cx:         cx,
		maxResults: 5,
		timeout:    timeout,
	}, nil
}

// Search runs one query and returns the raw results. A deadline hit surfaces
// as *TimeoutError so callers can log it distinctly, though like any other
// search failure it never aborts a research procedure.
func (c *GoogleClient) Search(ctx context.Context, query string) (any, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Cse.List().Cx(c.cx).Q(query).Num(c.maxResults).Context(callCtx).Do()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Query: query, Timeout: c.timeout, Cause: err}
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	snippets := make([]Snippet, 0, len(resp.Items))
	for _, item := range resp.Items {
		snippets = append(snippets, Snippet{
			Title:   item.Title,
			Content: item.Snippet,
		})
	}
	return snippets, nil
}
