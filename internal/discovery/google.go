package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// DefaultSearchTimeout bounds a single provider call.
const DefaultSearchTimeout = 30 * time.Second

// resultsPerVariant is how many results each query variant requests.
const resultsPerVariant = 10

// GoogleProvider implements Provider on top of the Google Custom Search API.
// Each query is expanded into several phrasings and fanned out concurrently;
// a variant that fails is skipped rather than failing the whole search.
type GoogleProvider struct {
	svc     *customsearch.Service
	cx      string
	timeout time.Duration
}

// NewGoogleProvider creates a provider bound to a Custom Search engine ID.
func NewGoogleProvider(ctx context.Context, apiKey, cx string, timeout time.Duration) (*GoogleProvider, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	return &GoogleProvider{svc: svc, cx: cx, timeout: timeout}, nil
}

// QueryVariants expands a topic into the phrasings used for discovery.
func QueryVariants(query string) []string {
	query = strings.TrimSpace(query)
	return []string{
		fmt.Sprintf("%s tutorial", query),
		fmt.Sprintf("learn %s", query),
		fmt.Sprintf("%s course online", query),
		fmt.Sprintf("%s documentation", query),
	}
}

// Search fans the query variants out concurrently and merges the results,
// deduplicating by link. Variant order is preserved in the merged output so
// repeated searches return the same list.
func (p *GoogleProvider) Search(ctx context.Context, query string) ([]RawHit, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	variants := QueryVariants(query)
	perVariant := make([][]RawHit, len(variants))

	var mu sync.Mutex
	var lastErr error
	g, gctx := errgroup.WithContext(ctx)
	for i, variant := range variants {
		g.Go(func() error {
			resp, err := p.svc.Cse.List().Context(gctx).Cx(p.cx).Q(variant).Num(resultsPerVariant).Do()
			if err != nil {
				mu.Lock()
				lastErr = err
				mu.Unlock()
				return nil // skip failed variants
			}
			hits := make([]RawHit, 0, len(resp.Items))
			for _, item := range resp.Items {
				hits = append(hits, RawHit{
					Title:         item.Title,
					Link:          item.Link,
					Snippet:       item.Snippet,
					DisplaySource: item.DisplayLink,
				})
			}
			perVariant[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search fan-out failed: %w", err)
	}

	merged := MergeHits(perVariant)
	if len(merged) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all search variants failed: %w", lastErr)
	}
	return merged, nil
}

// MergeHits flattens per-variant result lists in variant order, dropping
// duplicate links.
func MergeHits(perVariant [][]RawHit) []RawHit {
	seen := make(map[string]bool)
	var merged []RawHit
	for _, hits := range perVariant {
		for _, hit := range hits {
			if hit.Link == "" || seen[hit.Link] {
				continue
			}
			seen[hit.Link] = true
			merged = append(merged, hit)
		}
	}
	return merged
}
