// Package discovery finds candidate learning resources for a query and
// converts raw search hits into typed content items.
package discovery

import "context"

// RawHit is a single untyped search result from a provider.
type RawHit struct {
	Title         string
	Link          string
	Snippet       string
	DisplaySource string
}

// Provider is an abstraction over external search backends. An empty result
// set is a valid outcome, not an error.
type Provider interface {
	Search(ctx context.Context, query string) ([]RawHit, error)
}
