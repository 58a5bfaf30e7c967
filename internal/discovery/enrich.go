package discovery

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// enrichUserAgent identifies the enricher to origin servers.
const enrichUserAgent = "Mozilla/5.0 (compatible; PathWeaver/1.0)"

// Enricher fills missing item metadata from the content page itself.
// Everything is best-effort: a page that cannot be fetched or parsed
// leaves the item unchanged.
type Enricher struct {
	client  *http.Client
	maxBody int64
}

// NewEnricher creates an enricher with the given per-request timeout.
func NewEnricher(timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Enricher{
		client:  &http.Client{Timeout: timeout},
		maxBody: 1 << 20,
	}
}

// Enrich fetches the item's page and fills missing fields from meta tags.
// The input item is returned as-is on any failure.
func (e *Enricher) Enrich(ctx context.Context, item types.ContentItem) types.ContentItem {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL, nil)
	if err != nil {
		return item
	}
	req.Header.Set("User-Agent", enrichUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return item
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return item
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return item
	}

	doc, err := goquery.NewDocumentFromReader(http.MaxBytesReader(nil, resp.Body, e.maxBody))
	if err != nil {
		return item
	}

	return ApplyPageMetadata(item, doc)
}

// ApplyPageMetadata copies description, author and publish date from a
// parsed document onto the item, preferring values the item already has.
func ApplyPageMetadata(item types.ContentItem, doc *goquery.Document) types.ContentItem {
	if item.Description == "" {
		if desc := metaContent(doc, `meta[name="description"]`, `meta[property="og:description"]`); desc != "" {
			item.Description = desc
		}
	}

	if item.Metadata == nil {
		item.Metadata = make(map[string]string)
	}
	if author := metaContent(doc, `meta[name="author"]`, `meta[property="article:author"]`); author != "" {
		item.Metadata["author"] = author
	}
	if published := metaContent(doc, `meta[property="article:published_time"]`, `meta[name="date"]`); published != "" {
		item.Metadata["published"] = published
	}
	if len(item.Metadata) == 0 {
		item.Metadata = nil
	}
	return item
}

// metaContent returns the first non-empty content attribute among the
// given selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
