package newsapi

import (
	"context"
)

// ReconcileDetail decides how to produce the record behind a detail
// view, once per navigation event.
//
// A navigation-supplied partial that already carries its body is used
// as-is with no network call. A partial that lacks the body (or is
// flagged NeedsFullFetch) and knows its id triggers one by-id fetch
// sequence; when that fails completely the partial itself is the result,
// never an error. With no partial at all, the route key is the only
// hope: it is tried as a record id, then as a title slug against the
// broad listing; when both fail that is the one terminal not-found case.
func (c *Client) ReconcileDetail(ctx context.Context, partial *Article, id string) (Article, error) {
	if partial != nil {
		if partial.HTMLContent != "" && !partial.NeedsFullFetch {
			return *partial, nil
		}
		fetchID := partial.ID
		if fetchID == "" {
			fetchID = id
		}
		if fetchID == "" {
			return *partial, nil
		}
		full, err := c.ArticleByID(ctx, fetchID)
		if err != nil {
			c.logf("detail re-fetch failed for %s, keeping navigation record: %v", fetchID, err)
			return *partial, nil
		}
		return merged(*partial, full), nil
	}

	if id == "" {
		return Article{}, ErrNotFound
	}
	full, err := c.ArticleByID(ctx, id)
	if err == nil {
		return full, nil
	}
	// The route key may be a title slug rather than a record id; scan
	// the broad listing for a title that slugs to it before giving up.
	if full, ok := c.articleBySlug(ctx, id); ok {
		return full, nil
	}
	return Article{}, ErrNotFound
}

func (c *Client) articleBySlug(ctx context.Context, key string) (Article, bool) {
	if TitleSlug(key) != key {
		return Article{}, false
	}
	for _, a := range c.Resolve(ctx, LatestTiers(0)) {
		if TitleSlug(a.Title) == key {
			return a, true
		}
	}
	return Article{}, false
}

// merged overlays the freshly fetched record on the navigation partial.
// Fetched fields win; the partial only fills holes the server left.
func merged(partial, full Article) Article {
	out := full
	if out.ID == "" {
		out.ID = partial.ID
	}
	if out.Summary == "" {
		out.Summary = partial.Summary
	}
	if out.Link == "" {
		out.Link = partial.Link
	}
	if out.Date == "" {
		out.Date = partial.Date
	}
	if out.Category == "" {
		out.Category = partial.Category
	}
	if out.Subcategory == "" {
		out.Subcategory = partial.Subcategory
	}
	if out.Image == "" {
		out.Image = partial.Image
	}
	return out
}

// Related fetches the same-subcategory (falling back to same-category)
// rail for a resolved article, excluding the article itself by the
// dedupe identity rule. An empty result is a normal terminal state.
func (c *Client) Related(ctx context.Context, current Article, limit int) []Article {
	var tiers []EndpointSpec
	if current.Subcategory != "" {
		tiers = append(tiers, SubcategoryEndpoint(current.Subcategory, limit))
	}
	if cat := current.FirstCategory(); cat != "" {
		tiers = append(tiers, RelatedEndpoint(cat, limit))
	}
	if len(tiers) == 0 {
		return nil
	}
	items := ExcludeStory(c.Resolve(ctx, tiers), current)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// DisplaySourceName resolves the name shown next to an article: the
// inlined source_name when present, a source lookup by id as fallback,
// the configured brand when neither works.
func (c *Client) DisplaySourceName(ctx context.Context, a Article) string {
	if a.SourceName != "" {
		return a.SourceName
	}
	if a.SourceID != "" {
		if src, err := c.SourceByID(ctx, a.SourceID); err == nil && src.SourceName != "" {
			return src.SourceName
		}
	}
	return c.defaultSource
}
