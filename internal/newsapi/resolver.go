package newsapi

import (
	"context"
)

// techSubcategories are the labels routed to the subcategory endpoint
// instead of the category one. Anything else is a plain category.
var techSubcategories = map[string]struct{}{
	"AI":                {},
	"Cybersecurity":     {},
	"Quantum Computing": {},
	"AR/VR":             {},
	"Edge Computing":    {},
	"6G & IoT":          {},
	"Sustainable Tech":  {},
	"Gadgets":           {},
	"Internet":          {},
	"Gaming":            {},
	"Cloud":             {},
	"Semiconductors":    {},
	"Web3":              {},
	"Green Tech":        {},
	"EdTech":            {},
	"HealthTech":        {},
	"Autotech":          {},
	"Space Tech":        {},
}

// IsTechSubcategory reports whether label names a subcategory of the
// technology vertical.
func IsTechSubcategory(label string) bool {
	_, ok := techSubcategories[label]
	return ok
}

// Resolve walks an ordered list of candidate endpoints and returns the
// first non-empty normalized, deduplicated sequence. Transport errors,
// non-2xx answers, unknown shapes and empty lists all mean the same
// thing here: advance to the next tier. Exhausting every tier returns an
// empty sequence, never an error; the caller renders "no content", not a
// failure. Tiers are ordered most specific first and attempted once.
func (c *Client) Resolve(ctx context.Context, tiers []EndpointSpec) []Article {
	for _, tier := range tiers {
		if ctx.Err() != nil {
			return nil
		}
		body, err := c.fetch(ctx, tier)
		if err != nil {
			c.logf("tier %s failed: %v", tier.Path, err)
			continue
		}
		items := Dedupe(Normalize(body, c.defaultSource).Items)
		if len(items) == 0 {
			c.logf("tier %s returned no usable records", tier.Path)
			continue
		}
		return items
	}
	return nil
}

// ResolveLimited resolves and truncates to a display count.
func (c *Client) ResolveLimited(ctx context.Context, tiers []EndpointSpec, limit int) []Article {
	items := c.Resolve(ctx, tiers)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Tier tables for the reading surfaces: the specialized list first, the
// broad Tech category listing as the safety net.

func TrendingTiers(limit int) []EndpointSpec {
	return []EndpointSpec{
		TrendingEndpoint("Tech", limit),
		CategoryEndpoint("Tech", "", limit),
	}
}

func TodayTiers(limit int) []EndpointSpec {
	return []EndpointSpec{
		TodayEndpoint("Tech", limit),
		CategoryEndpoint("Tech", "", limit),
	}
}

func LatestTiers(limit int) []EndpointSpec {
	return []EndpointSpec{
		LatestEndpoint("Tech", limit),
		CategoryEndpoint("Tech", "", 0),
	}
}

// SubcategoryTiers prefers the dedicated subcategory listing and falls
// back to the category listing with a server-side subcategory filter.
func SubcategoryTiers(subcategory string, limit int) []EndpointSpec {
	return []EndpointSpec{
		SubcategoryEndpoint(subcategory, limit),
		CategoryEndpoint("Tech", subcategory, limit),
	}
}

// SectionTiers routes a navigation label: tech subcategories go through
// the subcategory chain, anything else through its category listing with
// the Tech listing as last resort.
func SectionTiers(label string, limit int) []EndpointSpec {
	if IsTechSubcategory(label) {
		return SubcategoryTiers(label, limit)
	}
	return []EndpointSpec{
		CategoryEndpoint(label, "", limit),
		CategoryEndpoint("Tech", "", limit),
	}
}
