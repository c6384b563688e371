package newsapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEnvelopeShapes(t *testing.T) {
	bare := `[
		{"title": "First", "link": "https://example.com/1"},
		{"title": "Second", "url": "https://example.com/2"}
	]`
	wrapped := `{"category": "Tech", "total": 2, "news": [
		{"title": "First", "link": "https://example.com/1"},
		{"title": "Second", "url": "https://example.com/2"}
	]}`
	paged := `{"data": [
		{"title": "First", "link": "https://example.com/1"},
		{"title": "Second", "url": "https://example.com/2"}
	], "total": 2, "totalPages": 1}`

	a := Normalize([]byte(bare), "TechPulse")
	b := Normalize([]byte(wrapped), "TechPulse")
	c := Normalize([]byte(paged), "TechPulse")

	// the same records must come out regardless of the wrapper
	require.Equal(t, a.Items, b.Items)
	require.Equal(t, a.Items, c.Items)

	require.Len(t, a.Items, 2)
	require.Equal(t, "First", a.Items[0].Title)
	require.Equal(t, "https://example.com/2", a.Items[1].Link)

	require.False(t, a.Paginated)
	require.False(t, b.Paginated)
	require.True(t, c.Paginated)
	require.Equal(t, 1, c.TotalPages)
}

func TestNormalizeFieldAliases(t *testing.T) {
	raw := `[{
		"_id": 42,
		"title": "Aliased",
		"description": "from description",
		"url": "https://example.com/a",
		"published_at": "2026-08-30T10:00:00Z",
		"urlToImage": "https://example.com/img.jpg",
		"count": 7
	}]`

	res := Normalize([]byte(raw), "TechPulse")
	require.Len(t, res.Items, 1)

	a := res.Items[0]
	require.Equal(t, "42", a.ID)
	require.Equal(t, "from description", a.Summary)
	require.Equal(t, "https://example.com/a", a.Link)
	require.Equal(t, "2026-08-30T10:00:00Z", a.Date)
	require.Equal(t, "https://example.com/img.jpg", a.Image)
	require.Equal(t, 7, a.ViewCount)
}

func TestNormalizeAliasPrecedence(t *testing.T) {
	raw := `[{
		"title": "Both spellings",
		"link": "https://example.com/canonical",
		"url": "https://example.com/fallback",
		"date": "2026-08-30",
		"pub_date": "2020-01-01",
		"image": "https://example.com/canonical.jpg",
		"image_url": "https://example.com/fallback.jpg"
	}]`

	res := Normalize([]byte(raw), "TechPulse")
	require.Len(t, res.Items, 1)
	require.Equal(t, "https://example.com/canonical", res.Items[0].Link)
	require.Equal(t, "2026-08-30", res.Items[0].Date)
	require.Equal(t, "https://example.com/canonical.jpg", res.Items[0].Image)
}

func TestNormalizeDropsUntitledAndDefaultsSource(t *testing.T) {
	raw := `[
		{"title": "Named", "source_name": "Silicon Wire"},
		{"title": "Unnamed source"},
		{"summary": "no title at all"},
		{"title": "   "}
	]`

	res := Normalize([]byte(raw), "TechPulse")
	require.Len(t, res.Items, 2)
	require.Equal(t, "Silicon Wire", res.Items[0].SourceName)
	require.Equal(t, "TechPulse", res.Items[1].SourceName)
}

func TestNormalizeUnknownShapes(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":         "",
		"malformed":     `{"news": [`,
		"scalar":        `42`,
		"unknown keys":  `{"results": []}`,
		"html error":    `<html><body>502 Bad Gateway</body></html>`,
		"null":          `null`,
		"object record": `{"title": "single record, not a list"}`,
	} {
		res := Normalize([]byte(raw), "TechPulse")
		require.Empty(t, res.Items, "shape %q should normalize to empty", name)
	}
}

func TestNormalizeTotalFallsBackToLength(t *testing.T) {
	raw := `{"news": [{"title": "One"}, {"title": "Two"}]}`
	res := Normalize([]byte(raw), "TechPulse")
	require.Equal(t, 2, res.Total)
}

func TestDecodeArticle(t *testing.T) {
	a, ok := DecodeArticle([]byte(`{"_id": "abc", "title": "Solo", "content": "<p>body</p>"}`), "TechPulse")
	require.True(t, ok)
	require.Equal(t, "abc", a.ID)
	require.Equal(t, "<p>body</p>", a.HTMLContent)
	require.Equal(t, "TechPulse", a.SourceName)

	_, ok = DecodeArticle([]byte(`[]`), "TechPulse")
	require.False(t, ok)
	_, ok = DecodeArticle([]byte(`{"summary": "no title"}`), "TechPulse")
	require.False(t, ok)
}
