package newsapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Article is the canonical normalized record every surface renders.
// The service is not consistent about field names across endpoints
// (link vs url, date vs pub_date, image vs image_url), so decoding
// goes through a wire struct that accepts every observed spelling.
type Article struct {
	ID          string
	Title       string
	Summary     string
	HTMLContent string
	Link        string
	Date        string
	SourceID    string
	SourceName  string
	Category    string
	Subcategory string
	Image       string
	ViewCount   int
	Allowed     *bool

	// NeedsFullFetch marks a navigation-supplied record whose body must
	// be re-fetched before the detail view can trust it. Never on the wire.
	NeedsFullFetch bool
}

// FirstCategory returns the first segment of a possibly comma-separated
// category string.
func (a Article) FirstCategory() string {
	return firstSegment(a.Category)
}

// Identity keys used for dedup and related-list exclusion.
func (a Article) sameStory(b Article) bool {
	if a.Title != "" && a.Title == b.Title {
		return true
	}
	if a.Link != "" && b.Link != "" && a.Link == b.Link {
		return true
	}
	return false
}

// Source is an RSS source record from the admin area.
type Source struct {
	ID         string
	SourceName string
	RSSURL     string
	Category   string
}

// UnmarshalJSON accepts both id spellings, as strings or numbers.
func (s *Source) UnmarshalJSON(data []byte) error {
	var w struct {
		ID         json.RawMessage `json:"id"`
		MongoID    json.RawMessage `json:"_id"`
		SourceName string          `json:"source_name"`
		RSSURL     string          `json:"rss_url"`
		Category   string          `json:"category"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.ID = rawToString(w.ID, w.MongoID)
	s.SourceName = w.SourceName
	s.RSSURL = w.RSSURL
	s.Category = w.Category
	return nil
}

// FeedQuery describes one admin listing request.
type FeedQuery struct {
	Category string
	Source   string
	// Allow is tri-state: nil means no filter.
	Allow    *bool
	Page     int
	PageSize int
}

// FeedResult is one resolved page of articles. Total and TotalPages are
// authoritative only when Paginated is set (the server did the paging);
// otherwise the whole sequence is one page and callers slice it locally.
type FeedResult struct {
	Items      []Article
	Total      int
	TotalPages int
	Paginated  bool
}

// ArticleInput is the admin create/update payload. Field names match the
// mutation contract, which differs from the read-side records.
type ArticleInput struct {
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Summary       string `json:"summary"`
	Link          string `json:"link"`
	SourceID      string `json:"source_id"`
	Category      string `json:"category"`
	PubDate       string `json:"pub_date"`
	ImageURL      string `json:"image_url"`
	Count         int    `json:"count"`
}

// SourceInput is the admin source create/update payload.
type SourceInput struct {
	SourceName string `json:"source_name"`
	RSSURL     string `json:"rss_url"`
	Category   string `json:"category"`
}

// wireArticle accepts every field spelling the endpoints emit.
type wireArticle struct {
	ID          json.RawMessage `json:"id"`
	MongoID     json.RawMessage `json:"_id"`
	Title       string          `json:"title"`
	Headline    string          `json:"headline"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	HTMLContent string          `json:"htmlContent"`
	Content     string          `json:"content"`
	Link        string          `json:"link"`
	URL         string          `json:"url"`
	Date        string          `json:"date"`
	PubDate     string          `json:"pub_date"`
	PublishedAt string          `json:"published_at"`
	SourceID    json.RawMessage `json:"source_id"`
	SourceName  string          `json:"source_name"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Image       string          `json:"image"`
	ImageURL    string          `json:"image_url"`
	URLToImage  string          `json:"urlToImage"`
	Count       int             `json:"count"`
	Allow       *bool           `json:"allow"`
}

func (w wireArticle) toArticle() Article {
	return Article{
		ID:          rawToString(w.ID, w.MongoID),
		Title:       strings.TrimSpace(firstNonEmpty(w.Title, w.Headline)),
		Summary:     firstNonEmpty(w.Summary, w.Description),
		HTMLContent: firstNonEmpty(w.HTMLContent, w.Content),
		Link:        firstNonEmpty(w.Link, w.URL),
		Date:        firstNonEmpty(w.Date, w.PubDate, w.PublishedAt),
		SourceID:    rawToString(w.SourceID),
		SourceName:  w.SourceName,
		Category:    w.Category,
		Subcategory: w.Subcategory,
		Image:       strings.TrimSpace(firstNonEmpty(w.Image, w.ImageURL, w.URLToImage)),
		ViewCount:   w.Count,
		Allowed:     w.Allow,
	}
}

// rawToString renders the first decodable raw value as a string.
// Identifiers arrive as JSON strings or numbers depending on the endpoint.
func rawToString(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if strings.TrimSpace(s) != "" {
				return s
			}
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstSegment(category string) string {
	if category == "" {
		return ""
	}
	seg, _, _ := strings.Cut(category, ",")
	return strings.TrimSpace(seg)
}
