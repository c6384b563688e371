package newsapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MayankLuthyagi/newsly/internal/httpclient"
)

// ErrNotFound reports a by-id lookup the service answered with 404, or a
// record the detail reconciler could not recover from anywhere.
var ErrNotFound = errors.New("article not found")

// ErrRejected reports a mutation the service refused.
var ErrRejected = errors.New("request rejected by content service")

// EndpointSpec is one fully-formed candidate request: one tier of an
// ordered fallback list.
type EndpointSpec struct {
	Method string
	Path   string
	Query  url.Values
}

func (e EndpointSpec) urlString(base string) string {
	u := base + e.Path
	if len(e.Query) > 0 {
		u += "?" + e.Query.Encode()
	}
	return u
}

// Client talks to the remote content service. All list reads flow through
// Resolve so every surface shares the same normalize/dedupe/fallback
// policy instead of repeating it.
type Client struct {
	http          *httpclient.Client
	baseURL       string
	defaultSource string
	logger        *log.Logger
}

// New creates a content-service client for the given base URL.
func New(baseURL, defaultSource string, timeout time.Duration) *Client {
	return &Client{
		http:          httpclient.New(timeout),
		baseURL:       baseURL,
		defaultSource: defaultSource,
	}
}

// SetLogger enables tier-advance diagnostics. Nil disables them.
func (c *Client) SetLogger(l *log.Logger) { c.logger = l }

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// fetch runs one EndpointSpec and returns the raw body on a 2xx answer.
func (c *Client) fetch(ctx context.Context, spec EndpointSpec) ([]byte, error) {
	resp, err := c.http.Do(ctx, spec.Method, spec.urlString(c.baseURL), nil, nil)
	if err != nil {
		return nil, err
	}
	body, err := httpclient.ReadBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, spec.Path)
	}
	return body, nil
}

// mutate performs a JSON mutation and maps non-2xx answers to ErrRejected.
func (c *Client) mutate(ctx context.Context, method, path string, payload any) error {
	resp, err := c.http.DoJSON(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if _, err := httpclient.ReadBody(resp); err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d for %s", ErrRejected, resp.StatusCode, path)
	}
	return nil
}

// --- listing endpoints ---

func listQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// CategoryEndpoint lists a top-level category, optionally filtered by
// subcategory on the server side.
func CategoryEndpoint(category, subcategory string, limit int) EndpointSpec {
	q := listQuery(limit)
	if subcategory != "" {
		q.Set("subcategory", subcategory)
	}
	return EndpointSpec{Method: http.MethodGet, Path: "/api/news/category/" + url.PathEscape(category), Query: q}
}

// SubcategoryEndpoint lists one technology subcategory.
func SubcategoryEndpoint(subcategory string, limit int) EndpointSpec {
	return EndpointSpec{Method: http.MethodGet, Path: "/api/news/subcategory/" + url.PathEscape(subcategory), Query: listQuery(limit)}
}

func specialEndpoint(name, category string, limit int) EndpointSpec {
	q := listQuery(limit)
	if category != "" {
		q.Set("category", category)
	}
	return EndpointSpec{Method: http.MethodGet, Path: "/api/news/" + name, Query: q}
}

// TrendingEndpoint, TodayEndpoint and LatestEndpoint hit the specialized
// lists, which answer with bare arrays and may legitimately be empty.
func TrendingEndpoint(category string, limit int) EndpointSpec {
	return specialEndpoint("getTrendingNews", category, limit)
}

func TodayEndpoint(category string, limit int) EndpointSpec {
	return specialEndpoint("getTodayNews", category, limit)
}

func LatestEndpoint(category string, limit int) EndpointSpec {
	return specialEndpoint("getLatestNews", category, limit)
}

// ByIDEndpoint is the canonical detail fetch path.
func ByIDEndpoint(id string) EndpointSpec {
	return EndpointSpec{Method: http.MethodGet, Path: "/api/news/" + url.PathEscape(id)}
}

// RelatedEndpoint lists candidates for the related-articles rail.
func RelatedEndpoint(category string, limit int) EndpointSpec {
	q := listQuery(limit)
	q.Set("category", category)
	return EndpointSpec{Method: http.MethodGet, Path: "/api/news", Query: q}
}

// AdminListEndpoint builds the paginated admin listing request.
func AdminListEndpoint(fq FeedQuery) EndpointSpec {
	q := url.Values{}
	if fq.Category != "" {
		q.Set("category", fq.Category)
	}
	if fq.Source != "" {
		q.Set("source", fq.Source)
	}
	if fq.Allow != nil {
		q.Set("allow", strconv.FormatBool(*fq.Allow))
	}
	if fq.Page > 0 {
		q.Set("page", strconv.Itoa(fq.Page))
	}
	if fq.PageSize > 0 {
		q.Set("limit", strconv.Itoa(fq.PageSize))
	}
	return EndpointSpec{Method: http.MethodGet, Path: "/api/news", Query: q}
}

// AdminList fetches one page of the admin article table. Unlike the
// public surfaces this is a single-tier read: the admin needs to see the
// failure, not a silently degraded list.
func (c *Client) AdminList(ctx context.Context, fq FeedQuery) (FeedResult, error) {
	body, err := c.fetch(ctx, AdminListEndpoint(fq))
	if err != nil {
		return FeedResult{}, err
	}
	return Normalize(body, c.defaultSource), nil
}

// --- single-record reads ---

// ArticleByID fetches the full record for one article.
func (c *Client) ArticleByID(ctx context.Context, id string) (Article, error) {
	body, err := c.fetch(ctx, ByIDEndpoint(id))
	if err != nil {
		return Article{}, err
	}
	a, ok := DecodeArticle(body, c.defaultSource)
	if !ok {
		return Article{}, ErrNotFound
	}
	return a, nil
}

// SourceByID resolves a source record, used to display a source name
// when an article record does not inline one.
func (c *Client) SourceByID(ctx context.Context, id string) (Source, error) {
	body, err := c.fetch(ctx, EndpointSpec{Method: http.MethodGet, Path: "/api/sources/" + url.PathEscape(id)})
	if err != nil {
		return Source{}, err
	}
	var s Source
	if err := decodeJSON(body, &s); err != nil {
		return Source{}, err
	}
	return s, nil
}

// Sources lists every configured source.
func (c *Client) Sources(ctx context.Context) ([]Source, error) {
	body, err := c.fetch(ctx, EndpointSpec{Method: http.MethodGet, Path: "/api/sources"})
	if err != nil {
		return nil, err
	}
	var out []Source
	if err := decodeJSON(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- mutations ---

func (c *Client) CreateArticle(ctx context.Context, in ArticleInput) error {
	return c.mutate(ctx, http.MethodPost, "/api/news", in)
}

func (c *Client) UpdateArticle(ctx context.Context, id string, in ArticleInput) error {
	return c.mutate(ctx, http.MethodPut, "/api/news/"+url.PathEscape(id), in)
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/news/"+url.PathEscape(id), nil)
}

// SetAllow flips the moderation flag on one article.
func (c *Client) SetAllow(ctx context.Context, id string, allow bool) error {
	return c.mutate(ctx, http.MethodPut, "/api/news/"+url.PathEscape(id)+"/allow", map[string]bool{"allow": allow})
}

// IncrementView fires the best-effort view counter. Failures are
// swallowed; losing a count must never affect the reader.
func (c *Client) IncrementView(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := c.mutate(ctx, http.MethodPost, "/api/news/"+url.PathEscape(id)+"/view", nil); err != nil {
		c.logf("view count increment failed for %s: %v", id, err)
	}
}

func (c *Client) CreateSource(ctx context.Context, in SourceInput) error {
	return c.mutate(ctx, http.MethodPost, "/api/sources", in)
}

func (c *Client) UpdateSource(ctx context.Context, id string, in SourceInput) error {
	return c.mutate(ctx, http.MethodPut, "/api/sources/"+url.PathEscape(id), in)
}

func (c *Client) DeleteSource(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/sources/"+url.PathEscape(id), nil)
}
