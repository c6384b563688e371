package newsapi

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "TechPulse", 5*time.Second), server
}

func TestResolveFirstTierWins(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/getTrendingNews", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "From trending"}, {"title": "Also trending"}]`))
	})
	mux.HandleFunc("/api/news/category/Tech", func(w http.ResponseWriter, r *http.Request) {
		t.Error("fallback tier must not be called when the first tier answers")
	})
	client, _ := newTestClient(t, mux)

	items := client.Resolve(t.Context(), TrendingTiers(11))
	require.Equal(t, []string{"From trending", "Also trending"}, titles(items))
}

func TestResolveShortFirstTierStillWins(t *testing.T) {
	// two records on the specific tier beat five on the broad one
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/subcategory/AI", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "AI one"}, {"title": "AI two"}]`))
	})
	mux.HandleFunc("/api/news/category/Tech", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "a"},{"title": "b"},{"title": "c"},{"title": "d"},{"title": "e"}]`))
	})
	client, _ := newTestClient(t, mux)

	items := client.Resolve(t.Context(), SubcategoryTiers("AI", 6))
	require.Equal(t, []string{"AI one", "AI two"}, titles(items))
}

func TestResolveAdvancesThroughFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/getTodayNews", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/api/news/category/Tech", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "Fallback story"}]`))
	})
	client, _ := newTestClient(t, mux)

	items := client.Resolve(t.Context(), TodayTiers(40))
	require.Equal(t, []string{"Fallback story"}, titles(items))
}

func TestResolveEmptyAndMalformedAdvanceLikeErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/subcategory/Web3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/news/category/Tech", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "Broad tier"}]`))
	})
	client, _ := newTestClient(t, mux)

	items := client.Resolve(t.Context(), SubcategoryTiers("Web3", 6))
	require.Equal(t, []string{"Broad tier"}, titles(items))
}

func TestResolveExhaustionIsEmptyNotError(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	client, _ := newTestClient(t, mux)

	items := client.Resolve(t.Context(), TrendingTiers(11))
	require.Empty(t, items)
	require.Equal(t, int32(2), calls.Load(), "each tier is attempted exactly once")
}

func TestResolveDeduplicatesWithinTier(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/getLatestNews", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"title": "Story", "link": "https://a.example/1"},
			{"title": "Story", "link": "https://a.example/1"},
			{"title": "Other", "link": "https://a.example/2"}
		]`))
	})
	client, _ := newTestClient(t, mux)

	items := client.Resolve(t.Context(), LatestTiers(1000))
	require.Equal(t, []string{"Story", "Other"}, titles(items))
}

func TestResolveLimitedTruncates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/getTrendingNews", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"1"},{"title":"2"},{"title":"3"}]`))
	})
	client, _ := newTestClient(t, mux)

	require.Len(t, client.ResolveLimited(t.Context(), TrendingTiers(11), 2), 2)
	require.Len(t, client.ResolveLimited(t.Context(), TrendingTiers(11), 0), 3)
}

func TestSectionTiersRouting(t *testing.T) {
	// a tech subcategory goes through the subcategory endpoint first
	tiers := SectionTiers("AI", 6)
	require.Equal(t, "/api/news/subcategory/AI", tiers[0].Path)

	// anything else goes through its category listing
	tiers = SectionTiers("Sports", 30)
	require.Equal(t, "/api/news/category/Sports", tiers[0].Path)
	require.Equal(t, "/api/news/category/Tech", tiers[1].Path)
}

func TestAdminListSingleTier(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "Tech", q.Get("category"))
		require.Equal(t, "true", q.Get("allow"))
		require.Equal(t, "2", q.Get("page"))
		w.Write([]byte(`{"data": [{"title": "Row"}], "total": 21, "totalPages": 2}`))
	})
	client, _ := newTestClient(t, mux)

	allow := true
	res, err := client.AdminList(t.Context(), FeedQuery{Category: "Tech", Allow: &allow, Page: 2, PageSize: 20})
	require.NoError(t, err)
	require.True(t, res.Paginated)
	require.Equal(t, 21, res.Total)
	require.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Items, 1)
}

func TestAdminListSurfacesErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client, _ := newTestClient(t, mux)

	_, err := client.AdminList(t.Context(), FeedQuery{Page: 1, PageSize: 20})
	require.Error(t, err)
}
