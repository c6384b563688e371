package admin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

func loadedListing(t *testing.T, items ...newsapi.Article) *Listing {
	t.Helper()
	l := NewListing(20)
	gen := l.BeginLoad()
	require.True(t, l.ApplyResult(gen, newsapi.FeedResult{
		Items: items, Total: len(items), TotalPages: 1, Paginated: true,
	}))
	return l
}

func TestFilterChangeResetsPage(t *testing.T) {
	l := NewListing(20)
	gen := l.BeginLoad()
	l.ApplyResult(gen, newsapi.FeedResult{TotalPages: 5, Total: 90, Paginated: true})

	require.True(t, l.NextPage())
	require.True(t, l.NextPage())
	require.Equal(t, 3, l.Page())

	l.SetCategory("Tech")
	require.Equal(t, 1, l.Page(), "a filter change must restart from page 1")
	require.Equal(t, 1, l.Query().Page, "the next request carries both the filter and page 1")
	require.Equal(t, "Tech", l.Query().Category)

	// setting the same value again is a no-op
	l.NextPage()
	l.SetCategory("Tech")
	require.Equal(t, 2, l.Page())
}

func TestAllowFilterIsTristate(t *testing.T) {
	l := NewListing(20)
	require.Nil(t, l.Query().Allow)

	v := false
	l.SetAllow(&v)
	got := l.Query().Allow
	require.NotNil(t, got)
	require.False(t, *got)

	// same value through a different pointer stays a no-op
	l.NextPage()
	w := false
	l.SetAllow(&w)
	require.Equal(t, 2, l.Page())

	l.SetAllow(nil)
	require.Nil(t, l.Query().Allow)
	require.Equal(t, 1, l.Page())
}

func TestStaleLoadIsDropped(t *testing.T) {
	l := NewListing(20)
	oldGen := l.BeginLoad()
	newGen := l.BeginLoad()

	require.False(t, l.ApplyResult(oldGen, newsapi.FeedResult{Items: []newsapi.Article{{Title: "stale"}}}))
	require.True(t, l.ApplyResult(newGen, newsapi.FeedResult{Items: []newsapi.Article{{Title: "fresh"}}}))
	require.Equal(t, "fresh", l.Items()[0].Title)

	require.False(t, l.ApplyError(oldGen, errors.New("late failure")))
	require.Equal(t, PhaseLoaded, l.Phase())
}

func TestErrorKeepsStaleRecordsVisible(t *testing.T) {
	l := loadedListing(t, newsapi.Article{ID: "1", Title: "Visible"})

	gen := l.BeginLoad()
	require.True(t, l.ApplyError(gen, errors.New("boom")))

	require.Equal(t, PhaseError, l.Phase())
	require.Len(t, l.Items(), 1, "a failed refresh must not blank the table")
	require.Contains(t, l.Banner(), "boom")

	l.DismissBanner()
	require.Empty(t, l.Banner())
	require.Equal(t, PhaseLoaded, l.Phase())
	require.Len(t, l.Items(), 1)
}

func TestApplyResultClampsPage(t *testing.T) {
	l := NewListing(20)
	gen := l.BeginLoad()
	l.ApplyResult(gen, newsapi.FeedResult{TotalPages: 5, Total: 90, Paginated: true})
	for l.NextPage() {
	}
	require.Equal(t, 5, l.Page())

	// the filtered set shrank under us
	gen = l.BeginLoad()
	l.ApplyResult(gen, newsapi.FeedResult{TotalPages: 2, Total: 30, Paginated: true})
	require.Equal(t, 2, l.Page())
}

func TestUnpaginatedResultIsOnePage(t *testing.T) {
	l := NewListing(20)
	gen := l.BeginLoad()
	l.ApplyResult(gen, newsapi.FeedResult{Items: []newsapi.Article{{Title: "a"}}})
	require.Equal(t, 1, l.TotalPages())
	require.False(t, l.NextPage())
}

func TestOptimisticToggleAndRollback(t *testing.T) {
	allowed := true
	l := loadedListing(t,
		newsapi.Article{ID: "1", Title: "One", Allowed: &allowed},
		newsapi.Article{ID: "2", Title: "Two"},
	)

	// flip a true flag down
	prev, next, ok := l.ToggleAllow("1")
	require.True(t, ok)
	require.False(t, next)
	require.NotNil(t, prev)
	require.True(t, *prev)
	require.False(t, *l.Items()[0].Allowed, "the flip shows before the server answers")

	// an unknown flag toggles to true
	prev2, next2, ok := l.ToggleAllow("2")
	require.True(t, ok)
	require.True(t, next2)
	require.Nil(t, prev2)

	_, _, ok = l.ToggleAllow("missing")
	require.False(t, ok)

	// server refused: restore and explain
	l.RollbackAllow("1", prev, "forbidden")
	require.True(t, *l.Items()[0].Allowed)
	require.Contains(t, l.Banner(), "forbidden")

	l.RollbackAllow("2", prev2, "")
	require.Nil(t, l.Items()[1].Allowed)
}

func TestRemoveItem(t *testing.T) {
	l := loadedListing(t,
		newsapi.Article{ID: "1", Title: "One"},
		newsapi.Article{ID: "2", Title: "Two"},
	)

	l.RemoveItem("1")
	require.Len(t, l.Items(), 1)
	require.Equal(t, "2", l.Items()[0].ID)
	require.Equal(t, 1, l.Total())

	l.RemoveItem("nope")
	require.Len(t, l.Items(), 1)
}
