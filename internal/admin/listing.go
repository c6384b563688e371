// Package admin holds the page/filter state machine behind the
// administrative article table. It is UI-agnostic: the TUI drives it with
// events and renders whatever it holds.
package admin

import (
	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

// Phase is the listing lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

// Listing maintains the visible record set, the pagination metadata and
// the active filters for the admin article table.
//
// Two rules shape every transition: a filter change resets the page to 1
// so the index can never point past the filtered result count, and a
// failed load keeps the previously loaded records visible behind a
// dismissible banner instead of blanking the table.
type Listing struct {
	phase    Phase
	page     int
	pageSize int
	category string
	source   string
	allow    *bool

	items      []newsapi.Article
	total      int
	totalPages int

	banner string
	gen    int
}

// NewListing starts idle on page 1.
func NewListing(pageSize int) *Listing {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Listing{phase: PhaseIdle, page: 1, pageSize: pageSize}
}

func (l *Listing) Phase() Phase                 { return l.phase }
func (l *Listing) Page() int                    { return l.page }
func (l *Listing) TotalPages() int              { return l.totalPages }
func (l *Listing) Total() int                   { return l.total }
func (l *Listing) Items() []newsapi.Article     { return l.items }
func (l *Listing) Banner() string               { return l.banner }
func (l *Listing) Category() string             { return l.category }
func (l *Listing) SourceFilter() string         { return l.source }
func (l *Listing) AllowFilter() *bool           { return l.allow }

// Query is the request the current state calls for.
func (l *Listing) Query() newsapi.FeedQuery {
	return newsapi.FeedQuery{
		Category: l.category,
		Source:   l.source,
		Allow:    l.allow,
		Page:     l.page,
		PageSize: l.pageSize,
	}
}

// SetCategory, SetSource and SetAllow change a filter and reset the page.
func (l *Listing) SetCategory(category string) {
	if l.category == category {
		return
	}
	l.category = category
	l.page = 1
}

func (l *Listing) SetSource(source string) {
	if l.source == source {
		return
	}
	l.source = source
	l.page = 1
}

func (l *Listing) SetAllow(allow *bool) {
	if equalTristate(l.allow, allow) {
		return
	}
	l.allow = allow
	l.page = 1
}

// NextPage and PrevPage move within the known page range.
func (l *Listing) NextPage() bool {
	if l.totalPages > 0 && l.page >= l.totalPages {
		return false
	}
	l.page++
	return true
}

func (l *Listing) PrevPage() bool {
	if l.page <= 1 {
		return false
	}
	l.page--
	return true
}

// BeginLoad enters the loading phase and returns the generation the
// eventual result must present to be applied. A newer BeginLoad
// invalidates every older in-flight load.
func (l *Listing) BeginLoad() int {
	l.phase = PhaseLoading
	l.gen++
	return l.gen
}

// ApplyResult commits a load atomically: records and pagination metadata
// swap together, never a half-updated page. Stale generations are dropped.
func (l *Listing) ApplyResult(gen int, res newsapi.FeedResult) bool {
	if gen != l.gen {
		return false
	}
	l.items = res.Items
	l.total = res.Total
	if res.Paginated {
		l.totalPages = res.TotalPages
	} else {
		l.totalPages = 1
	}
	if l.totalPages > 0 && l.page > l.totalPages {
		l.page = l.totalPages
	}
	l.phase = PhaseLoaded
	l.banner = ""
	return true
}

// ApplyError surfaces a failed load without clearing the loaded set.
func (l *Listing) ApplyError(gen int, err error) bool {
	if gen != l.gen {
		return false
	}
	l.phase = PhaseError
	if err != nil {
		l.banner = "Failed to load articles: " + err.Error()
	} else {
		l.banner = "Failed to load articles"
	}
	return true
}

// DismissBanner clears the error banner; the stale records stay visible.
func (l *Listing) DismissBanner() {
	l.banner = ""
	if l.phase == PhaseError {
		l.phase = PhaseLoaded
	}
}

// ToggleAllow flips the moderation flag locally before the server
// answers and returns the previous value for rollback. The visible set
// is not re-fetched on success; that would reorder the table under the
// admin's cursor.
func (l *Listing) ToggleAllow(id string) (prev *bool, next bool, ok bool) {
	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		prev = l.items[i].Allowed
		next = prev == nil || !*prev
		v := next
		l.items[i].Allowed = &v
		return prev, next, true
	}
	return nil, false, false
}

// RollbackAllow restores a flag the server refused to change.
func (l *Listing) RollbackAllow(id string, prev *bool, reason string) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Allowed = prev
			break
		}
	}
	if reason != "" {
		l.banner = "Moderation change rejected: " + reason
	} else {
		l.banner = "Moderation change rejected"
	}
}

// RemoveItem drops a deleted article from the visible set.
func (l *Listing) RemoveItem(id string) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			if l.total > 0 {
				l.total--
			}
			return
		}
	}
}

func equalTristate(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
