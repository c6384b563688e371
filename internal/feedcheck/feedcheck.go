// Package feedcheck validates RSS/Atom source URLs before the admin
// saves them, by fetching and parsing the feed for real.
package feedcheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Report summarizes a successfully parsed feed.
type Report struct {
	Title     string
	ItemCount int
	// LatestTitle is the newest entry's title, empty for an empty feed.
	LatestTitle string
}

// Checker fetches and parses candidate feeds.
type Checker struct {
	parser *gofeed.Parser
}

func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: timeout}
	return &Checker{parser: p}
}

// Check fetches rawURL and parses it as a feed. A feed that fetches and
// parses but contains no entries is still valid.
func (c *Checker) Check(ctx context.Context, rawURL string) (Report, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Report{}, errors.New("feed URL is empty")
	}
	u, err := neturl.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Report{}, fmt.Errorf("not an http(s) URL: %s", rawURL)
	}

	feed, err := c.parser.ParseURLWithContext(rawURL, ctx)
	if err != nil {
		return Report{}, fmt.Errorf("feed did not parse: %w", err)
	}

	rep := Report{Title: feed.Title, ItemCount: len(feed.Items)}
	if len(feed.Items) > 0 {
		rep.LatestTitle = feed.Items[0].Title
	}
	return rep, nil
}
