package tui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// relativeDate formats a publication timestamp the way the cards do:
// "just now", "5m ago", "3h ago", "2d ago", then the plain date.
func relativeDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func shortDate(s string) string {
	if t, ok := parseDate(s); ok {
		return t.Format("2006-01-02")
	}
	return truncateString(s, 10)
}

// displayImage resolves what the image line of a card or detail view
// shows. A usable URL is shown as-is; anything else resolves through the
// category fallback, retried at most once before giving up on imagery.
func displayImage(a newsapi.Article) string {
	img := newsapi.ResolveImage(a)
	if usableImageURL(img) || !strings.Contains(img, "/") {
		return img
	}
	// broken URL: one reactive retry via the category table
	if retry := newsapi.ImageAfterError(a.Category, img); retry != "" {
		return retry
	}
	return ""
}

func usableImageURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

func allowLabel(allowed *bool) string {
	switch {
	case allowed == nil:
		return "-"
	case *allowed:
		return "yes"
	default:
		return "no"
	}
}
