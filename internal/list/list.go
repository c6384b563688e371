package list

import (
	"context"
	"fmt"
	"strings"

	"github.com/MayankLuthyagi/newsly/internal/config"
	"github.com/MayankLuthyagi/newsly/internal/newsapi"
)

// Run prints a section of the feed as plain text, for piping into
// grep or a pager without the TUI.
func Run(ctx context.Context, section string, limit int, load config.ConfigLoad) error {
	cfg, err := load()
	if err != nil {
		return err
	}

	client := newsapi.New(cfg.BaseURL, cfg.DefaultSourceName, cfg.Timeout())

	var tiers []newsapi.EndpointSpec
	switch strings.ToLower(section) {
	case "", "trending":
		section = "Trending"
		tiers = newsapi.TrendingTiers(11)
	case "today":
		section = "Today"
		tiers = newsapi.TodayTiers(40)
	case "latest":
		section = "Latest"
		tiers = newsapi.LatestTiers(1000)
	default:
		tiers = newsapi.SectionTiers(section, 30)
	}

	items := client.ResolveLimited(ctx, tiers, limit)
	if len(items) == 0 {
		fmt.Printf("No %s news available right now.\n", section)
		return nil
	}

	fmt.Printf("%d stories (%s):\n\n", len(items), section)

	for _, item := range items {
		fmt.Printf("Title: %s\n", item.Title)
		source := item.SourceName
		if source == "" {
			source = cfg.DefaultSourceName
		}
		fmt.Printf("Source: %s\n", source)
		if item.Date != "" {
			fmt.Printf("Date: %s\n", item.Date)
		}
		if item.Summary != "" {
			preview := item.Summary
			if len(preview) > 400 {
				preview = preview[:400] + "..."
			}
			fmt.Printf("Summary: %s\n", preview)
		}
		if item.Link != "" {
			fmt.Printf("Link: %s\n", item.Link)
		}
		fmt.Println(strings.Repeat("-", 80))
	}

	return nil
}
