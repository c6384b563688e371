package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/MayankLuthyagi/newsly/internal/config"
	"github.com/MayankLuthyagi/newsly/internal/feedcheck"
	"github.com/MayankLuthyagi/newsly/internal/list"
	"github.com/MayankLuthyagi/newsly/internal/session"
	"github.com/MayankLuthyagi/newsly/internal/setup"
	"github.com/MayankLuthyagi/newsly/internal/tui"
	"github.com/MayankLuthyagi/newsly/internal/version"
)

func main() {
	app := &cli.Command{
		Name:  "newsly",
		Usage: "Daily Brief Newsly in the terminal",
		Commands: []*cli.Command{
			{
				Name:  "browse",
				Usage: "Browse the news feed",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "section", Usage: "Starting section (Trending, Today, Latest, or a tech subcategory like AI)"},
					&cli.StringFlag{Name: "article", Usage: "Open an article directly by id"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					return tui.Run(ctx, cfg, c.String("section"), c.String("article"))
				},
			},
			{
				Name:  "list",
				Usage: "Print a section of the feed as plain text",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "section", Usage: "Section to list (default: Trending)"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum stories to print (default: 20)", Value: 20},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return list.Run(ctx, c.String("section"), c.Int("limit"), config.AppConfigLoader())
				},
			},
			{
				Name:  "admin",
				Usage: "Open the moderation console",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					return tui.RunAdmin(ctx, cfg)
				},
			},
			{
				Name:  "setup",
				Usage: "Write the initial configuration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return setup.Run(ctx)
				},
			},
			{
				Name:  "check-source",
				Usage: "Fetch and validate an RSS source URL",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "url",
						UsageText: "feed url",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					rep, err := feedcheck.New(cfg.Timeout()).Check(ctx, c.StringArg("url"))
					if err != nil {
						return err
					}
					fmt.Printf("Feed OK: %s (%d entries)\n", rep.Title, rep.ItemCount)
					if rep.LatestTitle != "" {
						fmt.Printf("Latest entry: %s\n", rep.LatestTitle)
					}
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "Forget the saved admin session",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					store, err := session.Open(cfg.SessionDBPath)
					if err != nil {
						return err
					}
					defer store.Close()
					if err := store.Clear(ctx); err != nil {
						return err
					}
					fmt.Println("Admin session cleared")
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Println(version.GetVersion())
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
