package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gamehub/internal/fetcher"
	"gamehub/internal/reviews"
	"gamehub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	global := flag.NewFlagSet("gamehub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	pages := global.Int("pages", 1, "pages to load for category/search browsing")
	limit := global.Int("limit", 10, "items per page")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	logger := zap.NewNop()
	ctrl := fetcher.New(*baseURL, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch args[0] {
	case "popular", "trending", "top-rated", "new-releases":
		listCommand(ctx, ctrl, "/games/"+args[0]+"?limit="+strconv.Itoa(*limit))
	case "search":
		if len(args) < 2 {
			log.Fatal("search requires a query")
		}
		browse(ctx, ctrl, *pages, *limit, func(p *fetcher.Pager) { p.SetQuery(args[1]) })
	case "category":
		if len(args) < 2 {
			log.Fatal("category requires a name")
		}
		browse(ctx, ctrl, *pages, *limit, func(p *fetcher.Pager) { p.SetCategory(args[1]) })
	case "game":
		if len(args) < 2 {
			log.Fatal("game requires an id")
		}
		gameCommand(ctx, ctrl, args[1])
	case "review-id":
		if len(args) < 2 {
			log.Fatal("review-id requires an identifier")
		}
		meta := reviews.Describe(args[1])
		out, _ := json.MarshalIndent(meta, "", "  ")
		fmt.Println(string(out))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gamehub [-api URL] [-pages N] [-limit N] <command>

commands:
  popular | trending | top-rated | new-releases
  category <name>     browse a category with load-more pagination
  search <query>      search the catalog
  game <id>           show one game with its review breakdown
  review-id <id>      inspect a rv_* review identifier`)
}

func listCommand(ctx context.Context, ctrl *fetcher.Controller, path string) {
	res, err := ctrl.Fetch(ctx, path, fetcher.DefaultPolicy())
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	games, err := res.Games()
	if err != nil {
		log.Fatalf("decode: %v", err)
	}
	printGames(games, res.Envelope.Fallback)
}

func browse(ctx context.Context, ctrl *fetcher.Controller, pages, limit int, setup func(*fetcher.Pager)) {
	pager := fetcher.NewPager(ctrl, limit, fetcher.SearchPolicy())
	setup(pager)

	for i := 0; i < pages; i++ {
		if !pager.CanLoadMore() {
			break
		}
		if _, err := pager.LoadMore(ctx); err != nil {
			log.Fatalf("load page %d: %v", i+1, err)
		}
	}
	printGames(pager.Items(), false)
	if pager.CanLoadMore() {
		fmt.Println("... more available")
	}
}

func gameCommand(ctx context.Context, ctrl *fetcher.Controller, rawID string) {
	if _, err := strconv.Atoi(rawID); err != nil {
		log.Fatalf("invalid game id %q", rawID)
	}

	res, err := ctrl.Fetch(ctx, "/games/"+rawID, fetcher.DetailPolicy())
	if err != nil {
		if fetcher.IsNotFound(err) {
			log.Fatalf("game %s not found", rawID)
		}
		log.Fatalf("fetch: %v", err)
	}

	var detail struct {
		models.Game
		ReviewBreakdown *models.ReviewBreakdown `json:"reviewBreakdown"`
	}
	if err := res.Decode(&detail); err != nil {
		log.Fatalf("decode: %v", err)
	}

	fmt.Printf("%s (#%d)\n", detail.Name, detail.ID)
	fmt.Printf("  price:    %s\n", detail.Price)
	if detail.Rating != nil {
		fmt.Printf("  rating:   %.1f/5\n", *detail.Rating)
	}
	fmt.Printf("  released: %s\n", detail.ReleaseDate)
	if detail.ReviewBreakdown != nil {
		bd := detail.ReviewBreakdown
		fmt.Printf("  reviews:  %d total, %.1f%% positive (%s)\n",
			bd.TotalReviews, bd.PositivePercentage, bd.ReviewScoreDesc)
	}
}

func printGames(games []models.Game, fallback bool) {
	for _, g := range games {
		rating := "  -"
		if g.Rating != nil {
			rating = fmt.Sprintf("%.1f", *g.Rating)
		}
		fmt.Printf("%8d  %s  %-10s  %s\n", g.ID, rating, g.Price, g.Name)
	}
	if fallback {
		fmt.Println("(placeholder data: live catalog unavailable)")
	}
}
