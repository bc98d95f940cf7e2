package catalog

import (
	"fmt"
	"math"

	"gamehub/internal/steam"
	"gamehub/pkg/models"
)

// FormatGame maps one upstream record into the canonical Game shape.
//
// The function is total: every optional upstream field maps to an explicit
// default (empty list, empty string, 0, or nil rating), so downstream code
// never branches on field absence. This is the seam that isolates the rest
// of the system from upstream schema drift.
func FormatGame(rec steam.AppRecord) models.Game {
	g := models.Game{
		ID:          rec.AppID,
		Name:        rec.Name,
		Image:       rec.HeaderImage,
		Rating:      ratingOf(rec),
		ReviewCount: rec.ReviewCount,
		Price:       priceOf(rec),
		Tags:        tagsOf(rec),
		ReleaseDate: rec.ReleaseDate,
		Description: rec.ShortDescription,
		Screenshots: screenshotsOf(rec),
		Movies:      moviesOf(rec),
		Developers:  rec.Developers,
		Publishers:  rec.Publishers,
	}

	if g.ID < 0 {
		g.ID = 0
	}
	if g.Name == "" {
		g.Name = "Unknown Game"
	}
	if g.Image == "" && g.ID > 0 {
		g.Image = fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/header.jpg", g.ID)
	}
	if g.ReviewCount < 0 {
		g.ReviewCount = 0
	}
	if g.Developers == nil {
		g.Developers = []string{}
	}
	if g.Publishers == nil {
		g.Publishers = []string{}
	}
	return g
}

// ratingOf derives a 0..5 rating from the positive/negative counts, or
// nil when the upstream carried no review data.
func ratingOf(rec steam.AppRecord) *float64 {
	if rec.Positive == nil || rec.Negative == nil {
		return nil
	}
	total := *rec.Positive + *rec.Negative
	if total <= 0 {
		return nil
	}
	r := float64(*rec.Positive) / float64(total) * 5
	r = math.Round(r*10) / 10
	return &r
}

func priceOf(rec steam.AppRecord) string {
	if rec.IsFree {
		return "Free to Play"
	}
	if rec.PriceCents == nil {
		return "Free to Play"
	}
	cents := *rec.PriceCents
	if cents <= 0 {
		return "Free to Play"
	}
	cur := "$"
	if rec.Currency != "" && rec.Currency != "USD" {
		cur = rec.Currency + " "
	}
	return fmt.Sprintf("%s%d.%02d", cur, cents/100, cents%100)
}

func tagsOf(rec steam.AppRecord) []string {
	tags := make([]string, 0, len(rec.Genres)+len(rec.Tags))
	seen := make(map[string]struct{})
	for _, lists := range [][]string{rec.Genres, rec.Tags} {
		for _, t := range lists {
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

func screenshotsOf(rec steam.AppRecord) []models.Screenshot {
	out := make([]models.Screenshot, 0, len(rec.Screenshots))
	for _, s := range rec.Screenshots {
		out = append(out, models.Screenshot{ID: s.ID, Path: s.Path, Thumbnail: s.Thumbnail})
	}
	return out
}

func moviesOf(rec steam.AppRecord) []models.Movie {
	out := make([]models.Movie, 0, len(rec.Movies))
	for _, m := range rec.Movies {
		out = append(out, models.Movie{ID: m.ID, Name: m.Name, Thumbnail: m.Thumbnail, WebM: m.WebM, MP4: m.MP4})
	}
	return out
}
