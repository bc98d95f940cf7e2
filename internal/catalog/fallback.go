package catalog

import (
	"fmt"

	"gamehub/pkg/models"
)

// Kind names one catalog view. Fallback data is derived per kind so every
// view degrades to a distinct, recognizable synthetic set.
type Kind string

const (
	KindPopular     Kind = "popular"
	KindTrending    Kind = "trending"
	KindTopRated    Kind = "top-rated"
	KindNewReleases Kind = "new-releases"
	KindCategory    Kind = "category"
	KindSearch      Kind = "search"
	KindRelated     Kind = "related"
)

// Tier records which degradation level produced a result set.
type Tier int

const (
	TierAuthoritative Tier = iota // real upstream data
	TierSynthetic                 // procedurally generated fallback
	TierMinimal                   // single hard-coded record
)

// Fallback caps. Related views cap lower than the rest; the split is a
// product decision carried over as-is, with no unifying rule.
const (
	relatedFallbackCap = 8
	listFallbackCap    = 20
)

// Per-kind id offsets keep synthetic ids distinct across views and far
// outside the range of real app ids.
var kindOffsets = map[Kind]int{
	KindPopular:     910000,
	KindTrending:    920000,
	KindTopRated:    930000,
	KindNewReleases: 940000,
	KindCategory:    950000,
	KindSearch:      960000,
	KindRelated:     970000,
}

var kindLabels = map[Kind]string{
	KindPopular:     "Popular Pick",
	KindTrending:    "Trending Now",
	KindTopRated:    "Top Rated",
	KindNewReleases: "Fresh Release",
	KindCategory:    "Category Pick",
	KindSearch:      "Search Result",
	KindRelated:     "Similar Game",
}

var fallbackTags = []string{"Action", "Adventure", "Indie", "RPG", "Strategy", "Casual"}

// Synthesize produces a bounded, deterministic, schema-valid synthetic
// result set for a view. Result length is min(limit, per-kind cap). For a
// fixed (kind, index) the record is identical on every call, so tests and
// caches can assert exact output.
func Synthesize(kind Kind, limit int) []models.Game {
	max := listFallbackCap
	if kind == KindRelated {
		max = relatedFallbackCap
	}
	if limit > max {
		limit = max
	}
	if limit <= 0 {
		limit = 1
	}

	out := make([]models.Game, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, synthGame(kind, i))
	}
	return out
}

func synthGame(kind Kind, i int) models.Game {
	id := kindOffsets[kind] + i
	rating := 3.6 + float64(i%7)*0.2

	price := "Free to Play"
	if i%3 != 0 {
		price = fmt.Sprintf("$%d.99", 4+(i%5)*5)
	}

	tags := []string{
		fallbackTags[i%len(fallbackTags)],
		fallbackTags[(i+2)%len(fallbackTags)],
	}

	return models.Game{
		ID:          id,
		Name:        fmt.Sprintf("%s #%d", kindLabels[kind], i+1),
		Image:       fmt.Sprintf("https://placehold.co/460x215?text=Game+%d", id),
		Rating:      &rating,
		ReviewCount: 100 + i*37,
		Price:       price,
		Tags:        tags,
		ReleaseDate: fmt.Sprintf("2023-%02d-%02d", i%12+1, i%28+1),
		Description: "Placeholder entry shown while live catalog data is unavailable.",
		Screenshots: []models.Screenshot{},
		Movies:      []models.Movie{},
		Developers:  []string{"GameHub Studio"},
		Publishers:  []string{"GameHub"},
	}
}

// Minimal returns the single hard-coded, always-valid record for a view.
// Last resort when synthesis itself is unusable.
func Minimal(kind Kind) models.Game {
	rating := 4.0
	return models.Game{
		ID:          kindOffsets[kind] + 9999,
		Name:        "GameHub Featured",
		Image:       "https://placehold.co/460x215?text=GameHub",
		Rating:      &rating,
		ReviewCount: 1,
		Price:       "Free to Play",
		Tags:        []string{"Featured"},
		ReleaseDate: "2023-01-01",
		Description: "Catalog data is temporarily unavailable.",
		Screenshots: []models.Screenshot{},
		Movies:      []models.Movie{},
		Developers:  []string{"GameHub Studio"},
		Publishers:  []string{"GameHub"},
	}
}

// Degrade runs the synthesizer under a defensive recover so an endpoint
// can never observe an exception-shaped failure: if synthesis blows up or
// yields nothing, the minimal record stands in.
func Degrade(kind Kind, limit int) (games []models.Game, tier Tier) {
	defer func() {
		if r := recover(); r != nil {
			games = []models.Game{Minimal(kind)}
			tier = TierMinimal
		}
	}()

	games = Synthesize(kind, limit)
	if len(games) == 0 {
		return []models.Game{Minimal(kind)}, TierMinimal
	}
	return games, TierSynthetic
}
